package zip_agnostic

import (
	"fmt"
	"io"

	"github.com/AdRoll/zread"
)

// NewReader returns an io.ReadCloser that reads from r, whether r is a reader
// over compressed data or not. It supports every format compiled in zread.
// Closing the returned reader doesn't close r.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	return NewReaderWithConfig(r, zread.ReaderConfig{})
}

// NewReaderWithConfig is like NewReader but creates the underlying
// *zread.Reader with cfg.
func NewReaderWithConfig(r io.Reader, cfg zread.ReaderConfig) (io.ReadCloser, error) {
	zr := cfg.NewReader(r)
	f, err := zr.Detect()
	if err != nil {
		zr.Close()
		return nil, fmt.Errorf("zip_agnostic (%s): can't read: %w", f, err)
	}
	return zr, nil
}
