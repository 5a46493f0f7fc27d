//go:build !zread_nogzip

package zread

import (
	"bytes"

	"github.com/klauspost/compress/gzip"
)

func init() {
	register(FormatGzip, backend{newEngine: newGzipEngine, compress: gzipCompress})
}

type gzipEngine struct {
	zr *gzip.Reader
}

func newGzipEngine(b *buffer) (engine, error) {
	zr, err := gzip.NewReader(b)
	if err != nil {
		return nil, err
	}
	// Stop at the end of the first member, what follows is left unread.
	zr.Multistream(false)
	return &gzipEngine{zr: zr}, nil
}

func (e *gzipEngine) Read(p []byte) (int, error) { return e.zr.Read(p) }

func (e *gzipEngine) release() {
	e.zr.Close()
	e.zr = nil
}

func gzipCompress(src []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
