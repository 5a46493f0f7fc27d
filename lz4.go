//go:build !zread_nolz4

package zread

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v3"
)

func init() {
	register(FormatLz4, backend{newEngine: newLz4Engine, compress: lz4Compress})
}

type lz4Engine struct {
	zr *lz4.Reader
}

func newLz4Engine(b *buffer) (engine, error) {
	return &lz4Engine{zr: lz4.NewReader(lz4Source{b: b})}, nil
}

func (e *lz4Engine) Read(p []byte) (int, error) { return e.zr.Read(p) }

func (e *lz4Engine) release() { e.zr = nil }

// lz4Source feeds the buffer to the lz4 decoder, reporting the source EOF as
// io.ErrUnexpectedEOF. The decoder returns a bare source EOF as the end of the
// stream even in the middle of a frame, but it turns io.ErrUnexpectedEOF back
// into io.EOF where a new frame could start, after the end mark and checksum
// of the previous one.
type lz4Source struct {
	b *buffer
}

func (s lz4Source) Read(p []byte) (int, error) {
	n, err := s.b.Drain(p)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}

// lz4Compress writes a single lz4 frame. Level 0 is the fast compressor,
// higher levels use the high compression one.
func lz4Compress(src []byte, level int) ([]byte, error) {
	if level < 0 {
		level = 0
	}

	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	w.Header.CompressionLevel = level
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
