//go:build !zread_nobzip2

package zread

import (
	"bytes"

	"github.com/dsnet/compress/bzip2"
)

func init() {
	register(FormatBzip2, backend{newEngine: newBzip2Engine, compress: bzip2Compress})
}

type bzip2Engine struct {
	zr *bzip2.Reader
}

func newBzip2Engine(b *buffer) (engine, error) {
	zr, err := bzip2.NewReader(b, nil)
	if err != nil {
		return nil, err
	}
	return &bzip2Engine{zr: zr}, nil
}

func (e *bzip2Engine) Read(p []byte) (int, error) { return e.zr.Read(p) }

func (e *bzip2Engine) release() {
	e.zr.Close()
	e.zr = nil
}

func bzip2Compress(src []byte, level int) ([]byte, error) {
	if level < bzip2.BestSpeed {
		level = bzip2.DefaultCompression
	}

	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: level})
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
