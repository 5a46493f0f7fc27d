//go:build !zread_nozstd

package zread

import (
	"github.com/klauspost/compress/zstd"
)

func init() {
	register(FormatZstd, backend{newEngine: newZstdEngine, compress: zstdCompress})
}

type zstdEngine struct {
	zd *zstd.Decoder
}

func newZstdEngine(b *buffer) (engine, error) {
	// A single goroutine decodes synchronously, in the caller's Read.
	zd, err := zstd.NewReader(b, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return &zstdEngine{zd: zd}, nil
}

func (e *zstdEngine) Read(p []byte) (int, error) { return e.zd.Read(p) }

func (e *zstdEngine) release() {
	e.zd.Close()
	e.zd = nil
}
