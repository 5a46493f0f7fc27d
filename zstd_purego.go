//go:build !cgo && !zread_nozstd

package zread

import "github.com/klauspost/compress/zstd"

func zstdCompress(src []byte, level int) ([]byte, error) {
	if level < 0 {
		level = 3
	}
	w, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer w.Close()
	return w.EncodeAll(src, nil), nil
}
