//go:build cgo && !zread_nozstd

package zread

import "github.com/valyala/gozstd"

// zstdCompress uses the reference zstd library when cgo is available.
func zstdCompress(src []byte, level int) ([]byte, error) {
	if level < 0 {
		level = gozstd.DefaultCompressionLevel
	}
	return gozstd.CompressLevel(nil, src, level), nil
}
