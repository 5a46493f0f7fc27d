//go:build !zread_nosnappy

package zread

import (
	"bytes"

	"github.com/golang/snappy"
)

func init() {
	register(FormatSnappy, backend{newEngine: newSnappyEngine, compress: snappyCompress})
}

// snappyEngine decodes the snappy framing format. Frames have no end marker,
// the stream ends with the source, at a chunk boundary.
type snappyEngine struct {
	zr *snappy.Reader
}

func newSnappyEngine(b *buffer) (engine, error) {
	return &snappyEngine{zr: snappy.NewReader(b)}, nil
}

func (e *snappyEngine) Read(p []byte) (int, error) { return e.zr.Read(p) }

func (e *snappyEngine) release() { e.zr = nil }

// snappyCompress ignores level, snappy has a single one.
func snappyCompress(src []byte, _ int) ([]byte, error) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
