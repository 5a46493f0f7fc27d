//go:build !zread_noxz

package zread

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/ulikunitz/xz"
)

func init() {
	register(FormatXz, backend{newEngine: newXzEngine, compress: xzCompress})
}

type xzEngine struct {
	zr *xz.Reader
}

func newXzEngine(b *buffer) (engine, error) {
	// xz.NewReader reads and checks the stream header right away.
	zr, err := xz.ReaderConfig{SingleStream: true}.NewReader(&xzSource{b: b})
	if err != nil {
		return nil, err
	}
	return &xzEngine{zr: zr}, nil
}

func (e *xzEngine) Read(p []byte) (int, error) { return e.zr.Read(p) }

func (e *xzEngine) release() { e.zr = nil }

const xzFooterLen = 12

// xzSource feeds the buffer to the xz decoder. The decoder takes a source EOF
// at a block boundary for the end of the stream, so the EOF is only let
// through right after the stream footer, and is io.ErrUnexpectedEOF anywhere
// else.
type xzSource struct {
	b    *buffer
	tail [xzFooterLen]byte // last bytes handed to the decoder
}

func (s *xzSource) Read(p []byte) (int, error) {
	n, err := s.b.Drain(p)
	s.record(p[:n])
	return n, s.checkEOF(err)
}

func (s *xzSource) ReadByte() (byte, error) {
	c, err := s.b.ReadByte()
	if err != nil {
		return 0, s.checkEOF(err)
	}
	s.record([]byte{c})
	return c, nil
}

func (s *xzSource) record(p []byte) {
	if len(p) >= len(s.tail) {
		copy(s.tail[:], p[len(p)-len(s.tail):])
		return
	}
	copy(s.tail[:], s.tail[len(p):])
	copy(s.tail[len(s.tail)-len(p):], p)
}

func (s *xzSource) checkEOF(err error) error {
	if err == io.EOF && !s.afterFooter() {
		return io.ErrUnexpectedEOF
	}
	return err
}

// afterFooter reports whether the last bytes read are a stream footer: CRC32
// of the backward size and flags, backward size, flags, "YZ".
func (s *xzSource) afterFooter() bool {
	t := s.tail[:]
	return t[10] == 'Y' && t[11] == 'Z' &&
		crc32.ChecksumIEEE(t[4:10]) == binary.LittleEndian.Uint32(t[:4])
}

// xzDictCaps maps compression levels to dictionary sizes, following the
// presets of the xz command line tool.
var xzDictCaps = [...]int{
	256 << 10, 1 << 20, 2 << 20, 4 << 20, 4 << 20,
	8 << 20, 8 << 20, 16 << 20, 32 << 20, 64 << 20,
}

func xzCompress(src []byte, level int) ([]byte, error) {
	if level < 0 {
		level = 6
	}
	if level >= len(xzDictCaps) {
		return nil, fmt.Errorf("zread: invalid xz compression level %d", level)
	}

	var buf bytes.Buffer
	w, err := xz.WriterConfig{DictCap: xzDictCaps[level]}.NewWriter(&buf)
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
