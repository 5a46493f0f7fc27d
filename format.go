package zread

import (
	"bytes"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Format identifies the compression format of a stream.
type Format int

// List of formats recognized by the sniffer.
const (
	FormatNone Format = iota
	FormatGzip
	FormatBzip2
	FormatXz
	FormatZstd
	FormatLz4
	FormatSnappy
)

var formatNames = [...]string{
	FormatNone:   "none",
	FormatGzip:   "gzip",
	FormatBzip2:  "bzip2",
	FormatXz:     "xz",
	FormatZstd:   "zstd",
	FormatLz4:    "lz4",
	FormatSnappy: "snappy",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat returns the format named s (case insensitive).
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(name, s) {
			return Format(f), nil
		}
	}
	return FormatNone, fmt.Errorf("zread: unknown format %q", s)
}

// signatures are checked in order against the first bytes of the stream.
// They're mutually exclusive prefixes.
var signatures = []struct {
	format Format
	magic  []byte
}{
	{FormatGzip, []byte{0x1f, 0x8b}},
	{FormatBzip2, []byte("BZh")},
	{FormatXz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{FormatZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{FormatLz4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{FormatSnappy, []byte("\xff\x06\x00\x00sNaPpY")},
}

// maxSignatureLen is the number of bytes the sniffer needs to see.
var maxSignatureLen = func() int {
	max := 0
	for _, sig := range signatures {
		if len(sig.magic) > max {
			max = len(sig.magic)
		}
	}
	return max
}()

// Sniff returns the format whose signature prefixes header, or FormatNone.
func Sniff(header []byte) Format {
	for _, sig := range signatures {
		if bytes.HasPrefix(header, sig.magic) {
			return sig.format
		}
	}
	return FormatNone
}

// sniff detects the format of the bytes at the head of b, without consuming
// them. A format that isn't in caps is an error, never a passthrough.
func sniff(b *buffer, caps Capabilities) (Format, error) {
	hdr, err := b.Peek(maxSignatureLen)
	if err != nil {
		return FormatNone, err
	}

	f := Sniff(hdr)
	if !caps.Has(f) {
		return f, &StreamError{Kind: ErrUnsupportedFormat, Format: f}
	}

	log.WithFields(log.Fields{"f": "sniff", "format": f.String(), "header": fmt.Sprintf("% x", hdr)}).Debug("format detected")
	return f, nil
}
