package zread

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Stats reports how many bytes a Reader consumed and produced since it was
// last bound.
type Stats struct {
	Format       Format
	RawBytes     int64 // read from the source
	DecodedBytes int64 // returned by Read
}

// Ratio returns the compression ratio, decoded bytes over raw bytes, or 0 if
// nothing was read.
func (s Stats) Ratio() float64 {
	if s.RawBytes == 0 {
		return 0
	}
	return float64(s.DecodedBytes) / float64(s.RawBytes)
}

// Map returns the stats as strings, suitable for logging.
func (s Stats) Map() map[string]string {
	return map[string]string{
		"Format":       s.Format.String(),
		"RawBytes":     humanize.Bytes(uint64(s.RawBytes)),
		"DecodedBytes": humanize.Bytes(uint64(s.DecodedBytes)),
		"Ratio":        fmt.Sprintf("%.2f", s.Ratio()),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("format=%s raw=%s decoded=%s ratio=%.2f",
		s.Format, humanize.Bytes(uint64(s.RawBytes)), humanize.Bytes(uint64(s.DecodedBytes)), s.Ratio())
}

// Stats returns the stats of the current binding.
func (r *Reader) Stats() Stats {
	s := Stats{Format: r.format, DecodedBytes: r.ndecoded}
	if r.buf != nil {
		s.RawBytes = r.buf.nraw
	}
	return s
}
