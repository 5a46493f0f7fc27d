package zread

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// SizeBytes is a size in bytes that can be expressed in a TOML configuration
// or on the command line either as a number or as a human readable string
// like "64KiB" or "1MB".
type SizeBytes uint64

func (b *SizeBytes) UnmarshalTOML(p interface{}) error {
	var actual uint64

	switch v := p.(type) {
	case float64:
		if v < 0 {
			return fmt.Errorf("invalid size in bytes (%v): value must be >= 0", v)
		}
		if v >= math.MaxUint64 {
			return fmt.Errorf("invalid size in bytes (%v): value must be smaller than %v", v, uint64(math.MaxUint64))
		}
		actual = uint64(v)
	case int64:
		if v < 0 {
			return fmt.Errorf("invalid size in bytes (%v): value must be >= 0", v)
		}
		actual = uint64(v)
	case string:
		return b.Set(v)
	default:
		return fmt.Errorf("unexpected type (%T): unexpected value type", v)
	}
	*b = SizeBytes(actual)
	return nil
}

// Set implements flag.Value.
func (b *SizeBytes) Set(s string) error {
	var actual uint64
	if s != "" {
		var err error
		actual, err = humanize.ParseBytes(s)
		if err != nil {
			return fmt.Errorf("invalid size in bytes (%v): %v", s, err)
		}
	}
	*b = SizeBytes(actual)
	return nil
}

func (b SizeBytes) String() string {
	return humanize.IBytes(uint64(b))
}

// Int returns b as an int, saturating at math.MaxInt32.
func (b SizeBytes) Int() int {
	if b > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(b)
}
