package zread

// DefaultLevel selects the default compression level of each format.
const DefaultLevel = -1

// Compress compresses src with format f at the given level, producing data
// that a Reader decodes back to src. Levels are specific to each format,
// DefaultLevel is accepted by all of them. FormatNone returns a copy of src.
func Compress(f Format, src []byte, level int) ([]byte, error) {
	if f == FormatNone {
		return append([]byte(nil), src...), nil
	}

	b, ok := backends[f]
	if !ok {
		return nil, &StreamError{Kind: ErrUnsupportedFormat, Format: f}
	}
	return b.compress(src, level)
}
