package zread

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when the stream starts with the
	// signature of a format whose backend is not available.
	ErrUnsupportedFormat = errors.New("unsupported compression format")

	// ErrCorruptStream is returned when a decoder rejects the compressed
	// bytes as structurally invalid.
	ErrCorruptStream = errors.New("corrupt compressed stream")

	// ErrTruncatedStream is returned when the source ends before the decoder
	// reached the end marker of the compressed stream.
	ErrTruncatedStream = errors.New("truncated compressed stream")

	// ErrNotBound is returned when reading from a Reader with no source.
	ErrNotBound = errors.New("zread: no source bound")
)

// An IOError reports a failure of the underlying source.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("zread: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// A StreamError reports a compressed stream that can't be decoded. Kind is
// one of ErrUnsupportedFormat, ErrCorruptStream or ErrTruncatedStream and
// can be tested with errors.Is.
type StreamError struct {
	Kind   error
	Format Format
	Err    error // decoder error, if any
}

func (e *StreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("zread (%s): %v", e.Format, e.Kind)
	}
	return fmt.Sprintf("zread (%s): %v: %v", e.Format, e.Kind, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

func (e *StreamError) Is(target error) bool { return target == e.Kind }
