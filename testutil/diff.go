package testutil

import (
	"bytes"
	"fmt"
	"testing"
)

// DiffBytes fails the test and shows where a and b differ, if they do.
// Differences are reported by offset, with a few bytes of context in hex, so
// that binary data can be compared.
func DiffBytes(tb testing.TB, aname, bname string, a, b []byte) {
	tb.Helper()

	var buf bytes.Buffer // holding long error message

	if len(a) != len(b) {
		fmt.Fprintf(&buf, "\ndifferent lengths: len(%s) = %d, len(%s) = %d", aname, len(a), bname, len(b))
	}

	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			fmt.Fprintf(&buf, "\nfirst difference at offset %d:", i)
			fmt.Fprintf(&buf, "\n%s: % x", aname, window(a, i))
			fmt.Fprintf(&buf, "\n%s: % x", bname, window(b, i))
			break
		}
	}

	if buf.Len() > 0 {
		tb.Error(buf.String())
	}
}

// window returns up to 8 bytes of data on each side of offset off.
func window(data []byte, off int) []byte {
	lo, hi := off-8, off+8
	if lo < 0 {
		lo = 0
	}
	if hi > len(data) {
		hi = len(data)
	}
	return data[lo:hi]
}
