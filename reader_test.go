package zread

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"

	"github.com/AdRoll/zread/testutil"
)

// kSize4 is the number of integers in the test sequence (100000 bytes).
const kSize4 = 100000 / 4

// verifySequence reads the integers 0..kSize4-1 from r, 4 bytes at a time,
// then checks that r is at EOF, twice.
func verifySequence(t *testing.T, r *Reader) {
	t.Helper()

	var buf [4]byte
	for i := uint32(0); i < kSize4; i++ {
		n, err := r.ReadOrEOF(buf[:])
		if err != nil {
			t.Fatalf("integer %d: %v", i, err)
		}
		if n != 4 {
			t.Fatalf("integer %d: premature EOF, read %d bytes", i, n)
		}
		if got := binary.LittleEndian.Uint32(buf[:]); got != i {
			t.Fatalf("integer %d: got %d", i, got)
		}
	}

	var ignored [1]byte
	for i := 0; i < 2; i++ {
		if n, err := r.Read(ignored[:]); n != 0 || err != io.EOF {
			t.Fatalf("Read #%d after end = (%d, %v), want (0, EOF)", i+1, n, err)
		}
	}
}

func requireFormat(t *testing.T, f Format) {
	t.Helper()
	if !Available().Has(f) {
		t.Skipf("%s is not compiled in", f)
	}
}

func TestReadReference(t *testing.T) {
	tests := []struct {
		tool   string
		format Format
	}{
		{tool: "gzip", format: FormatGzip},
		{tool: "bzip2", format: FormatBzip2},
		{tool: "xz", format: FormatXz},
		{tool: "zstd", format: FormatZstd},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			requireFormat(t, tt.format)
			compressed := testutil.ReferenceCompress(t, tt.tool, testutil.Sequence(kSize4))

			r := NewReader(bytes.NewReader(compressed))
			defer r.Close()
			verifySequence(t, r)

			if r.Format() != tt.format {
				t.Errorf("format = %s, want %s", r.Format(), tt.format)
			}
		})
	}
}

func TestReadUncompressed(t *testing.T) {
	want := testutil.Sequence(kSize4)

	r := NewReader(bytes.NewReader(want))
	verifySequence(t, r)

	if r.Format() != FormatNone {
		t.Errorf("format = %s, want %s", r.Format(), FormatNone)
	}
	if s := r.Stats(); s.RawBytes != int64(len(want)) || s.DecodedBytes != int64(len(want)) {
		t.Errorf("stats = %+v, want %d raw and decoded bytes", s, len(want))
	}
}

func TestCompressRoundTrip(t *testing.T) {
	input := testutil.Sequence(kSize4)

	for _, f := range Available().Formats() {
		for _, level := range []int{DefaultLevel, 1, 5} {
			f, level := f, level
			t.Run(fmt.Sprintf("%s/level=%d", f, level), func(t *testing.T) {
				compressed, err := Compress(f, input, level)
				if err != nil {
					t.Fatalf("Compress(%s, level=%d): %v", f, level, err)
				}

				r := NewReader(bytes.NewReader(compressed))
				defer r.Close()

				returned := make([]byte, len(input))
				n, err := r.ReadOrEOF(returned)
				if err != nil {
					t.Fatal(err)
				}
				if n != len(input) {
					t.Fatalf("ReadOrEOF returned %d bytes, want %d", n, len(input))
				}
				testutil.DiffBytes(t, "returned", "input", returned, input)

				if r.Format() != f {
					t.Errorf("format = %s, want %s", r.Format(), f)
				}
			})
		}
	}
}

func TestReadOrEOFAbsorbsShortReads(t *testing.T) {
	requireFormat(t, FormatGzip)

	input := testutil.Sequence(kSize4)
	compressed, err := Compress(FormatGzip, input, DefaultLevel)
	if err != nil {
		t.Fatal(err)
	}

	sources := map[string]io.Reader{
		"one byte": iotest.OneByteReader(bytes.NewReader(compressed)),
		"half":     iotest.HalfReader(bytes.NewReader(compressed)),
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			r := ReaderConfig{BufferSize: 7}.NewReader(src)

			returned := make([]byte, len(input)+10)
			n, err := r.ReadOrEOF(returned)
			if err != nil {
				t.Fatal(err)
			}
			if n != len(input) {
				t.Fatalf("ReadOrEOF returned %d bytes, want %d", n, len(input))
			}
			if diff := cmp.Diff(input, returned[:n]); diff != "" {
				t.Errorf("content mismatch (-want +got):\n%s", diff)
			}

			// The stream is over, ReadOrEOF keeps returning 0.
			if n, err := r.ReadOrEOF(returned); n != 0 || err != nil {
				t.Errorf("ReadOrEOF after end = (%d, %v), want (0, nil)", n, err)
			}
		})
	}
}

func TestReadGzipScenario(t *testing.T) {
	requireFormat(t, FormatGzip)

	name := testutil.TempFile(t, mustCompress(t, FormatGzip, testutil.Sequence(kSize4)))
	r, err := Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	verifySequence(t, r)

	s := r.Stats()
	if s.Format != FormatGzip || s.DecodedBytes != 4*kSize4 {
		t.Errorf("stats = %s", s)
	}
}

func TestSourceInterchangeability(t *testing.T) {
	requireFormat(t, FormatXz)

	input := testutil.Sequence(kSize4)
	name := testutil.TempFile(t, mustCompress(t, FormatXz, input))

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	owned := NewFileReader(f)
	fromFile, err := io.ReadAll(owned)
	if err != nil {
		t.Fatal(err)
	}
	if err := owned.Close(); err != nil {
		t.Fatal(err)
	}
	// The Reader owned f, it's been closed.
	if _, err := f.Read(make([]byte, 1)); err == nil {
		t.Errorf("owned file should be closed")
	}

	f, err = os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	borrowed := NewReader(f)
	fromStream, err := io.ReadAll(borrowed)
	if err != nil {
		t.Fatal(err)
	}
	if err := borrowed.Close(); err != nil {
		t.Fatal(err)
	}
	// The Reader borrowed f, it's still open.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Errorf("borrowed file should still be open: %v", err)
	}

	testutil.DiffBytes(t, "owned", "borrowed", fromFile, fromStream)
	testutil.DiffBytes(t, "owned", "input", fromFile, input)
}

// endMarked lists the compiled-in formats whose streams carry an end marker,
// so that a missing tail is detected. Snappy streams don't have one.
func endMarked() []Format {
	var formats []Format
	for _, f := range Available().Formats() {
		if f != FormatNone && f != FormatSnappy {
			formats = append(formats, f)
		}
	}
	return formats
}

// truncationCuts returns the lengths at which c is cut: every length in the
// first and last window bytes past the signature, and the middle.
func truncationCuts(c []byte, window int) []int {
	lo := 1
	for _, sig := range signatures {
		if bytes.HasPrefix(c, sig.magic) {
			lo = len(sig.magic) + 1
		}
	}
	var cuts []int
	for n := lo; n < lo+window && n < len(c); n++ {
		cuts = append(cuts, n)
	}
	cuts = append(cuts, len(c)/2)
	for n := len(c) - window; n < len(c); n++ {
		if n >= lo+window {
			cuts = append(cuts, n)
		}
	}
	return cuts
}

func TestReadTruncated(t *testing.T) {
	for _, f := range endMarked() {
		f := f
		t.Run(f.String(), func(t *testing.T) {
			input := testutil.Sequence(kSize4)
			compressed := mustCompress(t, f, input)

			for _, cut := range truncationCuts(compressed, 24) {
				r := NewReader(bytes.NewReader(compressed[:cut]))

				decoded, err := io.ReadAll(r)
				if !errors.Is(err, ErrTruncatedStream) {
					t.Fatalf("cut at %d/%d bytes: ReadAll = (%d bytes, %v), want %v",
						cut, len(compressed), len(decoded), err, ErrTruncatedStream)
				}
				var serr *StreamError
				if !errors.As(err, &serr) || serr.Format != f {
					t.Errorf("cut at %d: error %v should be a *StreamError for %s", cut, err, f)
				}
				if !bytes.Equal(decoded, input[:len(decoded)]) {
					t.Errorf("cut at %d: bytes decoded before the error don't match the input", cut)
				}
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	requireFormat(t, FormatGzip)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{
			name:    "corrupt header",
			data:    append([]byte("\x1f\x8bciaociaociaociao"), bytes.Repeat([]byte{'x'}, 100)...),
			wantErr: ErrCorruptStream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(bytes.NewReader(tt.data))

			_, err := io.ReadAll(r)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ReadAll error = %v, want %v", err, tt.wantErr)
			}
			var serr *StreamError
			if !errors.As(err, &serr) || serr.Format != FormatGzip {
				t.Errorf("error %v should be a *StreamError for gzip", err)
			}

			// The Reader is unusable until reset.
			if _, err2 := r.Read(make([]byte, 10)); err2 != err {
				t.Errorf("Read after failure = %v, want %v", err2, err)
			}
		})
	}
}

func TestReadUnsupported(t *testing.T) {
	for _, f := range Available().Formats() {
		if f == FormatNone {
			continue
		}
		compressed := mustCompress(t, f, testutil.Sequence(100))

		r := ReaderConfig{Capabilities: Available().Without(f)}.NewReader(bytes.NewReader(compressed))
		_, err := io.ReadAll(r)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%s disabled: ReadAll error = %v, want %v", f, err, ErrUnsupportedFormat)
		}
		var serr *StreamError
		if !errors.As(err, &serr) || serr.Format != f {
			t.Errorf("%s disabled: error %v should be a *StreamError for %s", f, err, f)
		}
	}
}

func TestReadIOError(t *testing.T) {
	requireFormat(t, FormatGzip)

	boom := errors.New("disk on fire")
	compressed := mustCompress(t, FormatGzip, testutil.Sequence(kSize4))
	src := io.MultiReader(bytes.NewReader(compressed[:1000]), iotest.ErrReader(boom))

	r := NewReader(src)
	_, err := io.ReadAll(r)

	var ioe *IOError
	if !errors.As(err, &ioe) || !errors.Is(err, boom) {
		t.Errorf("ReadAll error = %v, want *IOError wrapping %v", err, boom)
	}
}

func TestTrailingBytesIgnored(t *testing.T) {
	requireFormat(t, FormatGzip)

	input := []byte(strings.Repeat("trailing bytes are ignored\n", 100))
	data := append(mustCompress(t, FormatGzip, input), "garbage after the member"...)

	r := NewReader(bytes.NewReader(data))
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	testutil.DiffBytes(t, "got", "input", got, input)
}

func TestReset(t *testing.T) {
	requireFormat(t, FormatGzip)

	var r Reader // zero value is usable after Reset
	if _, err := r.Read(make([]byte, 1)); err != ErrNotBound {
		t.Fatalf("Read on unbound Reader = %v, want %v", err, ErrNotBound)
	}

	// Fail first, then reset to valid sources of different formats.
	r.Reset(strings.NewReader("\x1f\x8bnot really gzip, but long enough to be corrupt"))
	if _, err := io.ReadAll(&r); err == nil {
		t.Fatal("want error on corrupt stream")
	}

	input := testutil.Sequence(1000)
	for _, f := range Available().Formats() {
		if err := r.Reset(bytes.NewReader(mustCompress(t, f, input))); err != nil {
			t.Fatal(err)
		}
		if detected, err := r.Detect(); err != nil || detected != f {
			t.Fatalf("Detect() = (%s, %v), want (%s, nil)", detected, err, f)
		}
		got, err := io.ReadAll(&r)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if diff := cmp.Diff(input, got); diff != "" {
			t.Errorf("%s: content mismatch (-want +got):\n%s", f, diff)
		}
	}

	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Read(make([]byte, 1)); err != ErrNotBound {
		t.Errorf("Read on closed Reader = %v, want %v", err, ErrNotBound)
	}
}

func TestReadEmpty(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	for i := 0; i < 2; i++ {
		if n, err := r.Read(make([]byte, 10)); n != 0 || err != io.EOF {
			t.Errorf("Read #%d = (%d, %v), want (0, EOF)", i+1, n, err)
		}
	}
	if f, err := r.Detect(); f != FormatNone || err != nil {
		t.Errorf("Detect() = (%s, %v), want (none, nil)", f, err)
	}
}

func mustCompress(tb testing.TB, f Format, data []byte) []byte {
	tb.Helper()
	compressed, err := Compress(f, data, DefaultLevel)
	if err != nil {
		tb.Fatalf("Compress(%s): %v", f, err)
	}
	return compressed
}
