package zread

import (
	"errors"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

type phase int

const (
	phaseUnbound   phase = iota // no source
	phaseSniffing               // source bound, format unknown
	phaseStreaming              // engine active
	phaseEnded                  // logical end of stream reached
	phaseFailed                 // r.err is returned until the next Reset
)

// ReaderConfig configures a Reader. The zero value is ready to use.
type ReaderConfig struct {
	// Capabilities restricts the formats the Reader decodes. If nil, every
	// compiled-in format is decoded.
	Capabilities Capabilities

	// BufferSize is the size of the chunks read from the source. If 0,
	// DefaultBufferSize is used.
	BufferSize int
}

// A Reader reads the decompressed content of a source whose compression
// format is detected on the first Read.
//
// Read follows the io.Reader contract: it may return fewer bytes than
// requested while the stream is not exhausted, and returns (0, io.EOF) at the
// end of the decompressed content, every time it's called thereafter. After
// any other error the Reader can't be used until it's reset.
type Reader struct {
	cfg  ReaderConfig
	caps Capabilities

	src    source
	buf    *buffer
	eng    engine
	format Format
	phase  phase
	err    error

	ndecoded int64
}

// NewReader returns a Reader over r. r is borrowed: closing the Reader
// doesn't close r.
func NewReader(r io.Reader) *Reader {
	return ReaderConfig{}.NewReader(r)
}

// NewFDReader returns a Reader over the file descriptor fd. The Reader owns
// fd and closes it on Close or Reset.
func NewFDReader(fd int) (*Reader, error) {
	return ReaderConfig{}.NewFDReader(fd)
}

// NewFileReader returns a Reader over f. The Reader owns f and closes it on
// Close or Reset.
func NewFileReader(f *os.File) *Reader {
	return ReaderConfig{}.NewFileReader(f)
}

// Open opens the named file and returns a Reader owning it.
func Open(name string) (*Reader, error) {
	return ReaderConfig{}.Open(name)
}

// NewReader returns a Reader over r configured by c. r is borrowed.
func (c ReaderConfig) NewReader(r io.Reader) *Reader {
	zr := c.newReader()
	zr.Reset(r)
	return zr
}

// NewFDReader returns a Reader over fd configured by c. The Reader owns fd.
func (c ReaderConfig) NewFDReader(fd int) (*Reader, error) {
	zr := c.newReader()
	if err := zr.ResetFD(fd); err != nil {
		return nil, err
	}
	return zr, nil
}

// NewFileReader returns a Reader over f configured by c. The Reader owns f.
func (c ReaderConfig) NewFileReader(f *os.File) *Reader {
	zr := c.newReader()
	zr.ResetFile(f)
	return zr
}

// Open opens the named file and returns a Reader owning it, configured by c.
func (c ReaderConfig) Open(name string) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &IOError{Op: "open", Err: err}
	}
	return c.NewFileReader(f), nil
}

func (c ReaderConfig) newReader() *Reader {
	caps := c.Capabilities
	if caps == nil {
		caps = Available()
	}
	return &Reader{cfg: c, caps: caps}
}

// Reset discards the state of the Reader and binds it to r, which is
// borrowed. If the previous source was owned, it's closed and the error
// closing it, if any, is returned; the Reader is bound to r anyway.
func (r *Reader) Reset(src io.Reader) error {
	return r.bind(borrowedStream{r: src})
}

// ResetFD discards the state of the Reader and binds it to fd, which the
// Reader now owns.
func (r *Reader) ResetFD(fd int) error {
	src, err := newOwnedDescriptor(fd)
	if err != nil {
		rerr := r.unbind()
		r.fail(err)
		if rerr != nil {
			return rerr
		}
		return err
	}
	return r.bind(src)
}

// ResetFile discards the state of the Reader and binds it to f, which the
// Reader now owns.
func (r *Reader) ResetFile(f *os.File) error {
	return r.bind(ownedDescriptor{f: f})
}

func (r *Reader) bind(src source) error {
	err := r.unbind()
	if r.caps == nil {
		r.caps = Available()
	}
	r.src = src
	if r.buf == nil {
		r.buf = newBuffer(src, r.cfg.BufferSize)
	} else {
		// Reuse the chunk memory, drop its content.
		*r.buf = buffer{src: src, buf: r.buf.buf}
	}
	r.phase = phaseSniffing
	return err
}

// unbind releases the engine and the source.
func (r *Reader) unbind() error {
	r.releaseEngine()
	var err error
	if r.src != nil {
		err = r.src.release()
	}
	r.src = nil
	if r.buf != nil {
		r.buf.src = nil
	}
	r.format = FormatNone
	r.err = nil
	r.ndecoded = 0
	r.phase = phaseUnbound
	return err
}

func (r *Reader) releaseEngine() {
	if r.eng != nil {
		r.eng.release()
		r.eng = nil
	}
}

// Detect detects the format of the source, if not done yet, and returns it.
// It doesn't consume any decompressed byte.
func (r *Reader) Detect() (Format, error) {
	switch r.phase {
	case phaseUnbound:
		return FormatNone, ErrNotBound
	case phaseSniffing:
		if err := r.start(); err != nil {
			return r.format, err
		}
	case phaseFailed:
		return r.format, r.err
	}
	return r.format, nil
}

// Format returns the format detected so far. It's FormatNone until the
// detection happened.
func (r *Reader) Format() Format { return r.format }

// start detects the format and creates the engine.
func (r *Reader) start() error {
	f, err := sniff(r.buf, r.caps)
	r.format = f
	if err != nil {
		return r.fail(err)
	}

	newEngine := newPassthrough
	if f != FormatNone {
		newEngine = backends[f].newEngine
	}
	eng, err := newEngine(r.buf)
	if err != nil {
		return r.fail(r.classify(err))
	}
	r.eng = eng
	r.phase = phaseStreaming
	return nil
}

// Read reads up to len(p) decompressed bytes into p.
func (r *Reader) Read(p []byte) (int, error) {
	switch r.phase {
	case phaseUnbound:
		return 0, ErrNotBound
	case phaseFailed:
		return 0, r.err
	case phaseEnded:
		return 0, io.EOF
	case phaseSniffing:
		if err := r.start(); err != nil {
			return 0, err
		}
	}
	if len(p) == 0 {
		return 0, nil
	}

	n, err := r.eng.Read(p)
	r.ndecoded += int64(n)
	switch {
	case err == io.EOF:
		r.end()
		if n == 0 {
			return 0, io.EOF
		}
	case err != nil:
		// Deliver what has been decoded, the error is returned by the next
		// call.
		r.fail(r.classify(err))
		if n == 0 {
			return 0, r.err
		}
	}
	return n, nil
}

// ReadOrEOF reads into p until it's full or the end of the decompressed
// content is reached, in which case the returned count is smaller than len(p)
// and the error is nil.
func (r *Reader) ReadOrEOF(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		m, err := r.Read(p[n:])
		n += m
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Close releases the decoder and closes the source if it's owned. The
// Reader can be bound again with one of the Reset methods.
func (r *Reader) Close() error {
	return r.unbind()
}

func (r *Reader) end() {
	log.WithFields(log.Fields{"f": "Reader.end", "format": r.format.String(), "raw": r.buf.nraw, "decoded": r.ndecoded}).Debug("end of stream")
	r.releaseEngine()
	r.phase = phaseEnded
}

// fail puts the reader in the failed state and returns err.
func (r *Reader) fail(err error) error {
	r.releaseEngine()
	r.err = err
	r.phase = phaseFailed
	return err
}

// classify turns a decoder error into an *IOError or a *StreamError.
func (r *Reader) classify(err error) error {
	if r.buf.err != nil {
		return r.buf.err
	}
	var ioe *IOError
	if errors.As(err, &ioe) {
		return err
	}

	kind := ErrCorruptStream
	if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) || r.buf.exhausted() {
		// The source ended before the decoder was done.
		kind = ErrTruncatedStream
	}
	return &StreamError{Kind: kind, Format: r.format, Err: err}
}
