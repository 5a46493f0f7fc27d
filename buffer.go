package zread

import (
	"fmt"
	"io"
)

// DefaultBufferSize is the size of the chunks read from the source.
const DefaultBufferSize = 64 * 1024

// maxConsecutiveEmptyReads is how many (0, nil) reads from the source are
// tolerated before giving up with io.ErrNoProgress.
const maxConsecutiveEmptyReads = 100

// buffer holds the bytes read from the source and not yet handed to an
// engine. Sniffing peeks at them, engines drain them.
//
// buffer implements io.Reader and io.ByteReader, so that decoders which need
// a byte reader don't wrap it in their own read-ahead buffer.
type buffer struct {
	src  source
	buf  []byte
	r, w int   // buf[r:w] are the buffered bytes
	eof  bool  // src returned io.EOF
	err  error // sticky src error, never io.EOF

	nraw int64 // bytes read from src
}

func newBuffer(src source, size int) *buffer {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &buffer{src: src, buf: make([]byte, size)}
}

func (b *buffer) buffered() int { return b.w - b.r }

// exhausted reports whether the source reached its end and every byte has
// been drained.
func (b *buffer) exhausted() bool { return b.eof && b.buffered() == 0 }

// fill reads a new chunk from the source, growing buf if it's full.
func (b *buffer) fill() {
	if b.r > 0 {
		copy(b.buf, b.buf[b.r:b.w])
		b.w -= b.r
		b.r = 0
	}
	if b.w == len(b.buf) {
		b.buf = append(b.buf, make([]byte, len(b.buf))...)
	}

	for i := 0; i < maxConsecutiveEmptyReads; i++ {
		n, err := b.src.RawRead(b.buf[b.w:])
		b.w += n
		b.nraw += int64(n)
		switch {
		case err == io.EOF:
			b.eof = true
			return
		case err != nil:
			b.err = err
			return
		case n > 0:
			return
		}
	}
	b.err = &IOError{Op: "read", Err: io.ErrNoProgress}
}

// Peek returns up to n bytes without advancing the cursor. Fewer than n bytes
// are returned only if the source reached its end or failed, in the latter
// case the error is returned as well. The returned slice is valid until the
// next call to a buffer method.
func (b *buffer) Peek(n int) ([]byte, error) {
	for b.buffered() < n && !b.eof && b.err == nil {
		b.fill()
	}
	if b.buffered() < n {
		return b.buf[b.r:b.w], b.err
	}
	return b.buf[b.r : b.r+n], nil
}

// Consume advances the cursor by n bytes, which must have been peeked.
func (b *buffer) Consume(n int) {
	if n < 0 || n > b.buffered() {
		panic(fmt.Sprintf("zread: consume %d bytes with %d buffered", n, b.buffered()))
	}
	b.r += n
}

// Drain copies up to len(p) bytes into p and consumes them. It returns io.EOF
// once the source is exhausted.
func (b *buffer) Drain(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.buffered() == 0 {
		if b.err != nil {
			return 0, b.err
		}
		if b.eof {
			return 0, io.EOF
		}
		if len(p) >= len(b.buf) {
			// Large read with an empty buffer: read directly into p.
			return b.readDirect(p)
		}
		b.fill()
		if b.buffered() == 0 {
			return b.Drain(p)
		}
	}
	n := copy(p, b.buf[b.r:b.w])
	b.Consume(n)
	return n, nil
}

func (b *buffer) readDirect(p []byte) (int, error) {
	for i := 0; i < maxConsecutiveEmptyReads; i++ {
		n, err := b.src.RawRead(p)
		b.nraw += int64(n)
		switch {
		case err == io.EOF:
			b.eof = true
			if n > 0 {
				return n, nil
			}
			return 0, io.EOF
		case err != nil:
			b.err = err
			return n, err
		case n > 0:
			return n, nil
		}
	}
	b.err = &IOError{Op: "read", Err: io.ErrNoProgress}
	return 0, b.err
}

func (b *buffer) Read(p []byte) (int, error) { return b.Drain(p) }

func (b *buffer) ReadByte() (byte, error) {
	p, err := b.Peek(1)
	if err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, io.EOF
	}
	c := p[0]
	b.Consume(1)
	return c, nil
}
