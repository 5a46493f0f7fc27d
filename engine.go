package zread

// An engine decodes the compressed stream it reads from the buffer. Read
// returns io.EOF exactly at the logical end of the stream.
type engine interface {
	Read(p []byte) (int, error)

	// release frees the decoder state. The engine can't be used afterwards.
	release()
}

// passthrough is the engine of FormatNone, it forwards the raw bytes.
type passthrough struct {
	b *buffer
}

func newPassthrough(b *buffer) (engine, error) {
	return &passthrough{b: b}, nil
}

func (e *passthrough) Read(p []byte) (int, error) { return e.b.Drain(p) }

func (e *passthrough) release() { e.b = nil }
