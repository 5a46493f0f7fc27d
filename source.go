package zread

import (
	"fmt"
	"io"
	"os"
)

// A source is where raw bytes come from. It is either an ownedDescriptor or a
// borrowedStream, release only closes the former.
type source interface {
	// RawRead blocks until at least one byte is read, the end of data is
	// reached (io.EOF) or the read fails (*IOError).
	RawRead(p []byte) (int, error)
	release() error
}

// ownedDescriptor is a file the Reader took ownership of.
type ownedDescriptor struct {
	f *os.File
}

func newOwnedDescriptor(fd int) (ownedDescriptor, error) {
	if fd < 0 {
		return ownedDescriptor{}, &IOError{Op: "open", Err: fmt.Errorf("invalid file descriptor %d", fd)}
	}
	f := os.NewFile(uintptr(fd), fmt.Sprintf("fd%d", fd))
	if f == nil {
		return ownedDescriptor{}, &IOError{Op: "open", Err: fmt.Errorf("invalid file descriptor %d", fd)}
	}
	return ownedDescriptor{f: f}, nil
}

func (s ownedDescriptor) RawRead(p []byte) (int, error) {
	n, err := s.f.Read(p)
	if err != nil && err != io.EOF {
		return n, &IOError{Op: "read " + s.f.Name(), Err: err}
	}
	return n, err
}

func (s ownedDescriptor) release() error {
	if err := s.f.Close(); err != nil {
		return &IOError{Op: "close " + s.f.Name(), Err: err}
	}
	return nil
}

// borrowedStream is a reader owned by the caller, it's never closed.
type borrowedStream struct {
	r io.Reader
}

func (s borrowedStream) RawRead(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		return n, &IOError{Op: "read", Err: err}
	}
	return n, err
}

func (s borrowedStream) release() error { return nil }
