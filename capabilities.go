package zread

import (
	"fmt"
	"sort"
	"strings"
)

// A backend is a compiled-in compression format: its decoder and its
// encode-side counterpart.
type backend struct {
	newEngine func(b *buffer) (engine, error)
	compress  func(src []byte, level int) ([]byte, error)
}

// backends is populated by the init functions of the backend files, each of
// them being excluded by its zread_no<format> build tag.
var backends = map[Format]backend{}

func register(f Format, b backend) {
	if _, dup := backends[f]; dup {
		panic(fmt.Sprintf("zread: backend %s registered twice", f))
	}
	backends[f] = b
}

// Capabilities is the set of formats a Reader is allowed to decode.
// FormatNone is always part of it.
type Capabilities map[Format]bool

// Available returns the set of compiled-in formats.
func Available() Capabilities {
	caps := Capabilities{FormatNone: true}
	for f := range backends {
		caps[f] = true
	}
	return caps
}

// Has reports whether f can be decoded.
func (c Capabilities) Has(f Format) bool {
	return f == FormatNone || c[f]
}

// Without returns a copy of c with formats removed.
func (c Capabilities) Without(formats ...Format) Capabilities {
	cpy := make(Capabilities, len(c))
	for f, ok := range c {
		cpy[f] = ok
	}
	for _, f := range formats {
		if f != FormatNone {
			delete(cpy, f)
		}
	}
	return cpy
}

// Formats returns the formats in c, sorted.
func (c Capabilities) Formats() []Format {
	formats := []Format{FormatNone}
	for f, ok := range c {
		if ok && f != FormatNone {
			formats = append(formats, f)
		}
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

func (c Capabilities) String() string {
	var names []string
	for _, f := range c.Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ",")
}
