package emitter

import (
	"fmt"
	"strings"
)

// Fragment is a piece of generated source. Fragments produced by the
// families end with a newline so adjacent statements never share a line.
type Fragment string

// ReactImport is the line every document starts with
const ReactImport Fragment = "import React from \"react\";\n"

// Buffer accumulates fragments in emission order
type Buffer struct {
	frags []Fragment
}

// NewBuffer creates a buffer seeded with the React import
func NewBuffer() *Buffer {
	return &Buffer{frags: []Fragment{ReactImport}}
}

// Append adds a fragment after everything emitted so far
func (b *Buffer) Append(f Fragment) {
	b.frags = append(b.frags, f)
}

// Appendf adds a formatted fragment
func (b *Buffer) Appendf(format string, args ...any) {
	b.Append(Fragment(fmt.Sprintf(format, args...)))
}

// Replace discards everything emitted so far, the seed line included, and
// starts over with f. The endpoint and paint-timing imports rely on this.
func (b *Buffer) Replace(f Fragment) {
	b.frags = append(b.frags[:0], f)
}

// Fragments returns the accumulated fragments
func (b *Buffer) Fragments() []Fragment {
	out := make([]Fragment, len(b.frags))
	copy(out, b.frags)
	return out
}

// String concatenates the fragments
func (b *Buffer) String() string {
	var sb strings.Builder
	for _, f := range b.frags {
		sb.WriteString(string(f))
	}
	return sb.String()
}
