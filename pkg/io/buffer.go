package io

import (
	"errors"
	"io"
)

// Buffer is an in-memory byte stream supporting reads, writes and seeks.
// Writing past the end grows it, seeking past the end and writing there fills
// the gap with zeroes.
type Buffer struct {
	data []byte
	pos  int
}

var errNegativePosition = errors.New("negative position")

// NewBuffer makes a Buffer positioned at the start of b. The Buffer takes
// ownership of b.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{data: b}
}

// Read implements io.Reader interface.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.pos >= len(b.data) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += n
	return n, nil
}

// Write implements io.Writer interface.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	end := b.pos + len(p)
	if end > len(b.data) {
		if end > cap(b.data) {
			grown := make([]byte, end, max(end, 2*cap(b.data)))
			copy(grown, b.data)
			b.data = grown
		} else {
			clear(b.data[len(b.data):end])
			b.data = b.data[:end]
		}
	}
	copy(b.data[b.pos:], p)
	b.pos = end
	return len(p), nil
}

// Seek implements io.Seeker interface.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(b.pos) + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if abs < 0 {
		return 0, errNegativePosition
	}
	b.pos = int(abs)
	return abs, nil
}

// Bytes returns the whole buffer contents, regardless of the current
// position. The slice is valid until the next write.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the buffer size.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Reset empties the buffer keeping the allocated memory.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.pos = 0
}

// Grow makes sure at least n more bytes can be appended without reallocation.
func (b *Buffer) Grow(n int) {
	if len(b.data)+n > cap(b.data) {
		grown := make([]byte, len(b.data), len(b.data)+n)
		copy(grown, b.data)
		b.data = grown
	}
}
