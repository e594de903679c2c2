package storage

import "github.com/hupe1980/primes/internal/mem"

// ByteVector stores one byte per flag: 1 for unmarked, 0 for marked.
type ByteVector struct {
	flags []byte
}

var _ Flags = (*ByteVector)(nil)

// NewByteVector creates a ByteVector with size unmarked flags.
func NewByteVector(size int) *ByteVector {
	return &ByteVector{flags: mem.Filled[byte](size, 1)}
}

// ResetFlags implements Flags.
func (b *ByteVector) ResetFlags(start, skip int) {
	checkReset(start, skip)

	// i < len(flags) lets the compiler drop the bounds check.
	flags := b.flags
	for i := start; i < len(flags); i += skip {
		flags[i] = 0
	}
}

// Get implements Flags.
func (b *ByteVector) Get(index int) bool {
	if !inRange(index, len(b.flags)) {
		return false
	}
	return b.flags[index] == 1
}

// Len implements Flags.
func (b *ByteVector) Len() int { return len(b.flags) }
