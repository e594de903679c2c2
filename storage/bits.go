package storage

import (
	"math"
	"math/bits"

	"github.com/hupe1980/primes/internal/mem"
)

const u32Bits = 32

// BitVector packs 32 flags per word (1 = unmarked). ResetFlags computes the
// word index and shift for every marked flag.
type BitVector struct {
	words      []uint32
	lengthBits int
}

var _ Flags = (*BitVector)(nil)

// NewBitVector creates a BitVector with size unmarked flags.
func NewBitVector(size int) *BitVector {
	return &BitVector{
		words:      filledWords(size),
		lengthBits: size,
	}
}

func filledWords(size int) []uint32 {
	return mem.Filled[uint32](wordsFor(size, u32Bits), math.MaxUint32)
}

// ResetFlags implements Flags.
func (b *BitVector) ResetFlags(start, skip int) {
	checkReset(start, skip)

	words := b.words
	end := len(words) * u32Bits
	for i := start; i < end; i += skip {
		words[i/u32Bits] &^= 1 << (i % u32Bits)
	}
}

// Get implements Flags.
func (b *BitVector) Get(index int) bool {
	return getSet32(b.words, b.lengthBits, index)
}

// Len implements Flags.
func (b *BitVector) Len() int { return b.lengthBits }

func getSet32(words []uint32, lengthBits, index int) bool {
	if !inRange(index, lengthBits) {
		return false
	}
	return words[index/u32Bits]&(1<<(index%u32Bits)) != 0
}

// BitVectorRotate has the layout of BitVector but resets by rotating a
// single cleared-bit mask left by skip instead of recomputing the shift.
type BitVectorRotate struct {
	words      []uint32
	lengthBits int
}

var _ Flags = (*BitVectorRotate)(nil)

// NewBitVectorRotate creates a BitVectorRotate with size unmarked flags.
func NewBitVectorRotate(size int) *BitVectorRotate {
	return &BitVectorRotate{
		words:      filledWords(size),
		lengthBits: size,
	}
}

// ResetFlags implements Flags.
func (b *BitVectorRotate) ResetFlags(start, skip int) {
	checkReset(start, skip)

	words := b.words
	end := len(words) * u32Bits
	mask := ^(uint32(1) << (start % u32Bits))
	roll := skip % u32Bits
	for i := start; i < end; i += skip {
		words[i/u32Bits] &= mask
		mask = bits.RotateLeft32(mask, roll)
	}
}

// Get implements Flags.
func (b *BitVectorRotate) Get(index int) bool {
	return getSet32(b.words, b.lengthBits, index)
}

// Len implements Flags.
func (b *BitVectorRotate) Len() int { return b.lengthBits }

// BitVectorUnroll4 packs 32 flags per word with inverted polarity
// (1 = marked) and resets four strided positions per loop iteration.
type BitVectorUnroll4 struct {
	words      []uint32
	lengthBits int
}

var _ Flags = (*BitVectorUnroll4)(nil)

// NewBitVectorUnroll4 creates a BitVectorUnroll4 with size unmarked flags.
func NewBitVectorUnroll4(size int) *BitVectorUnroll4 {
	return &BitVectorUnroll4{
		words:      mem.Words[uint32](wordsFor(size, u32Bits)),
		lengthBits: size,
	}
}

// ResetFlags implements Flags.
func (b *BitVectorUnroll4) ResetFlags(start, skip int) {
	checkReset(start, skip)

	words := b.words
	end := len(words) * u32Bits

	i0 := start
	i1 := i0 + skip
	i2 := i0 + skip*2
	i3 := i0 + skip*3
	skip4 := skip * 4

	// i3 is the largest cursor, so all four are in range here.
	for i3 < end {
		words[i0>>5] |= 1 << (i0 & 31)
		words[i1>>5] |= 1 << (i1 & 31)
		words[i2>>5] |= 1 << (i2 & 31)
		words[i3>>5] |= 1 << (i3 & 31)

		i0 += skip4
		i1 += skip4
		i2 += skip4
		i3 += skip4
	}

	for i0 < end {
		words[i0>>5] |= 1 << (i0 & 31)
		i0 += skip
	}
}

// Get implements Flags.
func (b *BitVectorUnroll4) Get(index int) bool {
	if !inRange(index, b.lengthBits) {
		return false
	}
	return b.words[index>>5]&(1<<(index&31)) == 0
}

// Len implements Flags.
func (b *BitVectorUnroll4) Len() int { return b.lengthBits }
