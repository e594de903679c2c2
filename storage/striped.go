package storage

import "github.com/hupe1980/primes/internal/mem"

const u8Bits = 8

// BitVectorStriped stores flags in bytes by bit plane: the first len(words)
// flags use bit 0 of every word, the next len(words) flags use bit 1, and so
// on. Flag index maps to word index%len(words), bit index/len(words).
//
// A reset then strides through the byte array once per bit plane, which is
// cheap while the array fits in cache and thrashes badly once it does not.
type BitVectorStriped struct {
	words      []uint8
	lengthBits int
}

var _ Flags = (*BitVectorStriped)(nil)

// NewBitVectorStriped creates a BitVectorStriped with size unmarked flags.
func NewBitVectorStriped(size int) *BitVectorStriped {
	return &BitVectorStriped{
		words:      mem.Filled[uint8](wordsFor(size, u8Bits), 0xff),
		lengthBits: size,
	}
}

// ResetFlags implements Flags.
func (b *BitVectorStriped) ResetFlags(start, skip int) {
	checkReset(start, skip)

	chunk := len(b.words)
	for bit := range u8Bits {
		mask := ^uint8(1 << bit)

		// first index >= start on the stride lattice inside this plane
		planeStart := bit * chunk
		earliest := max(start, planeStart)
		relative := ceilDiv(earliest-start, skip) * skip
		first := start + relative - planeStart

		// large skips leave some planes without any marked flag
		if first >= chunk {
			continue
		}
		plane := b.words[first:]
		for i := 0; i < len(plane); i += skip {
			plane[i] &= mask
		}
	}
}

// Get implements Flags.
func (b *BitVectorStriped) Get(index int) bool {
	if !inRange(index, b.lengthBits) {
		return false
	}
	n := len(b.words)
	return b.words[index%n]&(1<<(index/n)) != 0
}

// Len implements Flags.
func (b *BitVectorStriped) Len() int { return b.lengthBits }

// Word returns the raw byte at word index i. Out-of-range indices yield 0.
func (b *BitVectorStriped) Word(i int) uint8 {
	if !inRange(i, len(b.words)) {
		return 0
	}
	return b.words[i]
}

// NumWords returns the number of bytes backing the storage.
func (b *BitVectorStriped) NumWords() int { return len(b.words) }

func ceilDiv(numerator, denominator int) int {
	return (numerator + denominator - 1) / denominator
}
