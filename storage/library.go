package storage

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/primes/internal/conv"
)

// BitsetFlags keeps marked flags as set bits of a bitset.BitSet.
type BitsetFlags struct {
	set        *bitset.BitSet
	lengthBits int
}

var _ Flags = (*BitsetFlags)(nil)

// NewBitset creates a BitsetFlags with size unmarked flags.
func NewBitset(size int) *BitsetFlags {
	return &BitsetFlags{
		set:        bitset.New(uint(size)),
		lengthBits: size,
	}
}

// ResetFlags implements Flags.
func (b *BitsetFlags) ResetFlags(start, skip int) {
	checkReset(start, skip)

	for i := start; i < b.lengthBits; i += skip {
		b.set.Set(uint(i))
	}
}

// Get implements Flags.
func (b *BitsetFlags) Get(index int) bool {
	return inRange(index, b.lengthBits) && !b.set.Test(uint(index))
}

// Len implements Flags.
func (b *BitsetFlags) Len() int { return b.lengthBits }

// Marked returns the number of marked flags.
func (b *BitsetFlags) Marked() int { return int(b.set.Count()) }

// roaringBatch bounds the buffer handed to AddMany per call.
const roaringBatch = 4096

// RoaringFlags keeps marked flags in a compressed roaring bitmap.
//
// Composite flags get dense quickly, so the bitmap ends up as mostly bitmap
// containers; the layout exists as a baseline rather than for speed.
type RoaringFlags struct {
	rb         *roaring.Bitmap
	lengthBits int
	buf        []uint32
}

var _ Flags = (*RoaringFlags)(nil)

// NewRoaring creates a RoaringFlags with size unmarked flags. Roaring bitmaps
// address 32-bit values, so size must not exceed math.MaxUint32.
func NewRoaring(size int) (*RoaringFlags, error) {
	if _, err := conv.IntToUint32(size); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSizeOverflow, Roaring, err)
	}
	return &RoaringFlags{
		rb:         roaring.New(),
		lengthBits: size,
		buf:        make([]uint32, 0, roaringBatch),
	}, nil
}

// ResetFlags implements Flags.
func (r *RoaringFlags) ResetFlags(start, skip int) {
	checkReset(start, skip)

	buf := r.buf[:0]
	for i := start; i < r.lengthBits; i += skip {
		buf = append(buf, uint32(i))
		if len(buf) == cap(buf) {
			r.rb.AddMany(buf)
			buf = buf[:0]
		}
	}
	if len(buf) > 0 {
		r.rb.AddMany(buf)
	}
	r.buf = buf[:0]
}

// Get implements Flags.
func (r *RoaringFlags) Get(index int) bool {
	return inRange(index, r.lengthBits) && !r.rb.Contains(uint32(index))
}

// Len implements Flags.
func (r *RoaringFlags) Len() int { return r.lengthBits }

// Marked returns the number of marked flags.
func (r *RoaringFlags) Marked() int {
	n, err := conv.Uint64ToInt(r.rb.GetCardinality())
	if err != nil {
		panic(err)
	}
	return n
}

// Optimize converts containers to run-length encoding where that is smaller.
func (r *RoaringFlags) Optimize() { r.rb.RunOptimize() }
