package storage

import (
	"math/bits"

	"github.com/hupe1980/primes/internal/mem"
	"github.com/hupe1980/primes/internal/pattern"
)

// Unrolled is a hybrid dense/sparse bit layout over words of type T with
// inverted polarity (1 = marked).
//
// Resets walk the words in chunks of skip words. Every full chunk receives
// all W (offset, mask) pairs of the skip's pattern without any per-bit
// branch; the trailing partial chunk receives the pairs whose offset still
// fits. Skips up to the table's dense threshold use patterns precomputed at
// startup, larger skips borrow the masks of their equivalent skip and only
// compute the offsets.
//
// The pattern covers the whole lattice skip/2 + k*skip, including the
// factor's own flag at skip/2, which is restored after every reset.
type Unrolled[T pattern.Word] struct {
	words      []T
	lengthBits int
	table      *pattern.Table[T]
	shift      uint
	mask       int
	scratch    []int
}

var (
	_ Flags = (*Unrolled[uint8])(nil)
	_ Flags = (*Unrolled[uint32])(nil)
	_ Flags = (*Unrolled[uint64])(nil)
)

// NewUnrolled8 creates an 8-bit Unrolled layout (dense for skip <= 19).
func NewUnrolled8(size int) *Unrolled[uint8] {
	return newUnrolled(size, pattern.Bits8)
}

// NewUnrolled32 creates a 32-bit Unrolled layout (dense for skip <= 65).
func NewUnrolled32(size int) *Unrolled[uint32] {
	return newUnrolled(size, pattern.Bits32)
}

// NewUnrolled64 creates a 64-bit Unrolled layout (dense for skip <= 65).
func NewUnrolled64(size int) *Unrolled[uint64] {
	return newUnrolled(size, pattern.Bits64)
}

func newUnrolled[T pattern.Word](size int, table *pattern.Table[T]) *Unrolled[T] {
	w := table.Width()
	return &Unrolled[T]{
		words:      mem.Words[T](wordsFor(size, w)),
		lengthBits: size,
		table:      table,
		shift:      uint(bits.TrailingZeros(uint(w))),
		mask:       w - 1,
		scratch:    make([]int, 0, w),
	}
}

// ResetFlags implements Flags. start must lie on the lattice skip/2 + k*skip.
func (u *Unrolled[T]) ResetFlags(start, skip int) {
	checkLattice(start, skip)

	if p, ok := u.table.Dense(skip); ok {
		u.resetDense(p)
		return
	}
	u.resetSparse(skip)
}

// IsDense reports whether skip is served by a precomputed pattern.
func (u *Unrolled[T]) IsDense(skip int) bool {
	_, ok := u.table.Dense(skip)
	return ok
}

func (u *Unrolled[T]) resetDense(p pattern.Pattern[T]) {
	applyPattern(u.words, p.Skip, p.Indices, p.Masks)
	u.restoreFactor(p.Skip)
}

func (u *Unrolled[T]) resetSparse(skip int) {
	p := u.table.SparseInto(skip, u.scratch)
	applyPattern(u.words, skip, p.Indices, p.Masks)
	u.restoreFactor(skip)
}

// restoreFactor unmarks the flag of the factor itself, which the pattern
// always covers.
func (u *Unrolled[T]) restoreFactor(skip int) {
	factor := skip / 2
	if w := factor >> u.shift; w < len(u.words) {
		u.words[w] &^= T(1) << (factor & u.mask)
	}
}

// Get implements Flags.
func (u *Unrolled[T]) Get(index int) bool {
	if !inRange(index, u.lengthBits) {
		return false
	}
	return u.words[index>>u.shift]&(T(1)<<(index&u.mask)) == 0
}

// Len implements Flags.
func (u *Unrolled[T]) Len() int { return u.lengthBits }

// applyPattern or-s masks[i] into word indices[i] of every chunk of skip
// words. indices must be non-decreasing and < skip.
func applyPattern[T pattern.Word](words []T, skip int, indices []int, masks []T) {
	masks = masks[:len(indices)]

	full := len(words) - len(words)%skip
	for base := 0; base < full; base += skip {
		chunk := words[base : base+skip : base+skip]
		for i, off := range indices {
			chunk[off] |= masks[i]
		}
	}

	rem := words[full:]
	for i, off := range indices {
		if off >= len(rem) {
			break
		}
		rem[off] |= masks[i]
	}
}
