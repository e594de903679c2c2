package storage

import (
	"github.com/hupe1980/primes/internal/mem"
	"github.com/hupe1980/primes/internal/pattern"
)

// Extreme256Flags is the unrolled hybrid layout over 256-bit words, each stored
// as four consecutive 64-bit lanes (1 = marked).
//
// Skips up to 129 apply precomputed wide-word patterns of 256 lane ops per
// chunk of skip wide words. Larger skips fall back to the sparse 64-bit
// pattern over the lanes, which address the same flags because lane l of
// wide word w holds flags (4w+l)*64 .. (4w+l)*64+63.
type Extreme256Flags struct {
	lanes      []uint64
	lengthBits int
	table      *pattern.LaneTable
	scratch    []int
}

var _ Flags = (*Extreme256Flags)(nil)

// NewExtreme256 creates an Extreme256Flags with size unmarked flags.
func NewExtreme256(size int) *Extreme256Flags {
	wide := wordsFor(size, pattern.WideBits)
	return &Extreme256Flags{
		lanes:      mem.Words[uint64](wide * pattern.LanesPerWide),
		lengthBits: size,
		table:      pattern.Lanes256,
		scratch:    make([]int, 0, pattern.LaneBits),
	}
}

// ResetFlags implements Flags. start must lie on the lattice skip/2 + k*skip.
func (e *Extreme256Flags) ResetFlags(start, skip int) {
	checkLattice(start, skip)

	if ops, ok := e.table.Dense(skip); ok {
		e.resetDense(skip, ops)
	} else {
		p := pattern.Bits64.SparseInto(skip, e.scratch)
		applyPattern(e.lanes, skip, p.Indices, p.Masks)
	}

	factor := skip / 2
	if l := factor / pattern.LaneBits; l < len(e.lanes) {
		e.lanes[l] &^= uint64(1) << (factor % pattern.LaneBits)
	}
}

func (e *Extreme256Flags) resetDense(skip int, ops []pattern.LaneOp) {
	const lpw = pattern.LanesPerWide

	wide := len(e.lanes) / lpw
	full := wide - wide%skip
	span := skip * lpw

	for base := 0; base < full*lpw; base += span {
		chunk := e.lanes[base : base+span : base+span]
		for _, op := range ops {
			chunk[op.Offset*lpw+op.Lane] |= op.Mask
		}
	}

	remWide := wide - full
	rem := e.lanes[full*lpw:]
	for _, op := range ops {
		if op.Offset >= remWide {
			break
		}
		rem[op.Offset*lpw+op.Lane] |= op.Mask
	}
}

// IsDense reports whether skip is served by a precomputed wide pattern.
func (e *Extreme256Flags) IsDense(skip int) bool {
	_, ok := e.table.Dense(skip)
	return ok
}

// Get implements Flags.
func (e *Extreme256Flags) Get(index int) bool {
	if !inRange(index, e.lengthBits) {
		return false
	}
	return e.lanes[index>>6]&(uint64(1)<<(index&63)) == 0
}

// Len implements Flags.
func (e *Extreme256Flags) Len() int { return e.lengthBits }
