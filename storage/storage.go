package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/primes/internal/invariants"
)

var (
	// ErrUnknownKind is returned when a storage kind is not recognised.
	ErrUnknownKind = errors.New("unknown storage kind")

	// ErrInvalidSize is returned for negative flag counts.
	ErrInvalidSize = errors.New("storage size must not be negative")

	// ErrSizeOverflow is returned when a layout cannot address the requested
	// number of flags.
	ErrSizeOverflow = errors.New("storage size exceeds layout capacity")
)

// Flags is a fixed-length array of sieve flags, one per odd candidate.
//
// All flags start unmarked (Get returns true) and are only ever marked.
type Flags interface {
	// ResetFlags marks every flag at start, start+skip, start+2*skip, ...
	// below Len. skip is odd and >= 3.
	ResetFlags(start, skip int)

	// Get reports whether the flag at index is in range and unmarked.
	Get(index int) bool

	// Len returns the number of logical flags.
	Len() int
}

// Kind selects a storage layout.
type Kind uint8

const (
	// Bytes stores one byte per flag.
	Bytes Kind = iota
	// Bits packs 32 flags per word, computing word and bit on every step.
	Bits
	// BitsRotate packs 32 flags per word and rotates a rolling mask.
	BitsRotate
	// BitsStriped packs flags into bytes by bit plane.
	BitsStriped
	// BitsUnroll4 packs 32 flags per word and resets four strides per step.
	BitsUnroll4
	// Unrolled8 applies precomputed 8-bit word patterns.
	Unrolled8
	// Unrolled32 applies precomputed 32-bit word patterns.
	Unrolled32
	// Unrolled64 applies precomputed 64-bit word patterns.
	Unrolled64
	// Extreme256 applies precomputed 256-bit word patterns.
	Extreme256
	// Bitset uses github.com/bits-and-blooms/bitset.
	Bitset
	// Roaring uses a roaring bitmap of composite flags.
	Roaring

	numKinds
)

var kindNames = [numKinds]string{
	Bytes:       "byte-storage",
	Bits:        "bit-storage",
	BitsRotate:  "bit-storage-rotate",
	BitsStriped: "bit-storage-striped",
	BitsUnroll4: "bit-storage-unroll4",
	Unrolled8:   "unrolled-bits8",
	Unrolled32:  "unrolled-bits32",
	Unrolled64:  "unrolled-bits64",
	Extreme256:  "unrolled-extreme256",
	Bitset:      "bitset",
	Roaring:     "roaring",
}

// String returns the report label of k.
func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// BitsPerFlag returns the number of bits of memory one flag occupies.
func (k Kind) BitsPerFlag() int {
	if k == Bytes {
		return 8
	}
	return 1
}

// ParseKind parses a report label (case-insensitive) into a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Kinds returns every storage kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// New creates storage of the given kind holding size unmarked flags.
func New(kind Kind, size int) (Flags, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	switch kind {
	case Bytes:
		return NewByteVector(size), nil
	case Bits:
		return NewBitVector(size), nil
	case BitsRotate:
		return NewBitVectorRotate(size), nil
	case BitsStriped:
		return NewBitVectorStriped(size), nil
	case BitsUnroll4:
		return NewBitVectorUnroll4(size), nil
	case Unrolled8:
		return NewUnrolled8(size), nil
	case Unrolled32:
		return NewUnrolled32(size), nil
	case Unrolled64:
		return NewUnrolled64(size), nil
	case Extreme256:
		return NewExtreme256(size), nil
	case Bitset:
		return NewBitset(size), nil
	case Roaring:
		r, err := NewRoaring(size)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// wordsFor returns ceil(size / width).
func wordsFor(size, width int) int {
	return size/width + min(size%width, 1)
}

// inRange reports 0 <= index < n with a single comparison.
func inRange(index, n int) bool {
	return uint(index) < uint(n)
}

func checkReset(start, skip int) {
	if invariants.Enabled {
		if skip < 3 || skip%2 == 0 {
			panic(fmt.Sprintf("storage: invalid skip %d", skip))
		}
		if start < 0 {
			panic(fmt.Sprintf("storage: negative start %d", start))
		}
	}
}

// checkLattice additionally verifies that start lies on the lattice
// skip/2 + k*skip that the pattern-based layouts always mark in full.
func checkLattice(start, skip int) {
	checkReset(start, skip)
	if invariants.Enabled && (start < skip/2 || (start-skip/2)%skip != 0) {
		panic(fmt.Sprintf("storage: start %d is not on the lattice of skip %d", start, skip))
	}
}
