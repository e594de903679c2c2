package pattern

import "fmt"

// Pattern is the set of (word offset, mask) pairs applied to each chunk of
// Skip words when marking every Skip-th flag starting at Skip/2.
type Pattern[T Word] struct {
	Skip    int
	Indices []int
	Masks   []T
}

// Table holds the precomputed patterns for one word type.
//
// Dense patterns are kept for every odd skip up to MaxDense. Mask sets are
// kept for every equivalent skip (3 .. 2*width+1), so sparse patterns for any
// larger skip only need their index pattern computed.
type Table[T Word] struct {
	width    int
	maxDense int
	dense    []Pattern[T] // indexed by skip/2 - 1
	maskSets [][]T        // indexed by MaskSetIndex
}

// NewTable builds a table with dense patterns up to maxDense.
// maxDense must be odd and >= 3.
func NewTable[T Word](maxDense int) *Table[T] {
	if maxDense < 3 || maxDense%2 == 0 {
		panic(fmt.Sprintf("pattern: invalid dense threshold %d", maxDense))
	}

	w := Width[T]()
	t := &Table[T]{
		width:    w,
		maxDense: maxDense,
		maskSets: make([][]T, w),
	}

	for i := range t.maskSets {
		t.maskSets[i] = MaskPattern[T](i*2 + 3)
	}

	t.dense = make([]Pattern[T], maxDense/2)
	for skip := 3; skip <= maxDense; skip += 2 {
		t.dense[skip/2-1] = Pattern[T]{
			Skip:    skip,
			Indices: IndexPattern(skip, w),
			Masks:   t.maskSets[MaskSetIndex(skip, w)],
		}
	}

	return t
}

// Width returns the word width in bits.
func (t *Table[T]) Width() int { return t.width }

// MaxDense returns the largest skip with a precomputed dense pattern.
func (t *Table[T]) MaxDense() int { return t.maxDense }

// Dense returns the precomputed pattern for skip, if there is one.
func (t *Table[T]) Dense(skip int) (Pattern[T], bool) {
	if skip < 3 || skip > t.maxDense || skip%2 == 0 {
		return Pattern[T]{}, false
	}
	return t.dense[skip/2-1], true
}

// Sparse returns a pattern for an arbitrary odd skip: the masks of its
// equivalent skip and index offsets computed for skip itself.
func (t *Table[T]) Sparse(skip int) Pattern[T] {
	return Pattern[T]{
		Skip:    skip,
		Indices: IndexPattern(skip, t.width),
		Masks:   t.maskSets[MaskSetIndex(skip, t.width)],
	}
}

// SparseInto is Sparse with the index offsets written into buf, which is
// reused from its start. Pass a buf of capacity Width to avoid allocating.
func (t *Table[T]) SparseInto(skip int, buf []int) Pattern[T] {
	return Pattern[T]{
		Skip:    skip,
		Indices: AppendIndexPattern(buf[:0], skip, t.width),
		Masks:   t.maskSets[MaskSetIndex(skip, t.width)],
	}
}

// Lookup returns the dense pattern when available, otherwise the sparse one.
func (t *Table[T]) Lookup(skip int) Pattern[T] {
	if p, ok := t.Dense(skip); ok {
		return p
	}
	return t.Sparse(skip)
}

// Process-wide tables. Built once during package initialisation and never
// written afterwards.
var (
	Bits8  = NewTable[uint8](19)
	Bits32 = NewTable[uint32](65)
	Bits64 = NewTable[uint64](65)
)
