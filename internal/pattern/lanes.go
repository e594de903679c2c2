package pattern

// WideBits is the width of the wide words used by the 256-bit layout.
const WideBits = 256

// LaneBits is the width of one lane inside a wide word.
const LaneBits = 64

// LanesPerWide is the number of 64-bit lanes that make up one wide word.
const LanesPerWide = WideBits / LaneBits

// LaneOp sets one bit in a wide word: Mask is or-ed into lane Lane of the
// wide word Offset words after the chunk start.
type LaneOp struct {
	Offset int
	Lane   int
	Mask   uint64
}

// LaneTable holds dense 256-bit patterns decomposed into 64-bit lane ops.
type LaneTable struct {
	maxDense int
	dense    [][]LaneOp // indexed by skip/2 - 1
}

// NewLaneTable builds dense wide-word patterns for every odd skip up to
// maxDense.
func NewLaneTable(maxDense int) *LaneTable {
	t := &LaneTable{
		maxDense: maxDense,
		dense:    make([][]LaneOp, maxDense/2),
	}
	for skip := 3; skip <= maxDense; skip += 2 {
		t.dense[skip/2-1] = LaneOps(skip)
	}
	return t
}

// LaneOps computes the WideBits lane ops for skip.
func LaneOps(skip int) []LaneOp {
	idx := IndexPattern(skip, WideBits)
	pos := BitPattern(skip, WideBits)
	ops := make([]LaneOp, WideBits)
	for i := range ops {
		ops[i] = LaneOp{
			Offset: idx[i],
			Lane:   pos[i] / LaneBits,
			Mask:   uint64(1) << (pos[i] % LaneBits),
		}
	}
	return ops
}

// MaxDense returns the largest skip with a dense pattern.
func (t *LaneTable) MaxDense() int { return t.maxDense }

// Dense returns the lane ops for skip, if precomputed.
func (t *LaneTable) Dense(skip int) ([]LaneOp, bool) {
	if skip < 3 || skip > t.maxDense || skip%2 == 0 {
		return nil, false
	}
	return t.dense[skip/2-1], true
}

// Lanes256 is the process-wide dense table for 256-bit words.
var Lanes256 = NewLaneTable(129)
