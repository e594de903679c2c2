package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidth(t *testing.T) {
	assert.Equal(t, 8, Width[uint8]())
	assert.Equal(t, 16, Width[uint16]())
	assert.Equal(t, 32, Width[uint32]())
	assert.Equal(t, 64, Width[uint64]())
}

func TestBitPattern_U8(t *testing.T) {
	assert.Equal(t, []int{1, 4, 7, 2, 5, 0, 3, 6}, BitPattern(3, 8))
	assert.Equal(t, []int{2, 7, 4, 1, 6, 3, 0, 5}, BitPattern(5, 8))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, BitPattern(17, 8))
}

func TestBitPattern_U32(t *testing.T) {
	assert.Equal(t, []int{
		1, 4, 7, 10, 13, 16, 19, 22, 25, 28, 31, 2, 5, 8, 11, 14, 17, 20, 23, 26, 29, 0, 3,
		6, 9, 12, 15, 18, 21, 24, 27, 30,
	}, BitPattern(3, 32))
	assert.Equal(t, []int{
		2, 7, 12, 17, 22, 27, 0, 5, 10, 15, 20, 25, 30, 3, 8, 13, 18, 23, 28, 1, 6, 11, 16,
		21, 26, 31, 4, 9, 14, 19, 24, 29,
	}, BitPattern(5, 32))
	assert.Equal(t, []int{
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22,
		23, 24, 25, 26, 27, 28, 29, 30, 31,
	}, BitPattern(65, 32))
}

func TestMaskPattern_U8(t *testing.T) {
	want := []uint8{1 << 1, 1 << 4, 1 << 7, 1 << 2, 1 << 5, 1 << 0, 1 << 3, 1 << 6}
	assert.Equal(t, want, MaskPattern[uint8](3))
}

func TestIndexPattern_U8(t *testing.T) {
	assert.Equal(t, []int{0, 0, 0, 1, 1, 2, 2, 2}, IndexPattern(3, 8))
	assert.Equal(t, []int{0, 0, 1, 2, 2, 3, 4, 4}, IndexPattern(5, 8))
	assert.Equal(t, []int{1, 3, 5, 7, 9, 11, 13, 15}, IndexPattern(17, 8))
	assert.Equal(t, []int{3, 9, 15, 22, 28, 35, 41, 47}, IndexPattern(51, 8))
}

func TestIndexPattern_U32(t *testing.T) {
	assert.Equal(t, []int{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2,
		2, 2, 2, 2,
	}, IndexPattern(3, 32))
	assert.Equal(t, []int{
		0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 3, 3, 3, 3, 3, 3, 3, 4, 4,
		4, 4, 4, 4,
	}, IndexPattern(5, 32))
	assert.Equal(t, []int{
		0, 2, 3, 5, 7, 8, 10, 11, 13, 15, 16, 18, 19, 21, 23, 24, 26, 27, 29, 31, 32, 34,
		35, 37, 39, 40, 42, 43, 45, 47, 48, 50,
	}, IndexPattern(51, 32))
}

func TestIndexPattern_BoundedBySkip(t *testing.T) {
	for _, width := range []int{8, 32, 64, 256} {
		for skip := 3; skip <= 1001; skip += 2 {
			p := IndexPattern(skip, width)
			require.Len(t, p, width)
			for i, off := range p {
				require.Less(t, off, skip, "width=%d skip=%d i=%d", width, skip, i)
				if i > 0 {
					require.GreaterOrEqual(t, off, p[i-1], "width=%d skip=%d i=%d", width, skip, i)
				}
			}
		}
	}
}

func TestEquivalentSkip(t *testing.T) {
	tests := []struct {
		skip, width, want int
	}{
		{3, 8, 3},
		{17, 8, 17},
		{19, 8, 3},
		{21, 8, 5},
		{65, 32, 65},
		{67, 32, 3},
		{129, 64, 129},
		{131, 64, 3},
		{201, 64, 73},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EquivalentSkip(tt.skip, tt.width), "skip=%d width=%d", tt.skip, tt.width)
	}
}

func TestEquivalentSkip_SharesBitPattern(t *testing.T) {
	for _, width := range []int{8, 32, 64} {
		for skip := 3; skip <= 1001; skip += 2 {
			eq := EquivalentSkip(skip, width)
			require.LessOrEqual(t, eq, 2*width+1)
			require.Equal(t, BitPattern(eq, width), BitPattern(skip, width), "width=%d skip=%d", width, skip)
			require.Equal(t, BitPattern(skip, width), BitPattern(skip+2*width, width), "width=%d skip=%d", width, skip)
		}
	}
}

func TestTable_Dense(t *testing.T) {
	p, ok := Bits8.Dense(19)
	require.True(t, ok)
	assert.Equal(t, 19, p.Skip)
	assert.Equal(t, IndexPattern(19, 8), p.Indices)
	assert.Equal(t, MaskPattern[uint8](19), p.Masks)

	_, ok = Bits8.Dense(21)
	assert.False(t, ok)
	_, ok = Bits8.Dense(4)
	assert.False(t, ok)
	_, ok = Bits8.Dense(1)
	assert.False(t, ok)

	for skip := 3; skip <= 65; skip += 2 {
		p, ok := Bits64.Dense(skip)
		require.True(t, ok, "skip=%d", skip)
		assert.Equal(t, MaskPattern[uint64](skip), p.Masks, "skip=%d", skip)
	}
}

func TestTable_Sparse(t *testing.T) {
	for skip := 3; skip <= 501; skip += 2 {
		p := Bits32.Sparse(skip)
		assert.Equal(t, skip, p.Skip)
		assert.Equal(t, IndexPattern(skip, 32), p.Indices)
		assert.Equal(t, MaskPattern[uint32](skip), p.Masks, "skip=%d", skip)
	}
}

func TestTable_SparseInto(t *testing.T) {
	buf := make([]int, 0, 64)

	for skip := 67; skip <= 501; skip += 2 {
		p := Bits64.SparseInto(skip, buf)
		assert.Equal(t, Bits64.Sparse(skip), p, "skip=%d", skip)
		assert.Same(t, &buf[:1][0], &p.Indices[0], "skip=%d", skip)
	}

	allocs := testing.AllocsPerRun(100, func() {
		_ = Bits64.SparseInto(131, buf)
	})
	assert.Zero(t, allocs)
}

func TestTable_Lookup(t *testing.T) {
	dense := Bits32.Lookup(65)
	sparse := Bits32.Lookup(67)
	assert.Equal(t, 65, dense.Skip)
	assert.Equal(t, 67, sparse.Skip)
	assert.Equal(t, Bits32.Sparse(65), dense)
}

func TestNewTable_InvalidThreshold(t *testing.T) {
	assert.Panics(t, func() { NewTable[uint8](2) })
	assert.Panics(t, func() { NewTable[uint8](20) })
}

func TestLaneOps(t *testing.T) {
	for skip := 3; skip <= 129; skip += 2 {
		ops, ok := Lanes256.Dense(skip)
		require.True(t, ok)
		require.Len(t, ops, WideBits)
		pos := BitPattern(skip, WideBits)
		for i, op := range ops {
			require.Less(t, op.Offset, skip)
			require.Less(t, op.Lane, LanesPerWide)
			assert.Equal(t, uint64(1)<<(pos[i]%LaneBits), op.Mask)
			assert.Equal(t, pos[i]/LaneBits, op.Lane)
		}
	}
	_, ok := Lanes256.Dense(131)
	assert.False(t, ok)
}
