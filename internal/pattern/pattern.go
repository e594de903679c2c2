package pattern

import "math/bits"

// Word is the set of unsigned word types a pattern can be expressed in.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Width returns the number of bits in T.
func Width[T Word]() int {
	return bits.OnesCount64(uint64(^T(0)))
}

// IndexPattern returns, for each of the width flags touched while striding by
// skip from skip/2, the word offset relative to the start of the chunk.
//
// Within one chunk of skip words (skip*width flags) exactly width flags are
// touched, so every entry is < skip and entries never decrease.
func IndexPattern(skip, width int) []int {
	return AppendIndexPattern(make([]int, 0, width), skip, width)
}

// AppendIndexPattern appends the IndexPattern of skip to dst. With a dst of
// capacity width it does not allocate.
func AppendIndexPattern(dst []int, skip, width int) []int {
	start := skip / 2
	for i := range width {
		dst = append(dst, (start+i*skip)/width)
	}
	return dst
}

// BitPattern returns the bit position within its word of each flag touched by
// IndexPattern.
func BitPattern(skip, width int) []int {
	start := skip / 2
	p := make([]int, width)
	for i := range p {
		p[i] = (start + i*skip) % width
	}
	return p
}

// MaskPattern returns single-bit masks for BitPattern in words of type T.
func MaskPattern[T Word](skip int) []T {
	w := Width[T]()
	masks := make([]T, w)
	for i, b := range BitPattern(skip, w) {
		masks[i] = T(1) << b
	}
	return masks
}

// MaskSetIndex maps an odd skip onto one of the width distinct bit patterns.
// Two odd skips share a bit pattern iff they are congruent modulo 2*width.
func MaskSetIndex(skip, width int) int {
	return (skip/2 - 1) % width
}

// EquivalentSkip returns the smallest odd skip >= 3 that produces the same bit
// pattern as skip in words of the given width.
func EquivalentSkip(skip, width int) int {
	return MaskSetIndex(skip, width)*2 + 3
}
