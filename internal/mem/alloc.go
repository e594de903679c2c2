// Package mem provides memory allocation utilities.
package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of every allocation (one cache line).
const Alignment = 64

// Word is the set of element types Words can allocate.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Words allocates n zeroed words of type T with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64
// and has capacity n. n <= 0 returns nil.
//
// Note: This function allocates up to 64 bytes more than requested to ensure
// alignment. The underlying array is kept alive by the returned slice.
func Words[T Word](n int) []T {
	if n <= 0 {
		return nil
	}

	var zero T
	size := int(unsafe.Sizeof(zero))

	buf := make([]T, n+Alignment/size)

	// Go aligns the array to size, so the byte offset is a whole number of words.
	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	offset := int((Alignment-(addr&(Alignment-1)))&(Alignment-1)) / size

	return buf[offset : offset+n : offset+n]
}

// Filled allocates n aligned words with every element set to v.
func Filled[T Word](n int, v T) []T {
	words := Words[T](n)
	for i := range words {
		words[i] = v
	}
	return words
}
