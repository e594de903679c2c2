// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Flag words are allocated on cache-line boundaries so that the chunked
// pattern resets and the 256-bit layout never straddle a line at the start
// of the array.
package mem
