// Package pattern computes the word/bit patterns used by the unrolled flag
// layouts.
//
// Marking every skip-th flag from skip/2 onwards touches exactly W flags in
// every run of skip words of W bits, and the (word offset, bit) pairs repeat
// identically from one run to the next. A pattern is that list of W pairs.
//
// Because (skip/2 + i*skip) mod W only depends on skip mod 2W, there are
// just W distinct bit patterns per word width. Large skips reuse the masks of
// their equivalent skip and only recompute the word offsets.
//
// Tables for 8, 32, 64 and 256-bit words are built once when the package is
// initialised and are read-only afterwards.
package pattern
