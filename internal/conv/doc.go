// Package conv provides safe integer type conversion utilities.
//
// Library-backed flag layouts address flags with fixed-width integers
// (roaring bitmaps use uint32, bitsets report counts as uint64). These
// helpers reject values the target type cannot hold instead of wrapping.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices below a validated size), use direct type casts instead.
package conv
