// Package storage provides the flag layouts a prime sieve marks composites
// in.
//
// Every layout holds one flag per odd candidate (index i stands for 2i+1)
// and implements Flags. Layouts differ only in how flags are packed and how
// ResetFlags walks them:
//
//   - ByteVector: one byte per flag.
//   - BitVector, BitVectorRotate: 32 flags per word, per-bit stride.
//   - BitVectorStriped: bytes addressed by bit plane.
//   - BitVectorUnroll4: 32 flags per word, four strides per iteration.
//   - Unrolled (8, 32, 64-bit) and Extreme256: precomputed word patterns
//     applied chunk by chunk.
//   - BitsetFlags, RoaringFlags: library-backed baselines.
//
// The pattern-based layouts mark the full lattice skip/2 + k*skip and
// ignore start beyond checking it under the invariants build tag; the other
// layouts mark from start onwards. For the sieve both are equivalent
// because every flag between skip/2 and start is already marked.
//
// Instances are not safe for concurrent use.
package storage
