// Package primes counts primes with an odd-only sieve of Eratosthenes over
// interchangeable flag layouts.
//
// # Quick Start
//
//	s, _ := primes.New(1000000)
//	s.Run()
//	fmt.Println(s.CountPrimes()) // 78498
//
// # Storage Layouts
//
// The flag layout is chosen with WithStorage. All layouts produce the same
// result and differ only in memory footprint and how resets walk memory:
//
//	s, _ := primes.New(1000000, primes.WithStorage(storage.Extreme256))
//
// See package storage for the available kinds. The default, Unrolled64,
// applies precomputed 64-bit word patterns.
//
// # Validation
//
// DefaultValidator knows the prime counts for the powers of ten up to 10^8:
//
//	v := primes.DefaultValidator()
//	fmt.Println(v.Verdict(s.Limit(), s.CountPrimes())) // Pass
//
// # Observability
//
// WithLogger and WithMetricsCollector attach a slog-based Logger and a
// MetricsCollector; both default to no-ops.
package primes
