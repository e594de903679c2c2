package primes

import (
	"context"
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/hupe1980/primes/storage"
)

// Sieve finds the primes up to and including Limit with the sieve of
// Eratosthenes over odd numbers only: flag i stands for 2i+1.
//
// A Sieve is single-use and not safe for concurrent use. Build a fresh one
// per run.
type Sieve struct {
	limit   int
	kind    storage.Kind
	flags   storage.Flags
	done    bool
	logger  *Logger
	metrics MetricsCollector
}

// New allocates a sieve for limit with all flags unmarked.
func New(limit int, optFns ...Option) (*Sieve, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	o := applyOptions(optFns)

	flags, err := storage.New(o.kind, limit/2+1)
	if err != nil {
		return nil, err
	}

	return &Sieve{
		limit:   limit,
		kind:    o.kind,
		flags:   flags,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}, nil
}

// Run marks every odd composite up to the limit. Calls after the first
// return immediately.
func (s *Sieve) Run() {
	if s.done {
		return
	}

	start := time.Now()

	flags := s.flags
	n := flags.Len()
	q := isqrt(s.limit)

	// factor <= q, not <, or limits like 1000 (31*31 = 961) leave 961 unmarked.
	for factor := 3; factor <= q; factor += 2 {
		idx := factor / 2
		for idx < n && !flags.Get(idx) {
			idx++
		}
		if idx >= n {
			break
		}

		factor = idx*2 + 1
		flags.ResetFlags(factor*factor/2, factor)
	}

	s.done = true

	elapsed := time.Since(start)
	s.metrics.RecordRun(s.kind, s.limit, elapsed)
	s.logger.LogRun(context.Background(), s.kind, s.limit, elapsed)
}

// CountPrimes returns the number of primes <= Limit. Only meaningful once
// Run has completed.
func (s *Sieve) CountPrimes() int {
	count := 0
	if s.limit >= 2 {
		count = 1
	}
	for n := 3; n <= s.limit; n += 2 {
		if s.flags.Get(n / 2) {
			count++
		}
	}
	return count
}

// IsFlagged reports whether n is still flagged as a prime candidate. Even
// numbers are never flagged. 1 maps to flag 0, which is never marked, so
// IsFlagged(1) is true.
func (s *Sieve) IsFlagged(n int) bool {
	if n < 0 || n%2 == 0 {
		return false
	}
	return s.flags.Get(n / 2)
}

// Primes yields the primes <= Limit in increasing order.
func (s *Sieve) Primes() iter.Seq[int] {
	return func(yield func(int) bool) {
		if s.limit < 2 || !yield(2) {
			return
		}
		for n := 3; n <= s.limit; n += 2 {
			if s.flags.Get(n/2) && !yield(n) {
				return
			}
		}
	}
}

// Limit returns the inclusive upper bound.
func (s *Sieve) Limit() int { return s.limit }

// Done reports whether Run has completed.
func (s *Sieve) Done() bool { return s.done }

// Kind returns the storage layout in use.
func (s *Sieve) Kind() storage.Kind { return s.kind }

// isqrt returns floor(sqrt(n)) for n >= 0.
func isqrt(n int) int {
	if n < 2 {
		return n
	}
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
