package primes

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLimit is returned when a sieve limit is negative.
	ErrInvalidLimit = errors.New("limit must not be negative")

	// ErrCountMismatch is returned when a prime count disagrees with the
	// known result for its limit.
	ErrCountMismatch = errors.New("prime count does not match known result")
)

// ErrValidation reports a sieve whose prime count is wrong.
//
// errors.Is(err, ErrCountMismatch) holds for every ErrValidation.
type ErrValidation struct {
	Label    string
	Limit    int
	Expected int
	Actual   int
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("%s: limit %d: expected %d primes, got %d", e.Label, e.Limit, e.Expected, e.Actual)
}

func (e *ErrValidation) Unwrap() error { return ErrCountMismatch }
