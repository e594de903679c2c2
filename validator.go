package primes

import (
	"maps"
	"slices"
)

// knownCounts holds the number of primes <= each power of ten.
var knownCounts = map[int]int{
	10:        4,
	100:       25,
	1000:      168,
	10000:     1229,
	100000:    9592,
	1000000:   78498,
	10000000:  664579,
	100000000: 5761455,
}

// Verdict is the outcome of checking a prime count.
type Verdict uint8

const (
	// VerdictUnknown means no reference count exists for the limit.
	VerdictUnknown Verdict = iota
	// VerdictPass means the count matches the reference.
	VerdictPass
	// VerdictFail means the count differs from the reference.
	VerdictFail
)

func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "Pass"
	case VerdictFail:
		return "Fail"
	default:
		return "Unknown"
	}
}

// Validator compares prime counts against known results.
type Validator struct {
	known map[int]int
}

// DefaultValidator returns a Validator for the powers of ten from 10 to 10^8.
func DefaultValidator() *Validator {
	return NewValidator(knownCounts)
}

// NewValidator returns a Validator over a copy of known (limit -> count).
func NewValidator(known map[int]int) *Validator {
	return &Validator{known: maps.Clone(known)}
}

// IsValid reports whether count is correct for size. known is false when
// there is no reference for size, in which case valid is false too.
func (v *Validator) IsValid(size, count int) (valid, known bool) {
	expected, ok := v.known[size]
	if !ok {
		return false, false
	}
	return count == expected, true
}

// Verdict classifies count for size.
func (v *Validator) Verdict(size, count int) Verdict {
	valid, known := v.IsValid(size, count)
	switch {
	case !known:
		return VerdictUnknown
	case valid:
		return VerdictPass
	default:
		return VerdictFail
	}
}

// Check returns an *ErrValidation when count is known to be wrong for size.
func (v *Validator) Check(label string, size, count int) error {
	if v.Verdict(size, count) != VerdictFail {
		return nil
	}
	return &ErrValidation{
		Label:    label,
		Limit:    size,
		Expected: v.known[size],
		Actual:   count,
	}
}

// Expected returns the reference count for size.
func (v *Validator) Expected(size int) (int, bool) {
	count, ok := v.known[size]
	return count, ok
}

// Sizes returns the limits with a reference count in increasing order.
func (v *Validator) Sizes() []int {
	return slices.Sorted(maps.Keys(v.known))
}
