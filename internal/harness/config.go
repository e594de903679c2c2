package harness

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/hupe1980/primes"
	"github.com/hupe1980/primes/storage"
)

var (
	// ErrInvalidDuration is returned when the run duration is not positive.
	ErrInvalidDuration = errors.New("duration must be positive")

	// ErrInvalidThreads is returned for a negative thread count.
	ErrInvalidThreads = errors.New("threads must not be negative")

	// ErrInvalidRepetitions is returned when repetitions is not positive.
	ErrInvalidRepetitions = errors.New("repetitions must be positive")
)

// Config describes a benchmark session.
type Config struct {
	// Limit is the inclusive upper bound every sieve is run to.
	Limit int
	// Duration is how long each timed benchmark keeps starting new passes.
	Duration time.Duration
	// Threads is the number of concurrent workers. Zero runs every benchmark
	// twice: single-threaded and with one worker per CPU.
	Threads int
	// Repetitions is how often each (threads, storage) benchmark is repeated.
	Repetitions int
	// Kinds lists the storage layouts to benchmark. Empty means all.
	Kinds []storage.Kind
	// PrintPrimes writes the primes found by the validated sieve to stderr.
	PrintPrimes bool
	// Pause is slept before each benchmark to let the machine settle.
	Pause time.Duration
}

// DefaultConfig returns the settings of a plain invocation of the CLI.
func DefaultConfig() Config {
	return Config{
		Limit:       1000000,
		Duration:    5 * time.Second,
		Repetitions: 1,
		Pause:       time.Second,
	}
}

// Validate checks c for values no benchmark can run with.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("%w: %d", primes.ErrInvalidLimit, c.Limit)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDuration, c.Duration)
	}
	if c.Threads < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidThreads, c.Threads)
	}
	if c.Repetitions <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRepetitions, c.Repetitions)
	}
	return nil
}

// ThreadCounts returns the worker counts to benchmark with.
func (c Config) ThreadCounts() []int {
	if c.Threads > 0 {
		return []int{c.Threads}
	}
	return []int{1, runtime.NumCPU()}
}

// StorageKinds returns the layouts to benchmark.
func (c Config) StorageKinds() []storage.Kind {
	if len(c.Kinds) == 0 {
		return storage.Kinds()
	}
	return c.Kinds
}
