package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/primes"
	"github.com/hupe1980/primes/storage"
)

// Runner executes the benchmarks described by a Config.
type Runner struct {
	cfg       Config
	logger    *primes.Logger
	metrics   primes.MetricsCollector
	validator *primes.Validator
	stdout    io.Writer
	stderr    io.Writer
	progress  rate.Sometimes
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger for benchmark events.
func WithLogger(logger *primes.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMetricsCollector sets the collector every sieve and benchmark reports to.
func WithMetricsCollector(mc primes.MetricsCollector) Option {
	return func(r *Runner) {
		r.metrics = mc
	}
}

// WithValidator replaces the default validator.
func WithValidator(v *primes.Validator) Option {
	return func(r *Runner) {
		r.validator = v
	}
}

// WithOutput redirects the machine-readable report (stdout) and the
// human-readable summary (stderr).
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// New validates cfg and returns a Runner for it.
func New(cfg Config, optFns ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:       cfg,
		logger:    primes.NoopLogger(),
		metrics:   primes.NoopMetricsCollector{},
		validator: primes.DefaultValidator(),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		progress:  rate.Sometimes{Interval: time.Second},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(r)
		}
	}
	return r, nil
}

// Run is a shorthand for New(cfg, optFns...) followed by Runner.Run.
func Run(ctx context.Context, cfg Config, optFns ...Option) ([]Result, error) {
	r, err := New(cfg, optFns...)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

// Run benchmarks every storage kind for every thread count, writing the
// header, summary and report lines as it goes.
//
// Prime count mismatches do not stop the session; they are returned joined
// after all benchmarks have run, each as an *primes.ErrValidation.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	var (
		results []Result
		invalid []error
	)

	for _, threads := range r.cfg.ThreadCounts() {
		for _, kind := range r.cfg.StorageKinds() {
			if err := sleep(ctx, r.cfg.Pause); err != nil {
				return results, err
			}
			if err := WriteHeader(r.stderr, r.cfg.Limit, threads, r.cfg.Duration); err != nil {
				return results, err
			}

			for range r.cfg.Repetitions {
				res, last, err := r.Measure(ctx, kind, threads)
				if err != nil {
					return results, err
				}
				results = append(results, res)

				if err := r.write(res, last); err != nil {
					return results, err
				}
				if err := r.validator.Check(res.Label, res.Limit, res.Count); err != nil {
					invalid = append(invalid, err)
				}
			}
		}
	}

	return results, errors.Join(invalid...)
}

func (r *Runner) write(res Result, last *primes.Sieve) error {
	if r.cfg.PrintPrimes {
		if err := WritePrimes(r.stderr, last); err != nil {
			return err
		}
	}
	if err := WriteSummary(r.stderr, res); err != nil {
		return err
	}
	return WriteReport(r.stdout, res)
}

// Measure runs one timed benchmark: threads workers each build and run fresh
// sieves until the configured duration has elapsed. Every worker completes
// at least one pass, and the deadline and ctx are only checked between
// passes. The last sieve of worker 0 is returned for validation.
func (r *Runner) Measure(ctx context.Context, kind storage.Kind, threads int) (Result, *primes.Sieve, error) {
	if threads <= 0 {
		return Result{}, nil, fmt.Errorf("%w: %d", ErrInvalidThreads, threads)
	}

	logger := r.logger.WithKind(kind).WithThreads(threads)
	sieveOpts := []primes.Option{
		primes.WithStorage(kind),
		primes.WithMetricsCollector(r.metrics),
	}

	stats := make([]workerStats, threads)
	var last *primes.Sieve

	g, gctx := errgroup.WithContext(ctx)

	start := time.Now()
	deadline := start.Add(r.cfg.Duration)

	for w := range threads {
		g.Go(func() error {
			var s *primes.Sieve
			for stats[w].passes == 0 || time.Now().Before(deadline) {
				if err := gctx.Err(); err != nil {
					return err
				}

				var err error
				s, err = primes.New(r.cfg.Limit, sieveOpts...)
				if err != nil {
					return err
				}
				s.Run()
				stats[w].passes++

				if w == 0 {
					r.progress.Do(func() {
						logger.Debug("benchmark running",
							"passes", stats[0].passes,
							"elapsed", time.Since(start),
						)
					})
				}
			}
			if w == 0 {
				last = s
			}
			return nil
		})
	}

	err := g.Wait()
	elapsed := time.Since(start)

	passes := 0
	for i := range stats {
		passes += stats[i].passes
	}

	if err != nil {
		logger.LogBenchmark(ctx, kind.String(), passes, elapsed, err)
		return Result{}, nil, fmt.Errorf("benchmark %s: %w", kind, err)
	}

	count := last.CountPrimes()
	res := Result{
		Label:    kind.String(),
		Kind:     kind,
		Passes:   passes,
		Threads:  threads,
		Duration: elapsed,
		Limit:    r.cfg.Limit,
		Count:    count,
		Verdict:  r.validator.Verdict(r.cfg.Limit, count),
		Bits:     kind.BitsPerFlag(),
	}

	r.metrics.RecordBenchmark(res.Label, threads, passes, elapsed, res.Verdict)
	logger.LogBenchmark(ctx, res.Label, passes, elapsed, nil)

	return res, last, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
