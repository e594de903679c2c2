package primes

import (
	"log/slog"

	"github.com/hupe1980/primes/storage"
)

// DefaultStorage is the layout used when no WithStorage option is given.
const DefaultStorage = storage.Unrolled64

type options struct {
	kind             storage.Kind
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Sieve.
type Option func(*options)

// WithStorage selects the flag layout. The default is DefaultStorage.
func WithStorage(kind storage.Kind) Option {
	return func(o *options) {
		o.kind = kind
	}
}

// WithMetricsCollector configures a metrics collector for sieve runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &primes.BasicMetricsCollector{}
//	s, _ := primes.New(1000000, primes.WithMetricsCollector(metrics))
//	s.Run()
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Avg: %dns\n", stats.RunCount, stats.RunAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for sieve runs.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = noopLogger
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		kind:             DefaultStorage,
		metricsCollector: NoopMetricsCollector{},
		logger:           noopLogger,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
