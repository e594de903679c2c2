package primes

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/primes/storage"
)

// Logger wraps slog.Logger with sieve-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// noopLogger is shared by every Sieve built without WithLogger, since a
// benchmark builds thousands of them per second.
var noopLogger = NoopLogger()

// WithKind adds the storage label to the logger.
func (l *Logger) WithKind(kind storage.Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("storage", kind.String()),
	}
}

// WithLimit adds a limit field to the logger.
func (l *Logger) WithLimit(limit int) *Logger {
	return &Logger{
		Logger: l.Logger.With("limit", limit),
	}
}

// WithThreads adds a threads field to the logger.
func (l *Logger) WithThreads(threads int) *Logger {
	return &Logger{
		Logger: l.Logger.With("threads", threads),
	}
}

// LogRun logs a completed sieve run.
func (l *Logger) LogRun(ctx context.Context, kind storage.Kind, limit int, duration time.Duration) {
	l.DebugContext(ctx, "sieve completed",
		"storage", kind.String(),
		"limit", limit,
		"duration", duration,
	)
}

// LogBenchmark logs the outcome of one timed benchmark.
func (l *Logger) LogBenchmark(ctx context.Context, label string, passes int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "benchmark failed",
			"storage", label,
			"passes", passes,
			"duration", duration,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "benchmark completed",
			"storage", label,
			"passes", passes,
			"duration", duration,
		)
	}
}
