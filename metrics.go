package primes

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/primes/storage"
)

// MetricsCollector defines an interface for collecting sieve metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Implementations must be safe for concurrent use: benchmark workers share
// one collector.
type MetricsCollector interface {
	// RecordRun is called after each completed sieve run.
	RecordRun(kind storage.Kind, limit int, duration time.Duration)

	// RecordBenchmark is called after each timed benchmark with the total
	// passes of all threads and the verdict of the validated sieve.
	RecordBenchmark(label string, threads, passes int, duration time.Duration, verdict Verdict)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(storage.Kind, int, time.Duration)               {}
func (NoopMetricsCollector) RecordBenchmark(string, int, int, time.Duration, Verdict) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount         atomic.Int64
	RunTotalNanos    atomic.Int64
	BenchmarkCount   atomic.Int64
	BenchmarkPasses  atomic.Int64
	BenchmarkFailed  atomic.Int64
	BenchmarkUnknown atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ storage.Kind, _ int, duration time.Duration) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
}

// RecordBenchmark implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBenchmark(_ string, _, passes int, _ time.Duration, verdict Verdict) {
	b.BenchmarkCount.Add(1)
	b.BenchmarkPasses.Add(int64(passes))
	switch verdict {
	case VerdictFail:
		b.BenchmarkFailed.Add(1)
	case VerdictUnknown:
		b.BenchmarkUnknown.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:         b.RunCount.Load(),
		RunAvgNanos:      b.getAvgRunNanos(),
		BenchmarkCount:   b.BenchmarkCount.Load(),
		BenchmarkPasses:  b.BenchmarkPasses.Load(),
		BenchmarkFailed:  b.BenchmarkFailed.Load(),
		BenchmarkUnknown: b.BenchmarkUnknown.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount         int64
	RunAvgNanos      int64
	BenchmarkCount   int64
	BenchmarkPasses  int64
	BenchmarkFailed  int64
	BenchmarkUnknown int64
}
