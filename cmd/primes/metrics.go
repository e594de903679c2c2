package main

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/primes"
	"github.com/hupe1980/primes/storage"
)

// PrometheusCollector implements primes.MetricsCollector.
type PrometheusCollector struct {
	runLatency      *prometheus.HistogramVec
	passes          *prometheus.CounterVec
	passesPerSecond *prometheus.GaugeVec
	validations     *prometheus.CounterVec
}

var _ primes.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the sieve metrics and registers them with reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		runLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "primes_sieve_run_seconds",
			Help:    "Duration of single sieve runs",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"storage"}),
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primes_benchmark_passes_total",
			Help: "Total sieve passes completed by benchmarks",
		}, []string{"storage", "threads"}),
		passesPerSecond: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "primes_benchmark_passes_per_second",
			Help: "Throughput of the most recent benchmark",
		}, []string{"storage", "threads"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primes_benchmark_validations_total",
			Help: "Benchmark results by validation verdict",
		}, []string{"storage", "verdict"}),
	}

	reg.MustRegister(c.runLatency)
	reg.MustRegister(c.passes)
	reg.MustRegister(c.passesPerSecond)
	reg.MustRegister(c.validations)
	return c
}

// RecordRun implements primes.MetricsCollector.
func (c *PrometheusCollector) RecordRun(kind storage.Kind, _ int, duration time.Duration) {
	c.runLatency.WithLabelValues(kind.String()).Observe(duration.Seconds())
}

// RecordBenchmark implements primes.MetricsCollector.
func (c *PrometheusCollector) RecordBenchmark(label string, threads, passes int, duration time.Duration, verdict primes.Verdict) {
	t := strconv.Itoa(threads)
	c.passes.WithLabelValues(label, t).Add(float64(passes))
	if duration > 0 {
		c.passesPerSecond.WithLabelValues(label, t).Set(float64(passes) / duration.Seconds())
	}
	c.validations.WithLabelValues(label, verdict.String()).Inc()
}
