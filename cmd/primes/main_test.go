package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/primes"
	"github.com/hupe1980/primes/internal/harness"
	"github.com/hupe1980/primes/storage"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cmd, v := newCommand()
		require.NoError(t, cmd.ParseFlags(nil))

		cfg, err := loadConfig(v)
		require.NoError(t, err)
		assert.Equal(t, harness.DefaultConfig(), cfg)
	})

	t.Run("Flags", func(t *testing.T) {
		cmd, v := newCommand()
		require.NoError(t, cmd.ParseFlags([]string{
			"-l", "1000", "-s", "2", "-t", "3", "-r", "4", "-p",
			"--storage", "bitset", "--storage", "Roaring",
			"--pause", "0s",
		}))

		cfg, err := loadConfig(v)
		require.NoError(t, err)
		assert.Equal(t, harness.Config{
			Limit:       1000,
			Duration:    2 * time.Second,
			Threads:     3,
			Repetitions: 4,
			Kinds:       []storage.Kind{storage.Bitset, storage.Roaring},
			PrintPrimes: true,
		}, cfg)
	})

	t.Run("Env", func(t *testing.T) {
		t.Setenv("PRIMES_LIMIT", "100")
		t.Setenv("PRIMES_STORAGE", "bit-storage unrolled-bits8")

		cmd, v := newCommand()
		require.NoError(t, cmd.ParseFlags([]string{"--threads", "2"}))

		cfg, err := loadConfig(v)
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.Limit)
		assert.Equal(t, 2, cfg.Threads)
		assert.Equal(t, []storage.Kind{storage.Bits, storage.Unrolled8}, cfg.Kinds)
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "primes.yaml")
		require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
			"limit: 10000",
			"seconds: 1",
			"repetitions: 2",
			"storage:",
			"  - byte-storage",
			"  - unrolled-extreme256",
		}, "\n")), 0o600))

		cmd, v := newCommand()
		require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--repetitions", "3"}))

		cfg, err := loadConfig(v)
		require.NoError(t, err)
		assert.Equal(t, 10000, cfg.Limit)
		assert.Equal(t, time.Second, cfg.Duration)
		assert.Equal(t, 3, cfg.Repetitions)
		assert.Equal(t, []storage.Kind{storage.Bytes, storage.Extreme256}, cfg.Kinds)
	})

	t.Run("Errors", func(t *testing.T) {
		cmd, v := newCommand()
		require.NoError(t, cmd.ParseFlags([]string{"--storage", "nope"}))
		_, err := loadConfig(v)
		require.ErrorIs(t, err, storage.ErrUnknownKind)

		cmd, v = newCommand()
		require.NoError(t, cmd.ParseFlags([]string{"--seconds", "0"}))
		_, err = loadConfig(v)
		require.ErrorIs(t, err, harness.ErrInvalidDuration)

		cmd, v = newCommand()
		require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))
		_, err = loadConfig(v)
		require.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := newLogger("debug", "json", &buf)
	require.NoError(t, err)
	logger.Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = newLogger("loud", "text", &buf)
	require.Error(t, err)

	_, err = newLogger("info", "xml", &buf)
	require.Error(t, err)
}

func TestCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer

	cmd, _ := newCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"--limit", "1000", "--seconds", "1", "--threads", "1",
		"--storage", "unrolled-bits64", "--pause", "0s",
	})

	require.NoError(t, cmd.Execute())

	assert.Regexp(t, `^mike-barber_unrolled-bits64;\d+;\d+\.\d{10};1;algorithm=base,faithful=yes,bits=1\n$`, stdout.String())
	assert.Contains(t, stderr.String(), "Computing primes to 1000 on 1 thread for 1 second.")
	assert.Contains(t, stderr.String(), "Counts: 168, Valid: Pass")
}

func TestCommand_List(t *testing.T) {
	var stdout bytes.Buffer

	cmd, _ := newCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--list"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, len(storage.Kinds()), strings.Count(stdout.String(), "\n"))
	assert.Contains(t, stdout.String(), "byte-storage")
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCollector(reg)

	c.RecordRun(storage.Bits, 1000, time.Millisecond)
	c.RecordRun(storage.Bits, 1000, 2*time.Millisecond)
	c.RecordBenchmark("bit-storage", 2, 50, 5*time.Second, primes.VerdictPass)
	c.RecordBenchmark("bit-storage", 2, 30, 5*time.Second, primes.VerdictFail)

	assert.Equal(t, 1, testutil.CollectAndCount(c.runLatency))
	assert.Equal(t, float64(80), testutil.ToFloat64(c.passes.WithLabelValues("bit-storage", "2")))
	assert.Equal(t, float64(6), testutil.ToFloat64(c.passesPerSecond.WithLabelValues("bit-storage", "2")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.validations.WithLabelValues("bit-storage", "Pass")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.validations.WithLabelValues("bit-storage", "Fail")))
}
