// Command primes benchmarks the sieve storage layouts and prints results in
// the drag-race report format.
//
// Every flag can also be set through a PRIMES_* environment variable
// (PRIMES_LIMIT, PRIMES_LOG_LEVEL, ...) or a YAML file passed with --config.
// Flags win over the environment, which wins over the file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/primes"
	"github.com/hupe1980/primes/internal/harness"
	"github.com/hupe1980/primes/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, _ := newCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newCommand() (*cobra.Command, *viper.Viper) {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "primes",
		Short: "Benchmark odd-only prime sieves across flag storage layouts",
		Long: `Counts the primes up to --limit with every selected storage layout for
--seconds, once per thread setting, and reports passes per layout.

Summaries go to stderr, machine-readable result lines to stdout.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if v.GetBool("list") {
				return listLayouts(cmd.OutOrStdout())
			}

			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), v, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	defaults := harness.DefaultConfig()

	flags := cmd.Flags()
	flags.IntP("limit", "l", defaults.Limit, "count primes up to and including this number")
	flags.IntP("seconds", "s", int(defaults.Duration.Seconds()), "run duration of each benchmark in seconds")
	flags.IntP("threads", "t", 0, "worker threads (0 runs single-threaded and with one thread per CPU)")
	flags.IntP("repetitions", "r", defaults.Repetitions, "number of times to run each benchmark")
	flags.BoolP("print", "p", false, "print all primes found")
	flags.StringSlice("storage", nil, "storage layouts to run (repeatable, default all)")
	flags.Duration("pause", defaults.Pause, "pause before each benchmark")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :2112")
	flags.String("config", "", "YAML configuration file")
	flags.Bool("list", false, "list storage layouts and exit")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("PRIMES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd, v
}

// loadConfig merges the optional config file into v and builds the
// benchmark configuration.
func loadConfig(v *viper.Viper) (harness.Config, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return harness.Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := harness.Config{
		Limit:       v.GetInt("limit"),
		Duration:    time.Duration(v.GetInt("seconds")) * time.Second,
		Threads:     v.GetInt("threads"),
		Repetitions: v.GetInt("repetitions"),
		PrintPrimes: v.GetBool("print"),
		Pause:       v.GetDuration("pause"),
	}

	for _, name := range v.GetStringSlice("storage") {
		kind, err := storage.ParseKind(name)
		if err != nil {
			return harness.Config{}, err
		}
		cfg.Kinds = append(cfg.Kinds, kind)
	}

	return cfg, cfg.Validate()
}

func newLogger(level, format string, w io.Writer) (*primes.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return primes.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return primes.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func run(ctx context.Context, v *viper.Viper, cfg harness.Config, stdout, stderr io.Writer) error {
	logger, err := newLogger(v.GetString("log-level"), v.GetString("log-format"), stderr)
	if err != nil {
		return err
	}

	opts := []harness.Option{
		harness.WithOutput(stdout, stderr),
		harness.WithLogger(logger),
	}

	if addr := v.GetString("metrics-addr"); addr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, harness.WithMetricsCollector(NewPrometheusCollector(reg)))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "addr", addr, "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		logger.Info("serving metrics", "addr", addr)
	}

	logger.Info("starting benchmarks",
		"goos", runtime.GOOS,
		"goarch", runtime.GOARCH,
		"cpus", runtime.NumCPU(),
		"cpu_features", strings.Join(harness.CPUFeatures(), ","),
	)

	_, err = harness.Run(ctx, cfg, opts...)
	return err
}

func listLayouts(w io.Writer) error {
	for _, kind := range storage.Kinds() {
		if _, err := fmt.Fprintf(w, "%-20s %d bit(s) per flag\n", kind, kind.BitsPerFlag()); err != nil {
			return err
		}
	}
	return nil
}
