package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/timvw/webtrace/internal/config"
	telem "github.com/timvw/webtrace/internal/otel"
	"github.com/timvw/webtrace/internal/trace"
)

var (
	// Global flags.
	flagRegistry  string
	flagLogLevel  string
	flagLogFormat string
	flagTheme     string

	// cfg is loaded once per invocation, before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "webtrace",
	Short: "Per-test execution traces for browser automation",
	Long: `webtrace records what a browser test did: every driver command is
intercepted, summarized into reproduction steps, timed, screenshotted and
collected into one trace per test case. Each run is written to the registry
as TestRun-<timestamp>/test-result.json.

Configuration is loaded from .webtrace.yaml, ~/.config/webtrace/config.yaml
and WEBTRACE_* environment variables; flags override both.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		return setupLogging(cfg)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRegistry, "registry", "", "directory receiving TestRun-* folders (default: ./.webtrace)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: text, json")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", envOrDefault("WEBTRACE_THEME", "dark"), "color theme: dark, light")
}

// loadConfig reads defaults -> config file -> env vars, then applies flags.
func loadConfig() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if flagRegistry != "" {
		c.Registry = flagRegistry
	}
	if flagLogLevel != "" {
		if _, err := config.ParseLevel(flagLogLevel); err != nil {
			return nil, err
		}
		c.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		c.LogFormat = flagLogFormat
	}
	return c, nil
}

func setupLogging(c *config.Config) error {
	level, err := config.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch c.LogFormat {
	case "json":
		h = slog.NewJSONHandler(os.Stderr, opts)
	case "text", "":
		h = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format %q (supported: text, json)", c.LogFormat)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

// newAggregator initializes telemetry (no-op without an endpoint) and
// returns an aggregator writing to the configured registry. The returned
// func flushes telemetry.
func newAggregator(ctx context.Context) (*trace.Aggregator, func()) {
	telem.Version = Version
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: otel init failed: %v\n", err)
	}

	opts := trace.Options{
		Root:    cfg.RegistryRoot(),
		Version: Version,
		Logger:  slog.Default(),
	}
	if tel != nil {
		opts.Tracer = tel.Tracer
		opts.Metrics = tel.Metrics
	}
	return trace.NewAggregator(opts), func() {
		if tel != nil {
			_ = tel.Shutdown(context.WithoutCancel(ctx))
		}
	}
}

// withShutdown cancels ctx on SIGINT or SIGTERM.
func withShutdown(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
