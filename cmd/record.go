package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/timvw/webtrace/internal/dispatch"
	"github.com/timvw/webtrace/internal/listener"
	"github.com/timvw/webtrace/internal/report"
	"github.com/timvw/webtrace/internal/scenario"
	"github.com/timvw/webtrace/internal/trace"
	"github.com/timvw/webtrace/internal/webdriver"
	"github.com/timvw/webtrace/internal/webdriver/rodriver"
	"github.com/timvw/webtrace/internal/webdriver/static"
)

var (
	flagDriver      string
	flagControlURL  string
	flagBrowserBin  string
	flagHeadless    bool
	flagParallel    int
	flagStepsDir    string
	flagScreenshots bool
	flagShadowPaths bool
	flagPerformance bool
	flagLocators    bool
)

var recordCmd = &cobra.Command{
	Use:   "record <scenario.yaml>",
	Short: "Run a scenario and record its traces",
	Long: `Run every test of a YAML scenario through an instrumented driver and
write the run to the registry.

The static driver serves the scenario's inline pages (and fetches other
http(s) URLs) without a browser. The rod driver drives Chromium through the
DevTools protocol, launching a local browser unless --control-url is set.

Exits non-zero when any test failed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecord(cmd, args[0])
	},
}

func init() {
	recordCmd.Flags().StringVar(&flagDriver, "driver", envOrDefault("WEBTRACE_DRIVER", "static"), "driver: static, rod")
	recordCmd.Flags().StringVar(&flagControlURL, "control-url", envOrDefault("WEBTRACE_CONTROL_URL", ""), "DevTools websocket of a running browser (rod driver)")
	recordCmd.Flags().StringVar(&flagBrowserBin, "browser-bin", "", "browser binary to launch (rod driver)")
	recordCmd.Flags().BoolVar(&flagHeadless, "headless", true, "launch the browser headless (rod driver)")
	recordCmd.Flags().IntVar(&flagParallel, "parallel", 1, "number of tests to run concurrently")
	recordCmd.Flags().StringVar(&flagStepsDir, "steps-dir", "", "directory for reproduction steps and shadow dictionaries")
	recordCmd.Flags().BoolVar(&flagScreenshots, "screenshots", false, "capture a screenshot before state-changing commands")
	recordCmd.Flags().BoolVar(&flagShadowPaths, "shadow-paths", false, "resolve shadow DOM paths of located elements")
	recordCmd.Flags().BoolVar(&flagPerformance, "performance", false, "print command timings")
	recordCmd.Flags().BoolVar(&flagLocators, "locators", false, "write the locator of every element lookup to <steps-dir>/<test>-locators.txt")
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, path string) error {
	ctx, stop := withShutdown(cmd.Context())
	defer stop()

	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}
	newDriver, err := driverFactory(sc)
	if err != nil {
		return err
	}

	opts := listener.SetOptions{
		Dir:         cfg.StepsDir,
		Screenshots: cfg.CaptureScreenshots,
		ShadowPaths: cfg.ShadowPaths,
		Performance: cfg.Performance,
		Locators:    cfg.LogLocators,
		Diagnostics: cmd.ErrOrStderr(),
	}
	flags := cmd.Flags()
	if flags.Changed("steps-dir") {
		opts.Dir = flagStepsDir
	}
	if flags.Changed("screenshots") {
		opts.Screenshots = flagScreenshots
	}
	if flags.Changed("shadow-paths") {
		opts.ShadowPaths = flagShadowPaths
	}
	if flags.Changed("performance") {
		opts.Performance = flagPerformance
	}
	if flags.Changed("locators") {
		opts.Locators = flagLocators
	}

	agg, flush := newAggregator(ctx)
	defer flush()

	if err := agg.OnRunStart(ctx); err != nil {
		return err
	}
	outs, runErr := scenario.Run(ctx, sc, scenario.Options{
		Aggregator: agg,
		NewDriver:  newDriver,
		Listeners:  opts,
		Parallel:   flagParallel,
		Dispatch:   []dispatch.Option{dispatch.WithMetrics(agg.Metrics())},
	})

	artifact, err := agg.OnRunEnd(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("persist run: %w", err)
	}
	res, err := trace.ReadResult(artifact)
	if err != nil {
		return err
	}
	if err := report.Summary(cmd.OutOrStdout(), res, report.ThemeByName(flagTheme)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "run written to %s\n", artifact)

	if runErr != nil {
		return runErr
	}
	if n := scenario.Failed(outs); n > 0 {
		return fmt.Errorf("%d of %d tests failed", n, len(outs))
	}
	return nil
}

func driverFactory(sc *scenario.Scenario) (func(context.Context) (webdriver.Driver, error), error) {
	switch flagDriver {
	case "static":
		client := &http.Client{Timeout: 30 * time.Second}
		return func(context.Context) (webdriver.Driver, error) {
			return static.New(static.WithPages(sc.Pages), static.WithHTTPClient(client)), nil
		}, nil
	case "rod":
		opts := rodriver.Options{ControlURL: flagControlURL, Bin: flagBrowserBin, Headless: flagHeadless}
		return func(ctx context.Context) (webdriver.Driver, error) {
			d, err := rodriver.Connect(ctx, opts)
			if err != nil {
				return nil, err
			}
			return d, nil
		}, nil
	}
	return nil, fmt.Errorf("unknown driver %q (supported: static, rod)", flagDriver)
}
