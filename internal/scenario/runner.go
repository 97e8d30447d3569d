package scenario

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/timvw/webtrace/internal/dispatch"
	"github.com/timvw/webtrace/internal/listener"
	"github.com/timvw/webtrace/internal/trace"
	"github.com/timvw/webtrace/internal/webdriver"
)

// Options configures Run.
type Options struct {
	Aggregator *trace.Aggregator
	// NewDriver opens the browser session of one test.
	NewDriver func(ctx context.Context) (webdriver.Driver, error)
	// Listeners is the listener template; TestName is set per test and Sink
	// defaults to the aggregator.
	Listeners listener.SetOptions
	Dispatch  []dispatch.Option
	// Parallel bounds concurrently running tests. Zero or one runs them in
	// order.
	Parallel int
	Logger   *slog.Logger
}

// Outcome is the result of one test.
type Outcome struct {
	Test    string
	TraceID string
	Status  trace.Status
	Err     error
	Steps   []string
}

// Failed counts failed outcomes.
func Failed(outs []Outcome) int {
	n := 0
	for _, o := range outs {
		if o.Status == trace.StatusFailed {
			n++
		}
	}
	return n
}

// Run executes every test of sc, each on its own worker and browser
// session. The caller owns the run: Run neither starts nor ends it.
func Run(ctx context.Context, sc *Scenario, o Options) ([]Outcome, error) {
	if o.Aggregator == nil || o.NewDriver == nil {
		return nil, fmt.Errorf("scenario %s: aggregator and driver factory are required", sc.Name)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Listeners.Sink == nil {
		o.Listeners.Sink = o.Aggregator
	}

	outs := make([]Outcome, len(sc.Tests))
	var g errgroup.Group
	if o.Parallel > 1 {
		g.SetLimit(o.Parallel)
	} else {
		g.SetLimit(1)
	}
	for i, t := range sc.Tests {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outs[i] = Outcome{Test: t.Name, Status: trace.StatusSkipped, Err: err}
				return nil
			}
			outs[i] = runTest(trace.NewWorker(ctx), t, o)
			return nil
		})
	}
	_ = g.Wait()
	return outs, ctx.Err()
}

func runTest(ctx context.Context, t Test, o Options) (out Outcome) {
	agg := o.Aggregator
	log := o.Logger.With("test", t.Name, "worker", trace.WorkerFrom(ctx))
	out.Test = t.Name

	raw, err := o.NewDriver(ctx)
	if err != nil {
		return failWithoutSession(ctx, agg, t.Name, fmt.Errorf("open browser: %w", err))
	}

	lo := o.Listeners
	lo.TestName = t.Name
	lo.Logger = o.Logger
	set := listener.NewSet(lo)
	drv := dispatch.Wrap(raw, set.Listeners, o.Dispatch...)
	quit := false
	defer func() {
		// Early returns skip the recorded quit; the browser still has to go.
		if !quit {
			if err := raw.Quit(context.WithoutCancel(ctx)); err != nil {
				log.Debug("quit browser", "err", err)
			}
		}
		if err := drv.Dispatcher().Close(); err != nil {
			log.Warn("listener output not written", "err", err)
		}
		out.Steps = set.Steps.Lines()
	}()

	setupFailed := false
	if len(t.Before) > 0 {
		if _, err := agg.OnConfigurationStart(ctx, "before "+t.Name); err != nil {
			return failWithoutSession(ctx, agg, t.Name, err)
		}
		if err := runSteps(ctx, drv, t.Before); err != nil {
			log.Info("setup failed", "err", err)
			_ = agg.OnTestCaseException(ctx, err)
			setupFailed = true
			out.Err = err
		}
		_ = agg.OnConfigurationEnd(ctx)
	}

	exec, err := agg.OnTestCaseStart(ctx, t.Name)
	if err != nil {
		out.Status, out.Err = trace.StatusFailed, err
		return out
	}
	out.TraceID = exec.TraceID()

	if setupFailed {
		_ = agg.OnTestCaseStatus(ctx, trace.StatusSkipped)
	} else if err := runSteps(ctx, drv, t.Steps); err != nil {
		log.Info("test failed", "err", err)
		_ = agg.OnTestCaseException(ctx, err)
		out.Err = err
	}

	quit = true
	if err := drv.Quit(ctx); err != nil {
		log.Debug("quit browser", "err", err)
	}
	out.Status = exec.Status()
	_ = agg.OnTestCaseEnd(ctx)
	log.Debug("test finished", "status", out.Status, "trace_id", out.TraceID)
	return out
}

func runSteps(ctx context.Context, d webdriver.Driver, steps []Step) error {
	for _, s := range steps {
		if err := s.Run(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// failWithoutSession records a test that never got a browser.
func failWithoutSession(ctx context.Context, agg *trace.Aggregator, name string, err error) Outcome {
	out := Outcome{Test: name, Status: trace.StatusFailed, Err: err}
	exec, serr := agg.OnTestCaseStart(ctx, name)
	if serr != nil {
		return out
	}
	out.TraceID = exec.TraceID()
	_ = agg.OnTestCaseException(ctx, err)
	_ = agg.OnTestCaseEnd(ctx)
	return out
}
