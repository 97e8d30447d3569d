// Package gotest maps the Go test lifecycle onto a trace aggregator.
//
// A TestMain calls Run around m.Run; each browser test calls Track (and
// usually Session) at its start:
//
//	func TestMain(m *testing.M) { os.Exit(gotest.Run(m, trace.Default())) }
//
//	func TestLogin(t *testing.T) {
//		ctx := gotest.Track(t, trace.Default())
//		drv := gotest.Session(t, trace.Default(), raw, gotest.SessionOptions{})
//		...
//	}
package gotest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/timvw/webtrace/internal/dispatch"
	"github.com/timvw/webtrace/internal/listener"
	"github.com/timvw/webtrace/internal/trace"
	"github.com/timvw/webtrace/internal/webdriver"
)

// Runner is satisfied by *testing.M.
type Runner interface {
	Run() int
}

// Run starts the run, runs the tests and writes the run artifact. A failure
// to persist is reported on stderr and turns a passing exit code into 1.
func Run(m Runner, agg *trace.Aggregator) int {
	ctx := context.Background()
	if err := agg.OnRunStart(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: webtrace run not started: %v\n", err)
		return m.Run()
	}
	code := m.Run()
	if _, err := agg.OnRunEnd(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: webtrace run not persisted: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	return code
}

// Track opens a test case execution named after t on a worker of its own
// and returns the context carrying that worker. The execution is closed
// when t finishes, FAILED or SKIPPED if t was.
func Track(t testing.TB, agg *trace.Aggregator) context.Context {
	t.Helper()
	ctx := trace.NewWorker(context.Background())
	if _, err := agg.OnTestCaseStart(ctx, t.Name()); err != nil {
		t.Fatalf("webtrace: start test case: %v", err)
	}
	t.Cleanup(func() {
		switch {
		case t.Failed():
			_ = agg.OnTestCaseStatus(ctx, trace.StatusFailed)
		case t.Skipped():
			_ = agg.OnTestCaseStatus(ctx, trace.StatusSkipped)
		}
		if err := agg.OnTestCaseEnd(ctx); err != nil {
			t.Logf("webtrace: end test case: %v", err)
		}
	})
	return ctx
}

// Setup records fn as a configuration execution, the counterpart of a
// before/after method in other runners. An error from fn is recorded and
// returned.
func Setup(ctx context.Context, agg *trace.Aggregator, name string, fn func(context.Context) error) error {
	ctx = trace.NewWorker(ctx)
	if _, err := agg.OnConfigurationStart(ctx, name); err != nil {
		return err
	}
	err := fn(ctx)
	if err != nil {
		_ = agg.OnTestCaseException(ctx, err)
	}
	if endErr := agg.OnConfigurationEnd(ctx); endErr != nil && err == nil {
		err = endErr
	}
	return err
}

// SessionOptions selects the optional listeners of a session.
type SessionOptions struct {
	// Dir receives the reproduction steps, shadow dictionary and locator
	// list files.
	Dir         string
	Screenshots bool
	ShadowPaths bool
	Performance bool
	Locators    bool
	Options     []dispatch.Option
}

// Session instruments raw with the default listener set for t. Listener
// output is flushed before the test case is closed.
func Session(t testing.TB, agg *trace.Aggregator, raw webdriver.Driver, o SessionOptions) *dispatch.Driver {
	t.Helper()
	set := listener.NewSet(listener.SetOptions{
		Sink:        agg,
		TestName:    t.Name(),
		Dir:         o.Dir,
		Screenshots: o.Screenshots,
		ShadowPaths: o.ShadowPaths,
		Performance: o.Performance,
		Locators:    o.Locators,
	})
	drv := dispatch.Wrap(raw, set.Listeners, o.Options...)
	t.Cleanup(func() {
		if err := drv.Dispatcher().Close(); err != nil {
			t.Logf("webtrace: close listeners: %v", err)
		}
	})
	return drv
}
