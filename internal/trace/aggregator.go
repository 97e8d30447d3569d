// Package trace aggregates per-command diagnostics into one execution trace
// per test case and persists each run as a versioned JSON artifact.
//
// Test-framework adapters drive the aggregator through eight lifecycle
// calls (OnRunStart, OnConfigurationStart, OnTestCaseStart, OnTestCaseEvent,
// OnTestCaseException, OnTestCaseStatus, OnConfigurationEnd/OnTestCaseEnd,
// OnRunEnd). Concurrent test cases are told apart by the worker identity in
// their context, see WithWorker.
package trace

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	telem "github.com/timvw/webtrace/internal/otel"
)

// Options configures an Aggregator.
type Options struct {
	// Root is the registry directory that receives TestRun-* folders.
	Root    string
	Version string

	Logger  *slog.Logger
	Tracer  oteltrace.Tracer
	Metrics *telem.Metrics

	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// Aggregator coordinates the executions of one run. All methods are safe
// for concurrent use.
type Aggregator struct {
	root    string
	version string
	log     *slog.Logger
	tracer  oteltrace.Tracer
	metrics *telem.Metrics
	now     func() time.Time

	// mu guards run state and the execution list. It is never held while
	// calling out to listeners or the file system for screenshots.
	mu         sync.Mutex
	started    bool
	runStart   time.Time
	runDir     string
	executions []*Execution

	// current maps worker identity to its open execution.
	current sync.Map
}

// NewAggregator returns an aggregator with no run started.
func NewAggregator(opts Options) *Aggregator {
	a := &Aggregator{
		root:    opts.Root,
		version: opts.Version,
		log:     opts.Logger,
		tracer:  opts.Tracer,
		metrics: opts.Metrics,
		now:     opts.Now,
	}
	if a.root == "" {
		a.root = "."
	}
	if a.version == "" {
		a.version = telem.Version
	}
	if a.log == nil {
		a.log = slog.Default()
	}
	if a.tracer == nil {
		a.tracer = otel.Tracer("webtrace")
	}
	if a.now == nil {
		a.now = func() time.Time { return time.Now().UTC() }
	}
	return a
}

// OnRunStart records the run start time and creates the run directory.
// Calling it again before OnRunEnd does nothing.
func (a *Aggregator) OnRunStart(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.startRunLocked()
}

func (a *Aggregator) startRunLocked() error {
	if a.started {
		return nil
	}
	start := a.now()
	dir, err := createRunDir(a.root, start)
	if err != nil {
		return err
	}
	a.started = true
	a.runStart = start
	a.runDir = dir
	a.log.Debug("run started", "dir", dir, "version", a.version)
	return nil
}

// RunDir returns the current run's directory, or "" before OnRunStart.
func (a *Aggregator) RunDir() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.runDir
}

// Metrics returns the counters the aggregator records into, possibly nil.
func (a *Aggregator) Metrics() *telem.Metrics { return a.metrics }

// OnConfigurationStart opens a setup or teardown execution for the worker.
func (a *Aggregator) OnConfigurationStart(ctx context.Context, name string) (*Execution, error) {
	return a.startExecution(ctx, name, true)
}

// OnTestCaseStart opens a test case execution for the worker.
func (a *Aggregator) OnTestCaseStart(ctx context.Context, name string) (*Execution, error) {
	return a.startExecution(ctx, name, false)
}

func (a *Aggregator) startExecution(ctx context.Context, name string, config bool) (*Execution, error) {
	worker := WorkerFrom(ctx)
	if cur, ok := a.lookup(worker); ok && !cur.Ended() {
		if cur.config == config && cur.name == name {
			return cur, nil
		}
		a.log.Debug("closing execution left open by previous phase",
			"worker", worker, "test", cur.name, "trace_id", cur.TraceID())
		a.finishExecution(ctx, cur)
	}

	a.mu.Lock()
	if err := a.startRunLocked(); err != nil {
		a.mu.Unlock()
		return nil, err
	}
	exec := newExecution(name, config, a.now())
	a.executions = append(a.executions, exec)
	a.mu.Unlock()

	spanName := "test_case"
	if config {
		spanName = "configuration"
	}
	_, exec.span = a.tracer.Start(ctx, spanName, oteltrace.WithAttributes(
		attribute.String("webtrace.trace_id", exec.TraceID()),
		attribute.String("webtrace.test_name", name),
		attribute.String("webtrace.worker", worker),
	))

	a.current.Store(worker, exec)
	a.log.Debug("execution started", "worker", worker, "test", name,
		"trace_id", exec.TraceID(), "configuration", config)
	return exec, nil
}

// Current returns the worker's open execution.
func (a *Aggregator) Current(ctx context.Context) (*Execution, bool) {
	return a.lookup(WorkerFrom(ctx))
}

func (a *Aggregator) lookup(worker string) (*Execution, bool) {
	v, ok := a.current.Load(worker)
	if !ok {
		return nil, false
	}
	return v.(*Execution), true
}

func (a *Aggregator) mustCurrent(ctx context.Context) (*Execution, error) {
	worker := WorkerFrom(ctx)
	exec, ok := a.lookup(worker)
	if !ok {
		return nil, fmt.Errorf("%w (worker %s)", ErrNoActiveExecution, worker)
	}
	return exec, nil
}

// AppendEvent adds ev to the worker's open execution.
func (a *Aggregator) AppendEvent(ctx context.Context, ev Event) error {
	if ev.Time.IsZero() {
		ev.Time = a.now()
	}
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	exec, err := a.mustCurrent(ctx)
	if err != nil {
		return err
	}
	exec.Append(ev)
	return nil
}

// OnTestCaseEvent appends a free-form automation event.
func (a *Aggregator) OnTestCaseEvent(ctx context.Context, content string, level Level) error {
	return a.AppendEvent(ctx, Event{
		Type:    EventAutomation,
		Content: content,
		Level:   level,
	})
}

// OnTestCaseException records err against the open execution and marks it
// FAILED.
func (a *Aggregator) OnTestCaseException(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	exec, cerr := a.mustCurrent(ctx)
	if cerr != nil {
		return cerr
	}
	exec.Append(Event{
		Type:    EventException,
		Content: err.Error(),
		Level:   LevelSevere,
		Time:    a.now(),
	})
	exec.SetStatus(StatusFailed)
	if exec.span != nil {
		exec.span.RecordError(err)
	}
	return nil
}

// OnTestCaseStatus raises the open execution's status. A status less severe
// than the current one is ignored.
func (a *Aggregator) OnTestCaseStatus(ctx context.Context, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	exec, err := a.mustCurrent(ctx)
	if err != nil {
		return err
	}
	exec.SetStatus(status)
	return nil
}

// OnConfigurationEnd closes the worker's open execution.
func (a *Aggregator) OnConfigurationEnd(ctx context.Context) error {
	return a.endCurrent(ctx)
}

// OnTestCaseEnd closes the worker's open execution.
func (a *Aggregator) OnTestCaseEnd(ctx context.Context) error {
	return a.endCurrent(ctx)
}

func (a *Aggregator) endCurrent(ctx context.Context) error {
	worker := WorkerFrom(ctx)
	exec, err := a.mustCurrent(ctx)
	if err != nil {
		return err
	}
	a.current.CompareAndDelete(worker, exec)
	a.finishExecution(ctx, exec)
	return nil
}

func (a *Aggregator) finishExecution(ctx context.Context, exec *Execution) {
	if !exec.finish(a.now()) {
		return
	}
	status := exec.Status()
	if exec.span != nil {
		exec.span.SetAttributes(attribute.String("webtrace.status", string(status)))
		if status == StatusFailed {
			exec.span.SetStatus(codes.Error, "test case failed")
		}
		exec.span.End()
	}
	a.metrics.RecordExecution(ctx, string(status), exec.config)
	a.log.Debug("execution ended", "test", exec.name, "trace_id", exec.TraceID(), "status", status)
}

// Executions returns the run's executions in creation order.
func (a *Aggregator) Executions() []*Execution {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*Execution, len(a.executions))
	copy(out, a.executions)
	return out
}

// Snapshot returns the run as it would be persisted now, without an end time.
func (a *Aggregator) Snapshot() *Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *Aggregator) snapshotLocked() *Result {
	r := &Result{
		Version:        a.version,
		BuildStartTime: a.runStart,
		Executions:     make([]ExecutionRecord, len(a.executions)),
	}
	for i, e := range a.executions {
		r.Executions[i] = e.Record()
	}
	return r
}

// OnRunEnd writes the run artifact and resets the aggregator for the next
// run. When the artifact cannot be written the error is an *ArtifactError
// and all state is kept, so the call can be retried.
func (a *Aggregator) OnRunEnd(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.started {
		return "", ErrRunNotStarted
	}

	result := a.snapshotLocked()
	end := a.now()
	result.BuildEndTime = &end

	file := filepath.Join(a.runDir, ArtifactName)
	if err := WriteResult(file, result); err != nil {
		return "", err
	}
	a.metrics.RecordRunWritten(ctx)
	a.log.Info("run artifact written", "path", file, "executions", len(result.Executions))

	for _, e := range a.executions {
		if e.span != nil && !e.Ended() {
			e.span.End()
		}
	}
	a.executions = nil
	a.started = false
	a.runStart = time.Time{}
	a.runDir = ""
	a.current.Range(func(k, _ any) bool {
		a.current.Delete(k)
		return true
	})
	return file, nil
}

// ScreenshotPath reserves a screenshot file for the worker's open execution.
// rel is relative to the run directory and uses forward slashes.
func (a *Aggregator) ScreenshotPath(ctx context.Context, seq int64) (abs, rel string, err error) {
	exec, err := a.mustCurrent(ctx)
	if err != nil {
		return "", "", err
	}
	dir := a.RunDir()
	if dir == "" {
		return "", "", ErrRunNotStarted
	}
	rel = path.Join(ScreenshotDir, fmt.Sprintf("%s-%05d.png", exec.TraceID(), seq))
	abs = filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", "", fmt.Errorf("create screenshot dir: %w", err)
	}
	a.metrics.RecordScreenshot(ctx)
	return abs, rel, nil
}
