package trace

import (
	"sync"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Execution is the live trace of one test case or configuration phase.
// It is safe for concurrent use, although in practice only the owning
// worker and the listeners acting for it touch it.
type Execution struct {
	idOnce  sync.Once
	traceID string

	name   string
	config bool
	start  time.Time
	span   oteltrace.Span

	mu               sync.Mutex
	status           Status
	end              *time.Time
	events           []Event
	browser          string
	browserVersion   string
	screenResolution string
}

func newExecution(name string, config bool, start time.Time) *Execution {
	e := &Execution{
		name:   name,
		config: config,
		start:  start,
		status: StatusPassed,
		events: []Event{},
	}
	e.TraceID()
	return e
}

// TraceID returns the execution's identifier, generating it on first use.
func (e *Execution) TraceID() string {
	e.idOnce.Do(func() { e.traceID = newID() })
	return e.traceID
}

func (e *Execution) Name() string { return e.name }

func (e *Execution) IsConfiguration() bool { return e.config }

func (e *Execution) StartTime() time.Time { return e.start }

func (e *Execution) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// SetStatus raises the status to s if s is more severe than the current one
// and reports whether it changed. FAILED is never replaced.
func (e *Execution) SetStatus(s Status) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s.severity() <= e.status.severity() {
		return false
	}
	e.status = s
	return true
}

// Append adds an event to the end of the trace.
func (e *Execution) Append(ev Event) {
	e.mu.Lock()
	e.events = append(e.events, ev)
	e.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (e *Execution) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Event, len(e.events))
	copy(out, e.events)
	return out
}

// SetBrowser records the browser the execution ran against.
func (e *Execution) SetBrowser(name, version, resolution string) {
	e.mu.Lock()
	e.browser, e.browserVersion, e.screenResolution = name, version, resolution
	e.mu.Unlock()
}

// Ended reports whether the end time has been set.
func (e *Execution) Ended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.end != nil
}

// finish sets the end time once; later calls are ignored.
func (e *Execution) finish(at time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.end != nil {
		return false
	}
	e.end = &at
	return true
}

// Record snapshots the execution in its persisted form.
func (e *Execution) Record() ExecutionRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := ExecutionRecord{
		TraceID:          e.TraceID(),
		TestName:         e.name,
		Status:           e.status,
		IsConfiguration:  e.config,
		StartTime:        e.start,
		Browser:          e.browser,
		BrowserVersion:   e.browserVersion,
		ScreenResolution: e.screenResolution,
		Events:           make([]Event, len(e.events)),
	}
	copy(r.Events, e.events)
	if e.end != nil {
		end := *e.end
		r.EndTime = &end
	}
	return r
}
