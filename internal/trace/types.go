package trace

import (
	"fmt"
	"strings"
	"time"
)

// Status is the outcome of a test case execution.
type Status string

const (
	StatusPassed  Status = "PASSED"
	StatusSkipped Status = "SKIPPED"
	StatusFailed  Status = "FAILED"
)

// severity orders statuses; an execution's status only ever moves up.
func (s Status) severity() int {
	switch s {
	case StatusPassed:
		return 0
	case StatusSkipped:
		return 1
	case StatusFailed:
		return 2
	}
	return -1
}

func (s Status) Valid() bool { return s.severity() >= 0 }

// ParseStatus accepts status names in any case.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("invalid status %q", s)
	}
	return st, nil
}

// Level is the severity of a test event.
type Level string

const (
	LevelSevere  Level = "SEVERE"
	LevelWarning Level = "WARNING"
	LevelInfo    Level = "INFO"
	LevelFine    Level = "FINE"
)

func (l Level) Valid() bool {
	switch l {
	case LevelSevere, LevelWarning, LevelInfo, LevelFine:
		return true
	}
	return false
}

// EventType classifies a test event.
type EventType string

const (
	EventScreenshot EventType = "SCREEN_SHOT"
	EventURL        EventType = "URL"
	EventException  EventType = "EXCEPTION"
	EventAutomation EventType = "AUTOMATION"
)

// Event is a diagnostic entry attached to a test case execution.
type Event struct {
	Type    EventType `json:"eventType"`
	Content string    `json:"eventContent"`
	Level   Level     `json:"eventLevel"`
	Time    time.Time `json:"eventTime"`

	// Originating browser command, when the event came from one.
	Command string `json:"command,omitempty"`
	Params  string `json:"commandParam,omitempty"`
	Locator string `json:"locator,omitempty"`
	Seq     int64  `json:"sequenceNumber,omitempty"`

	// Screenshot is relative to the run directory.
	Screenshot string `json:"screenshotPath,omitempty"`
}

func (e Event) Validate() error {
	switch e.Type {
	case EventScreenshot, EventURL, EventException, EventAutomation:
	default:
		return fmt.Errorf("invalid event type %q", e.Type)
	}
	if !e.Level.Valid() {
		return fmt.Errorf("invalid level %q", e.Level)
	}
	if e.Type == EventScreenshot && e.Screenshot == "" {
		return fmt.Errorf("screenshot event without screenshot path")
	}
	return nil
}

// ExecutionRecord is the persisted form of a test case execution.
type ExecutionRecord struct {
	TraceID          string     `json:"traceId"`
	TestName         string     `json:"testName"`
	Status           Status     `json:"testStatus"`
	IsConfiguration  bool       `json:"isConfiguration"`
	StartTime        time.Time  `json:"startTime"`
	EndTime          *time.Time `json:"endTime,omitempty"`
	Browser          string     `json:"browser,omitempty"`
	BrowserVersion   string     `json:"browserVersion,omitempty"`
	ScreenResolution string     `json:"screenResolution,omitempty"`
	Events           []Event    `json:"eventList"`
}

// Duration is zero while the execution is still open.
func (r ExecutionRecord) Duration() time.Duration {
	if r.EndTime == nil {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}

// Result is everything recorded for one run.
type Result struct {
	Version        string            `json:"version"`
	BuildStartTime time.Time         `json:"buildStartTime"`
	BuildEndTime   *time.Time        `json:"buildEndTime,omitempty"`
	Executions     []ExecutionRecord `json:"testCaseExecutionList"`
}

// Counts tallies test (not configuration) executions per status.
func (r *Result) Counts() map[Status]int {
	out := make(map[Status]int, 3)
	for _, e := range r.Executions {
		if e.IsConfiguration {
			continue
		}
		out[e.Status]++
	}
	return out
}

// Find returns the execution with the given trace id.
func (r *Result) Find(traceID string) (ExecutionRecord, bool) {
	for _, e := range r.Executions {
		if e.TraceID == traceID {
			return e, true
		}
	}
	return ExecutionRecord{}, false
}
