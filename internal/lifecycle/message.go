package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/timvw/webtrace/internal/trace"
)

// Op names one aggregator lifecycle call.
type Op string

const (
	OpRunStart           Op = "run_start"
	OpConfigurationStart Op = "configuration_start"
	OpTestCaseStart      Op = "test_case_start"
	OpEvent              Op = "event"
	OpException          Op = "exception"
	OpStatus             Op = "status"
	OpConfigurationEnd   Op = "configuration_end"
	OpTestCaseEnd        Op = "test_case_end"
	OpRunEnd             Op = "run_end"
)

// Message is one lifecycle call sent by an out-of-process test runner.
type Message struct {
	Op     Op        `json:"op"`
	Worker string    `json:"worker,omitempty"`
	TS     time.Time `json:"ts"`

	// Name is the test or configuration method for the *_start ops.
	Name           string `json:"name,omitempty"`
	Browser        string `json:"browser,omitempty"`
	BrowserVersion string `json:"browserVersion,omitempty"`
	Resolution     string `json:"screenResolution,omitempty"`

	Status  string `json:"status,omitempty"`
	Content string `json:"content,omitempty"`
	Level   string `json:"level,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (m Message) Validate() error {
	switch m.Op {
	case OpRunStart, OpConfigurationEnd, OpTestCaseEnd, OpRunEnd:
	case OpConfigurationStart, OpTestCaseStart:
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%s: name is required", m.Op)
		}
	case OpEvent:
		if m.Content == "" {
			return fmt.Errorf("event: content is required")
		}
		if m.Level != "" && !trace.Level(m.Level).Valid() {
			return fmt.Errorf("event: invalid level %q", m.Level)
		}
	case OpException:
		if m.Error == "" {
			return fmt.Errorf("exception: error is required")
		}
	case OpStatus:
		if _, err := trace.ParseStatus(m.Status); err != nil {
			return fmt.Errorf("status: %w", err)
		}
	default:
		return fmt.Errorf("invalid op %q", m.Op)
	}
	if m.TS.IsZero() {
		return fmt.Errorf("ts is required")
	}
	return nil
}

// level defaults to INFO.
func (m Message) level() trace.Level {
	if m.Level == "" {
		return trace.LevelInfo
	}
	return trace.Level(m.Level)
}
