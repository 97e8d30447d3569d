package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/timvw/webtrace/internal/trace"
)

func fixture() *trace.Result {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time { t := start.Add(d); return &t }
	return &trace.Result{
		Version:        "1.2.0",
		BuildStartTime: start,
		BuildEndTime:   at(time.Minute),
		Executions: []trace.ExecutionRecord{
			{TraceID: "01SETUP", TestName: "setUp", Status: trace.StatusPassed, IsConfiguration: true, StartTime: start, EndTime: at(300 * time.Millisecond), Events: []trace.Event{}},
			{TraceID: "01LOGIN", TestName: "login works", Status: trace.StatusPassed, StartTime: start, EndTime: at(2 * time.Second), Browser: "chrome", BrowserVersion: "126", Events: []trace.Event{
				{Type: trace.EventScreenshot, Level: trace.LevelInfo, Content: "before WebDriver.get", Time: start, Command: "get", Seq: 1, Screenshot: "Screenshots/01LOGIN-00001.png"},
			}},
			{TraceID: "01CHECKOUT", TestName: "checkout", Status: trace.StatusFailed, StartTime: start, EndTime: at(5 * time.Second), Events: []trace.Event{
				{Type: trace.EventException, Level: trace.LevelSevere, Content: "price mismatch", Time: start},
			}},
			{TraceID: "01SEARCH", TestName: "search", Status: trace.StatusSkipped, StartTime: start, Events: []trace.Event{}},
		},
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := Summary(&buf, fixture(), DarkTheme()); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no escape sequences for a buffer, got %q", out)
	}
	for _, want := range []string{
		"v1.2.0",
		"3 tests: 1 passed, 1 failed, 1 skipped",
		"✓ login works",
		"✗ checkout",
		"○ search",
		"running",
		"· setUp",
		"01CHECKOUT  (1 events)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestExecution(t *testing.T) {
	var buf bytes.Buffer
	if err := Execution(&buf, fixture().Executions[1], LightTheme()); err != nil {
		t.Fatalf("Execution: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"✓ login works  PASSED",
		"test, 2s, trace 01LOGIN",
		"browser chrome 126",
		"SCREEN_SHOT",
		"[get #1]",
		"Screenshots/01LOGIN-00001.png",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("execution missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	_ = Execution(&buf, fixture().Executions[3], DarkTheme())
	if !strings.Contains(buf.String(), "no events") {
		t.Errorf("expected empty marker, got %q", buf.String())
	}
}

func TestTruncateAndPad(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"a long test name", 10, "a long ..."},
		{"überlang", 3, "übe"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
	if got := padRight("ü", 3); got != "ü  " {
		t.Errorf("padRight = %q", got)
	}
}

func TestThemeByName(t *testing.T) {
	if ThemeByName("light") != LightTheme() {
		t.Error("expected light theme")
	}
	if ThemeByName("anything") != DarkTheme() {
		t.Error("expected dark theme by default")
	}
}
