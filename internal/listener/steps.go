package listener

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/webdriver"
)

// StepsSummarizer turns completed commands into a numbered, human readable
// reproduction script. A step identical to the one before it is dropped, so
// polling loops and repeated failures collapse into one line.
type StepsSummarizer struct {
	Base

	path string

	mu    sync.Mutex
	step  int
	last  string
	lines []string
}

// NewStepsSummarizer returns a summarizer that writes its script to path on
// Close. An empty path keeps the script in memory only.
func NewStepsSummarizer(path string) *StepsSummarizer {
	s := &StepsSummarizer{path: path}
	s.Observe = s.observe
	return s
}

// StepsPath is the conventional script location for a test.
func StepsPath(dir, testName string) string {
	return filepath.Join(dir, fileName(testName)+".txt")
}

func (s *StepsSummarizer) observe(_ context.Context, rec *event.Record, _ webdriver.Driver) {
	var msg string
	switch {
	case rec.Phase == event.Exception:
		msg = exceptionStep(rec)
	case rec.Phase.IsAfter():
		var ok bool
		if msg, ok = describeStep(rec); !ok {
			return
		}
	default:
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if msg == s.last {
		return
	}
	s.last = msg
	s.step++
	s.lines = append(s.lines, fmt.Sprintf("Step %d: %s", s.step, msg))
}

func exceptionStep(rec *event.Record) string {
	msg := rec.Param1()
	if f, ok := rec.Payload.(event.Failure); ok {
		msg = f.Message
	}
	return fmt.Sprintf("command %s failed with error %s", rec.Command.Short(), msg)
}

// describeStep renders an After record as a step. Reads that are not checks
// on an element are not steps.
func describeStep(rec *event.Record) (string, bool) {
	p1, loc, ret := rec.Param1(), rec.Locator, rec.ReturnValue
	switch rec.Command {
	case event.Get:
		return "open page " + p1, true
	case event.To:
		return "go to URL " + p1, true
	case event.Close:
		return "close tab", true
	case event.Quit:
		return "close browser", true
	case event.Back:
		return "press Back button", true
	case event.Forward:
		return "press Forward button", true
	case event.Refresh:
		return "press Refresh button", true

	case event.SwitchToAlert:
		return "switch to alert dialog.", true
	case event.Dismiss:
		return "dismissed alert dialog.", true
	case event.Accept:
		return "accepted alert dialog.", true
	case event.SendKeysToAlert:
		return fmt.Sprintf("send text '%s' to alert dialog.", p1), true

	case event.ClickElement:
		return "click on element " + loc, true
	case event.Clear:
		return "clear input field " + loc, true
	case event.SendKeysToElement:
		return fmt.Sprintf("enter text '%s' into input field %s", p1, loc), true
	case event.Submit:
		return "click on Submit button " + loc, true
	case event.UploadFile:
		return fmt.Sprintf("uploaded file %s to %s", p1, loc), true

	case event.ExecuteScript:
		if p2 := rec.Param2(); p2 != "" {
			return fmt.Sprintf("executed script %s with parameters %s", p1, p2), true
		}
		return "executed script " + p1, true
	case event.ExecuteAsyncScript:
		return "async executed script " + p1, true

	case event.AddCookie:
		return "added cookie " + p1, true
	case event.DeleteCookieNamed, event.DeleteCookie:
		return "deleted cookie " + p1, true
	case event.DeleteAllCookies:
		return "deleted all cookies", true
	case event.SwitchToWindow:
		return "switched to window " + p1, true

	case event.SendKeysByKeyboard:
		return fmt.Sprintf("entered text '%s'", p1), true
	case event.PressKey:
		return "pressed key " + p1, true
	case event.ReleaseKey:
		return "released key " + p1, true

	case event.MouseClick:
		return fmt.Sprintf("left mouse click at page coordinates '%s'", p1), true
	case event.DoubleClick:
		return fmt.Sprintf("double mouse click at page coordinates '%s'", p1), true
	case event.ContextClick:
		return fmt.Sprintf("context mouse click at page coordinates '%s'", p1), true
	case event.MouseDown:
		return fmt.Sprintf("mouse down at page coordinates '%s'", p1), true
	case event.MouseUp:
		return fmt.Sprintf("mouse up at page coordinates '%s'", p1), true
	case event.MouseMove:
		return "mouse moved to " + p1, true
	case event.MouseMoveWithOffset:
		if ptr, ok := rec.Payload.(event.Pointer); ok && ptr.Offset != nil {
			return fmt.Sprintf("mouse moved to %s with x offset %d and y offset %d",
				p1, ptr.Offset.X, ptr.Offset.Y), true
		}
		return "mouse moved to " + p1, true

	case event.GetText:
		return fmt.Sprintf("check text under element %s is '%s'", loc, ret), true
	case event.GetAttribute:
		return fmt.Sprintf("check attribute %s of element %s has value '%s'", p1, loc, ret), true
	case event.GetCSSValue:
		return fmt.Sprintf("check CSS attribute %s of element %s has value '%s'", p1, loc, ret), true
	case event.GetTagName:
		return fmt.Sprintf("check tag name of element %s is '%s'", loc, ret), true
	case event.IsDisplayed:
		return checkState(loc, ret, "visible"), true
	case event.IsEnabled:
		return checkState(loc, ret, "enabled"), true
	case event.IsSelected:
		return checkState(loc, ret, "selected"), true
	}

	if !rec.Command.IsAction() {
		return "", false
	}
	if !rec.HasParams() {
		return rec.Command.Short(), true
	}
	args := rec.Param1()
	if p2 := rec.Param2(); p2 != "" {
		args += ", " + p2
	}
	return fmt.Sprintf("%s(%s)", rec.Command.Long(), args), true
}

func checkState(loc, ret, state string) string {
	if ret != "true" {
		state = "not " + state
	}
	return fmt.Sprintf("check element %s is %s", loc, state)
}

// Lines returns the steps recorded so far.
func (s *StepsSummarizer) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// WriteTo writes the script, one step per line.
func (s *StepsSummarizer) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, l := range s.Lines() {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Close flushes the script to its file.
func (s *StepsSummarizer) Close() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create steps dir: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write steps: %w", err)
	}
	if _, err := s.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write steps: %w", err)
	}
	return f.Close()
}
