// Package report presents run artifacts: a static rendering for the
// terminal and an interactive browser over a registry.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/timvw/webtrace/internal/trace"
)

const timeLayout = "2006-01-02 15:04:05"

// Summary writes the run header and one line per execution.
func Summary(w io.Writer, r *trace.Result, t Theme) error {
	s := newStyles(t, w)
	_, err := io.WriteString(w, strings.Join(summaryLines(s, r, 0, -1), "\n")+"\n")
	return err
}

// Execution writes one execution and its events.
func Execution(w io.Writer, rec trace.ExecutionRecord, t Theme) error {
	s := newStyles(t, w)
	_, err := io.WriteString(w, strings.Join(executionLines(s, rec), "\n")+"\n")
	return err
}

func runHeader(s styles, r *trace.Result) []string {
	span := r.BuildStartTime.Local().Format(timeLayout)
	if r.BuildEndTime != nil {
		span += " - " + r.BuildEndTime.Local().Format("15:04:05")
	}
	c := r.Counts()
	total := c[trace.StatusPassed] + c[trace.StatusFailed] + c[trace.StatusSkipped]
	return []string{
		s.title.Render("Run "+span) + " " + s.dim.Render("v"+r.Version),
		fmt.Sprintf("%d tests: %s, %s, %s", total,
			s.passed.Render(fmt.Sprintf("%d passed", c[trace.StatusPassed])),
			s.failed.Render(fmt.Sprintf("%d failed", c[trace.StatusFailed])),
			s.skipped.Render(fmt.Sprintf("%d skipped", c[trace.StatusSkipped]))),
	}
}

// summaryLines renders the run header and executions. The execution at
// cursor is highlighted; -1 highlights nothing. width 0 means unbounded.
func summaryLines(s styles, r *trace.Result, width, cursor int) []string {
	lines := runHeader(s, r)
	if len(r.Executions) == 0 {
		return append(lines, s.dim.Render("  no executions recorded"))
	}
	nameWidth := 0
	for _, e := range r.Executions {
		nameWidth = max(nameWidth, len([]rune(e.TestName)))
	}
	if width > 0 {
		nameWidth = min(nameWidth, max(width-50, 10))
	}
	for i, e := range r.Executions {
		lines = append(lines, executionRow(s, e, nameWidth, i == cursor))
	}
	return lines
}

func executionRow(s styles, e trace.ExecutionRecord, nameWidth int, selected bool) string {
	name := padRight(truncate(e.TestName, nameWidth), nameWidth)
	if e.IsConfiguration {
		row := fmt.Sprintf("  · %s  %-8s %8s  %s", name, "config", formatDuration(e), e.TraceID)
		if e.Status == trace.StatusFailed {
			return s.failed.Render(row)
		}
		if selected {
			return s.selected.Render(row)
		}
		return s.dim.Render(row)
	}
	if selected {
		return s.selected.Render(fmt.Sprintf("> %s %s  %-8s %8s  %s  (%d events)",
			statusIcon(e.Status), name, e.Status, formatDuration(e), e.TraceID, len(e.Events)))
	}
	return fmt.Sprintf("  %s %s  %s %8s  %s",
		s.status(e.Status).Render(statusIcon(e.Status)),
		s.text.Render(name),
		s.status(e.Status).Render(fmt.Sprintf("%-8s", e.Status)),
		formatDuration(e),
		s.dim.Render(fmt.Sprintf("%s  (%d events)", e.TraceID, len(e.Events))))
}

func executionLines(s styles, rec trace.ExecutionRecord) []string {
	kind := "test"
	if rec.IsConfiguration {
		kind = "configuration"
	}
	lines := []string{
		s.status(rec.Status).Render(statusIcon(rec.Status)+" "+rec.TestName) + "  " +
			s.status(rec.Status).Render(string(rec.Status)) + "  " +
			s.dim.Render(fmt.Sprintf("%s, %s, trace %s", kind, formatDuration(rec), rec.TraceID)),
	}
	if rec.Browser != "" {
		lines = append(lines, s.dim.Render(strings.TrimSpace(
			fmt.Sprintf("browser %s %s %s", rec.Browser, rec.BrowserVersion, rec.ScreenResolution))))
	}
	lines = append(lines, s.rule.Render(strings.Repeat("─", 40)))
	if len(rec.Events) == 0 {
		return append(lines, s.dim.Render("no events"))
	}
	for _, ev := range rec.Events {
		lines = append(lines, eventLine(s, ev))
	}
	return lines
}

func eventLine(s styles, ev trace.Event) string {
	var b strings.Builder
	b.WriteString(s.dim.Render(ev.Time.Local().Format("15:04:05.000")))
	b.WriteString("  ")
	b.WriteString(s.level(ev.Level).Render(fmt.Sprintf("%-7s", ev.Level)))
	b.WriteString("  ")
	b.WriteString(s.info.Render(fmt.Sprintf("%-11s", ev.Type)))
	b.WriteString("  ")
	b.WriteString(s.text.Render(ev.Content))
	if ev.Command != "" {
		ref := fmt.Sprintf("[%s #%d", ev.Command, ev.Seq)
		if ev.Locator != "" {
			ref += " " + ev.Locator
		}
		b.WriteString("  " + s.dim.Render(ref+"]"))
	}
	if ev.Screenshot != "" {
		b.WriteString("  " + s.info.Render(ev.Screenshot))
	}
	return b.String()
}

func formatDuration(e trace.ExecutionRecord) string {
	if e.EndTime == nil {
		return "running"
	}
	d := e.Duration()
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}

// truncate cuts a string to at most maxLen runes.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// padRight pads s with spaces to the given rune width.
func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
