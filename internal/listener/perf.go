package listener

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/webdriver"
)

// PerformanceTimer prints how long each command took and how much time
// passed between consecutive actions. It never touches executions.
type PerformanceTimer struct {
	Base

	mu       sync.Mutex
	w        io.Writer
	pending  *event.Record // most recent Before
	lastStep *event.Record // most recent completed action
}

// NewPerformanceTimer writes to w, or to stderr when w is nil.
func NewPerformanceTimer(w io.Writer) *PerformanceTimer {
	if w == nil {
		w = os.Stderr
	}
	p := &PerformanceTimer{w: w}
	p.Observe = p.observe
	return p
}

func (p *PerformanceTimer) observe(_ context.Context, rec *event.Record, _ webdriver.Driver) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch rec.Phase {
	case event.BeforeAction:
		if rec.Seq > 1 && p.lastStep != nil {
			p.printf("Step %d: Time elapsed since action '%s' in step %d: %s",
				rec.Seq, p.lastStep.Command.Short(), p.lastStep.Seq, formatDuration(rec.Since(p.lastStep)))
		}
		p.printf("Step %d: action '%s'", rec.Seq, callString(rec))
		p.pending = rec
	case event.BeforeGather:
		p.printf("Step %d: gather '%s'", rec.Seq, callString(rec))
		p.pending = rec
	case event.AfterAction:
		p.printf("Step %d: action '%s' executed in %s", rec.Seq, rec.Command.Short(), p.elapsed(rec))
		p.lastStep = rec
	case event.AfterGather:
		p.printf("Step %d: executed in %s and returned: '%s'", rec.Seq, p.elapsed(rec), rec.ReturnValue)
	case event.Exception:
		p.printf("Step %d: '%s' failed after %s", rec.Seq, rec.Command.Short(), p.elapsed(rec))
	}
}

// elapsed measures rec against its Before record.
func (p *PerformanceTimer) elapsed(rec *event.Record) string {
	if p.pending == nil || p.pending.Seq != rec.Seq || p.pending.Command != rec.Command {
		return "<unknown>"
	}
	return formatDuration(rec.Since(p.pending))
}

func (p *PerformanceTimer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// callString renders the command in its long form with its arguments.
func callString(rec *event.Record) string {
	switch p1, p2 := rec.Param1(), rec.Param2(); {
	case p1 == "" && p2 == "":
		return rec.Command.Long() + "()"
	case p2 == "":
		return fmt.Sprintf("%s(%q)", rec.Command.Long(), p1)
	default:
		return fmt.Sprintf("%s(%q, %q)", rec.Command.Long(), p1, p2)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.Round(time.Microsecond).String()
	}
	return d.Round(time.Millisecond).String()
}
