package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/trace"
	"github.com/timvw/webtrace/internal/webdriver"
)

// FullLogger keeps every record it is given, in order. Failures are also
// attached to the worker's execution as WARNING events.
type FullLogger struct {
	Base

	sink Sink
	log  *slog.Logger

	mu      sync.Mutex
	records []*event.Record
}

// NewFullLogger returns a FullLogger. sink may be nil when no execution
// tracking is wanted.
func NewFullLogger(sink Sink, log *slog.Logger) *FullLogger {
	if log == nil {
		log = slog.Default()
	}
	l := &FullLogger{sink: sink, log: log}
	l.Observe = l.record
	return l
}

func (l *FullLogger) record(ctx context.Context, rec *event.Record, _ webdriver.Driver) {
	l.mu.Lock()
	l.records = append(l.records, rec)
	l.mu.Unlock()
	l.log.DebugContext(ctx, "command",
		"seq", rec.Seq,
		"phase", rec.Phase.String(),
		"command", rec.Command.Short(),
		"locator", rec.Locator,
		"param1", rec.Param1(),
		"param2", rec.Param2(),
		"return", rec.ReturnValue)
}

func (l *FullLogger) OnException(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	l.record(ctx, rec, d)
	if l.sink == nil {
		return
	}
	err := l.sink.AppendEvent(ctx, trace.Event{
		Type:    trace.EventException,
		Content: fmt.Sprintf("command %s failed: %s", rec.Command.Short(), rec.Param1()),
		Level:   trace.LevelWarning,
		Time:    rec.Time,
		Command: rec.Command.Short(),
		Params:  rec.Param1(),
		Locator: rec.Locator,
		Seq:     rec.Seq,
	})
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, trace.ErrNoActiveExecution) {
			level = slog.LevelDebug
		}
		l.log.Log(ctx, level, "exception not attached to execution", "seq", rec.Seq, "err", err)
	}
}

// Records returns the records seen so far.
func (l *FullLogger) Records() []*event.Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*event.Record, len(l.records))
	copy(out, l.records)
	return out
}
