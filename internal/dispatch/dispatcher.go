// Package dispatch turns browser commands into event records and fans them
// out to listeners.
//
// A Dispatcher belongs to exactly one browser session. Wrap builds the
// session's instrumented driver, which calls the dispatcher's Before, After
// and OnException hooks around every command of the underlying driver.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/listener"
	telem "github.com/timvw/webtrace/internal/otel"
	"github.com/timvw/webtrace/internal/webdriver"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

func WithMetrics(m *telem.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithClock overrides the record timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// Dispatcher numbers the commands of one session and notifies listeners in
// registration order. It is not safe for concurrent use: commands of a
// session are issued one at a time and never nest.
type Dispatcher struct {
	drv       webdriver.Driver
	listeners []listener.Listener
	log       *slog.Logger
	metrics   *telem.Metrics
	now       func() time.Time

	seq     int64
	current *event.Record
}

// New returns a dispatcher for the session driven by drv. drv is handed to
// listeners as is, so it must be the raw driver, not an instrumented one.
func New(drv webdriver.Driver, listeners []listener.Listener, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		drv:       drv,
		listeners: append([]listener.Listener(nil), listeners...),
		log:       slog.Default(),
		now:       time.Now,
		seq:       1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Listeners returns the registered listeners in notification order.
func (d *Dispatcher) Listeners() []listener.Listener {
	return append([]listener.Listener(nil), d.listeners...)
}

// Current returns the most recent Before record, or nil before the first
// command.
func (d *Dispatcher) Current() *event.Record { return d.current }

// Close flushes listeners that write files.
func (d *Dispatcher) Close() error {
	return listener.Close(d.listeners)
}

func (d *Dispatcher) before(ctx context.Context, cmd event.Command, locator string, p event.Payload) {
	rec := &event.Record{
		Seq:     d.seq,
		Phase:   event.BeforePhase(cmd),
		Command: cmd,
		Locator: locator,
		Payload: p,
		Time:    d.now(),
	}
	d.current = rec
	hook, _ := listener.Hooks(cmd)
	d.notify(ctx, rec, hook)
}

func (d *Dispatcher) after(ctx context.Context, cmd event.Command, locator string, p event.Payload, ret string, obj any) {
	rec := &event.Record{
		Seq:          d.seq,
		Phase:        event.AfterPhase(cmd),
		Command:      cmd,
		Locator:      locator,
		Payload:      p,
		ReturnValue:  ret,
		ReturnObject: obj,
		Time:         d.now(),
	}
	_, hook := listener.Hooks(cmd)
	d.notify(ctx, rec, hook)
	if cmd.IsAction() {
		d.seq++
	}
}

// OnException reports that cmd failed with err. Nothing is recorded before
// the session's first command. A failed action consumes its sequence number
// just like a completed one.
func (d *Dispatcher) OnException(ctx context.Context, cmd event.Command, err error) {
	cur := d.current
	if cur == nil || err == nil {
		return
	}
	if cmd == event.Unknown {
		cmd = cur.Command
	}
	rec := &event.Record{
		Seq:     cur.Seq,
		Phase:   event.Exception,
		Command: cmd,
		Locator: cur.Locator,
		Payload: event.Failure{Type: event.ErrorType(err), Message: err.Error()},
		Err:     err,
		Time:    d.now(),
	}
	d.notify(ctx, rec, listener.ExceptionHook)
	if cur.Phase == event.BeforeAction && cur.Seq == d.seq {
		d.seq++
	}
}

func (d *Dispatcher) notify(ctx context.Context, rec *event.Record, hook listener.Hook) {
	d.metrics.RecordCommand(ctx, rec.Command.Short(), rec.Phase.String())
	if hook == nil {
		return
	}
	for _, l := range d.listeners {
		d.call(ctx, l, rec, hook)
	}
}

// call runs one listener callback. A panicking listener is logged and
// skipped; the remaining listeners still see the record.
func (d *Dispatcher) call(ctx context.Context, l listener.Listener, rec *event.Record, hook listener.Hook) {
	defer func() {
		if r := recover(); r != nil {
			name := fmt.Sprintf("%T", l)
			d.log.WarnContext(ctx, "listener failed",
				"listener", name,
				"command", rec.Command.Short(),
				"phase", rec.Phase.String(),
				"seq", rec.Seq,
				"panic", r)
			d.metrics.RecordListenerFailure(ctx, name)
		}
	}()
	hook(l, ctx, rec, d.drv)
}
