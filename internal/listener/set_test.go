package listener

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/trace"
	"github.com/timvw/webtrace/internal/webdriver"
)

func TestBaseIsNoop(t *testing.T) {
	var l Listener = &Base{}
	r := mkRecord(1, event.BeforeAction, event.Get, 0)
	assert.NotPanics(t, func() {
		for _, c := range event.Commands() {
			before, after := Hooks(c)
			before(l, context.Background(), r, nil)
			after(l, context.Background(), r, nil)
		}
		l.OnException(context.Background(), r, nil)
	})
}

func TestBaseForwardsToObserve(t *testing.T) {
	var seen []event.Command
	l := &Base{Observe: func(_ context.Context, rec *event.Record, _ webdriver.Driver) {
		seen = append(seen, rec.Command)
	}}
	feed(l,
		mkRecord(1, event.BeforeAction, event.Get, 0),
		mkRecord(1, event.AfterAction, event.Get, 0),
		failure(2, event.ClickElement, "boom"),
	)
	assert.Equal(t, []event.Command{event.Get, event.Get, event.ClickElement}, seen)
}

func TestHooksUnknownCommand(t *testing.T) {
	before, after := Hooks(event.Unknown)
	assert.Nil(t, before)
	assert.Nil(t, after)
}

func TestFullLoggerAttachesFailures(t *testing.T) {
	ctx, agg, exec := startCase(t, "logger")
	l := NewFullLogger(agg, nil)

	feed(l, mkRecord(1, event.BeforeAction, event.Get, 0))
	l.OnException(ctx, failure(1, event.Get, "refused"), nil)

	assert.Len(t, l.Records(), 2)
	evs := exec.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, trace.EventException, evs[0].Type)
	assert.Equal(t, trace.LevelWarning, evs[0].Level)
	assert.Equal(t, "command get failed: Exception Type: error, message: refused", evs[0].Content)
}

func TestNewSetOrder(t *testing.T) {
	agg := trace.NewAggregator(trace.Options{Root: t.TempDir()})
	s := NewSet(SetOptions{
		Sink:        agg,
		TestName:    "order",
		Screenshots: true,
		ShadowPaths: true,
		Performance: true,
		Locators:    true,
		Diagnostics: &bytes.Buffer{},
	})

	require.Len(t, s.Listeners, 6)
	assert.Same(t, s.Log, s.Listeners[0])
	assert.IsType(t, &ScreenshotCapturer{}, s.Listeners[1])
	assert.Same(t, s.Steps, s.Listeners[2])
	assert.IsType(t, &PerformanceTimer{}, s.Listeners[3])
	assert.IsType(t, &ShadowPathExtractor{}, s.Listeners[4])
	assert.Same(t, s.Locators, s.Listeners[5])

	minimal := NewSet(SetOptions{Screenshots: true})
	assert.Len(t, minimal.Listeners, 2)
	assert.Nil(t, minimal.Locators)
}

func lookup(cmd event.Command, by string) *event.Record {
	r := mkRecord(1, event.BeforeGather, cmd, 0)
	r.Payload = event.Query{By: by}
	return r
}

func TestLocatorLoggerWritesLookups(t *testing.T) {
	dir := t.TempDir()
	s := NewSet(SetOptions{TestName: "search/results", Dir: dir, Locators: true})

	ctx := context.Background()
	feed(s.Locators,
		lookup(event.FindElementByDriver, "id=q"),
		lookup(event.FindElementsByDriver, "css=.result"),
		lookup(event.FindElementByElement, "tag=a"),
		lookup(event.FindElementsByElement, "css=.result"),
		mkRecord(2, event.BeforeAction, event.ClickElement, 0),
	)
	s.Locators.AfterFindElementByDriver(ctx, lookup(event.FindElementByDriver, "id=ignored"), nil)

	assert.Equal(t, []string{"id=q", "css=.result", "tag=a", "css=.result"}, s.Locators.Locators())

	require.NoError(t, Close(s.Listeners))
	data, err := os.ReadFile(LocatorsPath(dir, "search/results"))
	require.NoError(t, err)
	assert.Equal(t, "4\nid=q\ncss=.result\ntag=a\ncss=.result\n", string(data))
}

func TestLocatorLoggerWithoutPathKeepsMemory(t *testing.T) {
	l := NewLocatorLogger("")
	l.BeforeFindElementByDriver(context.Background(), lookup(event.FindElementByDriver, "name=user"), nil)
	assert.Equal(t, []string{"name=user"}, l.Locators())
	assert.NoError(t, l.Close())
}

type failingCloser struct {
	Base
	err error
}

func (f *failingCloser) Close() error { return f.err }

var _ io.Closer = (*failingCloser)(nil)

func TestCloseJoinsErrors(t *testing.T) {
	e1, e2 := errors.New("one"), errors.New("two")
	err := Close([]Listener{&failingCloser{err: e1}, &Base{}, &failingCloser{err: e2}})
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
	assert.NoError(t, Close(nil))
}
