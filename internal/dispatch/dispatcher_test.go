package dispatch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/listener"
	"github.com/timvw/webtrace/internal/webdriver"
)

// fakeDriver implements the handful of commands the tests issue. Anything
// else panics through the nil embedded interface.
type fakeDriver struct {
	webdriver.Driver

	errs       map[string]error
	scriptArgs []any
	got        []string
}

func (f *fakeDriver) err(name string) error {
	f.got = append(f.got, name)
	return f.errs[name]
}

func (f *fakeDriver) Get(_ context.Context, url string) error { return f.err("get") }

func (f *fakeDriver) Title(context.Context) (string, error) {
	if err := f.err("title"); err != nil {
		return "", err
	}
	return "Home", nil
}

func (f *fakeDriver) FindElement(_ context.Context, by webdriver.By) (webdriver.Element, error) {
	if err := f.err("find"); err != nil {
		return nil, err
	}
	return &fakeElement{id: "e1", loc: by.String()}, nil
}

func (f *fakeDriver) ExecuteScript(_ context.Context, _ string, args ...any) (any, error) {
	f.scriptArgs = args
	return "ok", f.err("script")
}

func (f *fakeDriver) Screenshot(context.Context) ([]byte, error) { return []byte("png"), nil }

type fakeElement struct {
	webdriver.Element

	id, loc string
	typed   string
}

func (e *fakeElement) ID() string { return e.id }
func (e *fakeElement) Locator() string { return e.loc }
func (e *fakeElement) Click(context.Context) error { return nil }
func (e *fakeElement) SendKeys(_ context.Context, text string) error {
	e.typed += text
	return nil
}

type phaseSeq struct {
	Phase event.Phase
	Cmd   event.Command
	Seq   int64
}

func summarize(recs []*event.Record) []phaseSeq {
	out := make([]phaseSeq, len(recs))
	for i, r := range recs {
		out[i] = phaseSeq{r.Phase, r.Command, r.Seq}
	}
	return out
}

func newTestDriver(t *testing.T, raw *fakeDriver, extra ...listener.Listener) (*Driver, *listener.FullLogger) {
	t.Helper()
	full := listener.NewFullLogger(nil, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	ls := append([]listener.Listener{full}, extra...)
	return Wrap(raw, ls), full
}

func TestGetProducesBeforeAndAfterAction(t *testing.T) {
	ctx := context.Background()
	drv, full := newTestDriver(t, &fakeDriver{})

	require.NoError(t, drv.Get(ctx, "https://example.com"))

	recs := full.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, []phaseSeq{
		{event.BeforeAction, event.Get, 1},
		{event.AfterAction, event.Get, 1},
	}, summarize(recs))
	assert.Equal(t, "https://example.com", recs[0].Param1())
	assert.Equal(t, "https://example.com", recs[1].Param1())
}

func TestGatherDoesNotAdvanceSequence(t *testing.T) {
	ctx := context.Background()
	drv, full := newTestDriver(t, &fakeDriver{})

	require.NoError(t, drv.Get(ctx, "a"))
	title, err := drv.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Home", title)
	require.NoError(t, drv.Get(ctx, "b"))

	assert.Equal(t, []phaseSeq{
		{event.BeforeAction, event.Get, 1},
		{event.AfterAction, event.Get, 1},
		{event.BeforeGather, event.GetTitle, 2},
		{event.AfterGather, event.GetTitle, 2},
		{event.BeforeAction, event.Get, 2},
		{event.AfterAction, event.Get, 2},
	}, summarize(full.Records()))
	assert.Equal(t, "Home", full.Records()[3].ReturnValue)
}

func TestFailedActionConsumesSequence(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("net::ERR_NAME_NOT_RESOLVED")
	raw := &fakeDriver{errs: map[string]error{"get": boom}}
	drv, full := newTestDriver(t, raw)

	err := drv.Get(ctx, "https://nowhere.invalid")
	assert.Same(t, boom, err)

	raw.errs = nil
	_, err = drv.Title(ctx)
	require.NoError(t, err)

	recs := full.Records()
	assert.Equal(t, []phaseSeq{
		{event.BeforeAction, event.Get, 1},
		{event.Exception, event.Get, 1},
		{event.BeforeGather, event.GetTitle, 2},
		{event.AfterGather, event.GetTitle, 2},
	}, summarize(recs))
	assert.Equal(t, "Exception Type: error, message: net::ERR_NAME_NOT_RESOLVED", recs[1].Param1())
	assert.Same(t, boom, recs[1].Err)
}

func TestFailedGatherKeepsSequence(t *testing.T) {
	ctx := context.Background()
	raw := &fakeDriver{errs: map[string]error{"find": webdriver.ErrNoSuchElement}}
	drv, full := newTestDriver(t, raw)

	_, err := drv.FindElement(ctx, webdriver.ByCSS("#missing"))
	assert.ErrorIs(t, err, webdriver.ErrNoSuchElement)
	require.NoError(t, drv.Get(ctx, "a"))

	assert.Equal(t, []phaseSeq{
		{event.BeforeGather, event.FindElementByDriver, 1},
		{event.Exception, event.FindElementByDriver, 1},
		{event.BeforeAction, event.Get, 1},
		{event.AfterAction, event.Get, 1},
	}, summarize(full.Records()))
}

func TestExceptionBeforeFirstCommandIsIgnored(t *testing.T) {
	drv, full := newTestDriver(t, &fakeDriver{})

	drv.Dispatcher().OnException(context.Background(), event.Unknown, errors.New("early"))

	assert.Empty(t, full.Records())
	assert.Nil(t, drv.Dispatcher().Current())
}

func TestPanickingListenerIsIsolated(t *testing.T) {
	ctx := context.Background()
	bad := &listener.Base{Observe: func(context.Context, *event.Record, webdriver.Driver) {
		panic("listener bug")
	}}
	full := listener.NewFullLogger(nil, nil)
	var logs bytes.Buffer
	drv := Wrap(&fakeDriver{}, []listener.Listener{bad, full},
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	require.NoError(t, drv.Get(ctx, "a"))

	assert.Len(t, full.Records(), 2)
	assert.Contains(t, logs.String(), "listener failed")
	assert.Contains(t, logs.String(), "listener bug")
}

func TestListenersSeeRawDriver(t *testing.T) {
	raw := &fakeDriver{}
	var seen []webdriver.Driver
	spy := &listener.Base{Observe: func(_ context.Context, _ *event.Record, d webdriver.Driver) {
		seen = append(seen, d)
	}}
	drv := Wrap(raw, []listener.Listener{spy})

	require.NoError(t, drv.Get(context.Background(), "a"))

	require.Len(t, seen, 2)
	for _, d := range seen {
		assert.Same(t, raw, d)
	}
	assert.Same(t, raw, drv.Unwrap())
}

func TestElementCommandsAreInstrumented(t *testing.T) {
	ctx := context.Background()
	drv, full := newTestDriver(t, &fakeDriver{})

	el, err := drv.FindElement(ctx, webdriver.ByCSS("#login"))
	require.NoError(t, err)
	require.IsType(t, &Element{}, el)
	require.NoError(t, el.Click(ctx))

	recs := full.Records()
	assert.Equal(t, []phaseSeq{
		{event.BeforeGather, event.FindElementByDriver, 1},
		{event.AfterGather, event.FindElementByDriver, 1},
		{event.BeforeAction, event.ClickElement, 1},
		{event.AfterAction, event.ClickElement, 1},
	}, summarize(recs))
	assert.Equal(t, "css=#login", recs[0].Param1())
	assert.Equal(t, "css=#login", recs[1].ReturnValue)
	assert.IsType(t, &fakeElement{}, recs[1].ReturnObject)
	assert.Equal(t, "css=#login", recs[2].Locator)
}

func TestPasswordKeysAreMasked(t *testing.T) {
	ctx := context.Background()
	drv, full := newTestDriver(t, &fakeDriver{})

	el, err := drv.FindElement(ctx, webdriver.ByCSS("#Password"))
	require.NoError(t, err)
	require.NoError(t, el.SendKeys(ctx, "hunter2"))

	for _, r := range full.Records()[2:] {
		assert.Equal(t, event.Mask, r.Param1())
		assert.NotContains(t, r.String(), "hunter2")
	}
	raw := el.(*Element).Unwrap().(*fakeElement)
	assert.Equal(t, "hunter2", raw.typed)
}

func TestScriptArgumentsAreUnwrapped(t *testing.T) {
	ctx := context.Background()
	raw := &fakeDriver{}
	drv, full := newTestDriver(t, raw)

	el, err := drv.FindElement(ctx, webdriver.ByCSS("button"))
	require.NoError(t, err)
	res, err := drv.ExecuteScript(ctx, "arguments[0].click()", el, 3)
	require.NoError(t, err)
	assert.Equal(t, "ok", res)

	require.Len(t, raw.scriptArgs, 2)
	assert.IsType(t, &fakeElement{}, raw.scriptArgs[0])
	after := full.Records()[3]
	assert.Equal(t, event.AfterAction, after.Phase)
	assert.Equal(t, "arguments[0].click()", after.Param1())
	assert.Equal(t, "css=button,3", after.Param2())
}

func TestEveryCommandHasHooks(t *testing.T) {
	for _, c := range event.Commands() {
		before, after := listener.Hooks(c)
		assert.NotNil(t, before, c.Short())
		assert.NotNil(t, after, c.Short())
	}
}
