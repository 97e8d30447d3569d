package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timvw/webtrace/internal/trace"
	"github.com/timvw/webtrace/internal/webdriver"
	"github.com/timvw/webtrace/internal/webdriver/static"
)

var shopPages = map[string]string{
	"https://shop.test/login": `<html><head><title>Sign in</title></head><body>
		<form action="/home"><input id="user" name="user"><button id="go">Go</button></form>
		<a href="/home">skip</a></body></html>`,
	"https://shop.test/home": `<html><head><title>Home</title></head><body><h1>Welcome</h1></body></html>`,
}

func want(s string) *string { return &s }

func newOptions(t *testing.T) (Options, *trace.Aggregator) {
	t.Helper()
	agg := trace.NewAggregator(trace.Options{Root: t.TempDir()})
	require.NoError(t, agg.OnRunStart(context.Background()))
	return Options{
		Aggregator: agg,
		NewDriver: func(context.Context) (webdriver.Driver, error) {
			return static.New(static.WithPages(shopPages)), nil
		},
	}, agg
}

func login(name string, title string) Test {
	return Test{
		Name:   name,
		Before: []Step{{Do: "get", URL: "https://shop.test/login"}},
		Steps: []Step{
			{Do: "type", Locator: Locator{ID: "user"}, Text: "alice"},
			{Do: "click", Locator: Locator{ID: "go"}},
			{Do: "title", Want: want(title)},
			{Do: "text", Locator: Locator{Tag: "h1"}, Want: want("Welcome")},
		},
	}
}

func TestRunRecordsOutcomes(t *testing.T) {
	opts, agg := newOptions(t)
	sc := &Scenario{Name: "shop", Tests: []Test{
		login("login works", "Home"),
		login("login lands on dashboard", "Dashboard"),
		{
			Name:   "setup breaks",
			Before: []Step{{Do: "get", URL: "https://shop.test/nowhere"}},
			Steps:  []Step{{Do: "refresh"}},
		},
	}}

	outs, err := Run(context.Background(), sc, opts)
	require.NoError(t, err)
	require.Len(t, outs, 3)

	assert.Equal(t, trace.StatusPassed, outs[0].Status)
	assert.NoError(t, outs[0].Err)
	assert.NotEmpty(t, outs[0].Steps)
	assert.Contains(t, strings.Join(outs[0].Steps, "\n"), "alice")

	assert.Equal(t, trace.StatusFailed, outs[1].Status)
	var exp *ExpectationError
	require.True(t, errors.As(outs[1].Err, &exp))
	assert.Equal(t, "Dashboard", exp.Want)
	assert.Equal(t, "Home", exp.Got)

	assert.Equal(t, trace.StatusSkipped, outs[2].Status)
	assert.ErrorIs(t, outs[2].Err, static.ErrUnknownPage)
	assert.Equal(t, 1, Failed(outs))

	// Each test is preceded by its setup configuration.
	res := agg.Snapshot()
	require.Len(t, res.Executions, 6)
	assert.True(t, res.Executions[0].IsConfiguration)
	assert.Equal(t, "before login works", res.Executions[0].TestName)
	assert.Equal(t, trace.StatusFailed, res.Executions[4].Status, "broken setup")
	rec, ok := res.Find(outs[1].TraceID)
	require.True(t, ok)
	assert.Equal(t, trace.EventException, rec.Events[len(rec.Events)-1].Type)
}

func TestRunParallelKeepsTracesApart(t *testing.T) {
	opts, agg := newOptions(t)
	opts.Parallel = 4
	sc := &Scenario{Name: "load"}
	for i := range 8 {
		sc.Tests = append(sc.Tests, login(fmt.Sprintf("login %d", i), "Home"))
	}

	outs, err := Run(context.Background(), sc, opts)
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, o := range outs {
		assert.Equal(t, trace.StatusPassed, o.Status, o.Test)
		ids[o.TraceID] = true
	}
	assert.Len(t, ids, 8)
	assert.Len(t, agg.Executions(), 16)
	for _, e := range agg.Executions() {
		assert.True(t, e.Ended(), e.Name())
	}
}

func TestRunDriverUnavailable(t *testing.T) {
	opts, agg := newOptions(t)
	boom := errors.New("no browser")
	opts.NewDriver = func(context.Context) (webdriver.Driver, error) { return nil, boom }

	outs, err := Run(context.Background(), &Scenario{Tests: []Test{{Name: "a"}}}, opts)
	require.NoError(t, err)
	assert.ErrorIs(t, outs[0].Err, boom)
	assert.Equal(t, trace.StatusFailed, outs[0].Status)
	require.Len(t, agg.Executions(), 1)
	assert.True(t, agg.Executions()[0].Ended())
}

func TestRunCancelled(t *testing.T) {
	opts, _ := newOptions(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outs, err := Run(ctx, &Scenario{Tests: []Test{login("a", "Home")}}, opts)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, trace.StatusSkipped, outs[0].Status)
}

type quitCounter struct {
	*static.Driver
	quits int
}

func (q *quitCounter) Quit(ctx context.Context) error {
	q.quits++
	return q.Driver.Quit(ctx)
}

func TestRunQuitsBrowserWhenExecutionCannotStart(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	for _, tc := range []struct {
		name string
		test Test
	}{
		{"configuration start fails", login("with setup", "Home")},
		{"test case start fails", Test{Name: "no setup", Steps: []Step{{Do: "refresh"}}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			agg := trace.NewAggregator(trace.Options{Root: filepath.Join(blocker, "registry")})
			var browsers []*quitCounter
			opts := Options{
				Aggregator: agg,
				NewDriver: func(context.Context) (webdriver.Driver, error) {
					q := &quitCounter{Driver: static.New(static.WithPages(shopPages))}
					browsers = append(browsers, q)
					return q, nil
				},
			}

			outs, err := Run(context.Background(), &Scenario{Tests: []Test{tc.test}}, opts)
			require.NoError(t, err)
			assert.Equal(t, trace.StatusFailed, outs[0].Status)
			assert.Error(t, outs[0].Err)
			require.Len(t, browsers, 1)
			assert.Equal(t, 1, browsers[0].quits)
		})
	}
}

func TestRunQuitsBrowserOnce(t *testing.T) {
	opts, _ := newOptions(t)
	var q *quitCounter
	opts.NewDriver = func(context.Context) (webdriver.Driver, error) {
		q = &quitCounter{Driver: static.New(static.WithPages(shopPages))}
		return q, nil
	}

	outs, err := Run(context.Background(), &Scenario{Tests: []Test{login("a", "Home")}}, opts)
	require.NoError(t, err)
	assert.Equal(t, trace.StatusPassed, outs[0].Status)
	assert.Equal(t, 1, q.quits)
}
