package listener

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/trace"
)

func startCase(t *testing.T, name string) (context.Context, *trace.Aggregator, *trace.Execution) {
	t.Helper()
	agg := trace.NewAggregator(trace.Options{Root: t.TempDir(), Version: "test"})
	ctx := trace.NewWorker(context.Background())
	exec, err := agg.OnTestCaseStart(ctx, name)
	require.NoError(t, err)
	return ctx, agg, exec
}

func TestScreenshotBeforePageChange(t *testing.T) {
	ctx, agg, exec := startCase(t, "checkout")
	drv := &stubDriver{png: []byte("\x89PNG")}
	s := NewScreenshotCapturer(agg, nil)

	r := mkRecord(3, event.BeforeAction, event.Get, 0)
	r.Payload = event.Navigation{URL: "https://example.com"}
	s.BeforeGet(ctx, r, drv)

	require.Equal(t, 1, drv.shots)
	evs := exec.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, trace.EventScreenshot, evs[0].Type)
	assert.Equal(t, trace.LevelInfo, evs[0].Level)
	assert.Equal(t, "Screenshots/"+exec.TraceID()+"-00003.png", evs[0].Screenshot)

	data, err := os.ReadFile(filepath.Join(agg.RunDir(), filepath.FromSlash(evs[0].Screenshot)))
	require.NoError(t, err)
	assert.Equal(t, drv.png, data)
}

func TestScreenshotOncePerTypedField(t *testing.T) {
	ctx, agg, exec := startCase(t, "form")
	drv := &stubDriver{png: []byte("img")}
	s := NewScreenshotCapturer(agg, nil)

	for i, loc := range []string{"id=user", "id=user", "id=email"} {
		r := mkRecord(int64(i+1), event.BeforeAction, event.SendKeysToElement, 0)
		r.Locator = loc
		s.BeforeSendKeysToElement(ctx, r, drv)
	}
	assert.Equal(t, 2, drv.shots)
	assert.Len(t, exec.Events(), 2)
}

func TestScreenshotOnlyForClickingScripts(t *testing.T) {
	ctx, agg, _ := startCase(t, "script")
	drv := &stubDriver{png: []byte("img")}
	s := NewScreenshotCapturer(agg, nil)

	plain := mkRecord(1, event.BeforeAction, event.ExecuteScript, 0)
	plain.Payload = event.Script{Source: "return document.title"}
	s.BeforeExecuteScript(ctx, plain, drv)
	assert.Equal(t, 0, drv.shots)

	named := mkRecord(2, event.BeforeAction, event.ExecuteScript, 0)
	named.Payload = event.Script{Source: "window.onClick = null"}
	s.BeforeExecuteScript(ctx, named, drv)
	assert.Equal(t, 0, drv.shots, "match is case-sensitive")

	click := mkRecord(3, event.BeforeAction, event.ExecuteScript, 0)
	click.Payload = event.Script{Source: "arguments[0].click()"}
	s.BeforeExecuteScript(ctx, click, drv)
	assert.Equal(t, 1, drv.shots)
}

func TestScreenshotSkippedWithoutExecution(t *testing.T) {
	agg := trace.NewAggregator(trace.Options{Root: t.TempDir()})
	drv := &stubDriver{png: []byte("img")}
	s := NewScreenshotCapturer(agg, nil)

	s.BeforeRefresh(context.Background(), mkRecord(1, event.BeforeAction, event.Refresh, 0), drv)
	assert.Equal(t, 0, drv.shots)
}

func TestScreenshotIgnoresGathers(t *testing.T) {
	ctx, agg, _ := startCase(t, "gather")
	drv := &stubDriver{png: []byte("img")}
	s := NewScreenshotCapturer(agg, nil)

	feed(s, mkRecord(1, event.BeforeGather, event.GetTitle, 0))
	s.BeforeGetTitle(ctx, mkRecord(1, event.BeforeGather, event.GetTitle, 0), drv)
	assert.Equal(t, 0, drv.shots)
}
