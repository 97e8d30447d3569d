package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/trace"
	"github.com/timvw/webtrace/internal/webdriver"
)

// ScreenshotCapturer photographs the page right before commands that
// visibly change it and attaches the picture to the worker's execution.
type ScreenshotCapturer struct {
	Base

	sink ScreenshotSink
	log  *slog.Logger

	mu        sync.Mutex
	lastTyped string
}

func NewScreenshotCapturer(sink ScreenshotSink, log *slog.Logger) *ScreenshotCapturer {
	if log == nil {
		log = slog.Default()
	}
	return &ScreenshotCapturer{sink: sink, log: log}
}

func (s *ScreenshotCapturer) BeforeGet(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.capture(ctx, rec, d)
}

func (s *ScreenshotCapturer) BeforeTo(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.capture(ctx, rec, d)
}

func (s *ScreenshotCapturer) BeforeBack(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.capture(ctx, rec, d)
}

func (s *ScreenshotCapturer) BeforeForward(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.capture(ctx, rec, d)
}

func (s *ScreenshotCapturer) BeforeRefresh(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.capture(ctx, rec, d)
}

func (s *ScreenshotCapturer) BeforeClose(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.capture(ctx, rec, d)
}

func (s *ScreenshotCapturer) BeforeClickElement(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.capture(ctx, rec, d)
}

func (s *ScreenshotCapturer) BeforeClear(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.capture(ctx, rec, d)
}

func (s *ScreenshotCapturer) BeforeSubmit(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.capture(ctx, rec, d)
}

// BeforeSendKeysToElement captures once per field: typing into the same
// locator repeatedly produces a single screenshot.
func (s *ScreenshotCapturer) BeforeSendKeysToElement(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.mu.Lock()
	same := rec.Locator == s.lastTyped
	s.lastTyped = rec.Locator
	s.mu.Unlock()
	if !same {
		s.capture(ctx, rec, d)
	}
}

func (s *ScreenshotCapturer) BeforeDismiss(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.capture(ctx, rec, d)
}

func (s *ScreenshotCapturer) BeforeAccept(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.capture(ctx, rec, d)
}

func (s *ScreenshotCapturer) BeforeSendKeysToAlert(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.capture(ctx, rec, d)
}

// BeforeExecuteScript captures only scripts that call click. The match is
// case-sensitive, as DOM methods are.
func (s *ScreenshotCapturer) BeforeExecuteScript(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	if strings.Contains(rec.Param1(), "click") {
		s.capture(ctx, rec, d)
	}
}

func (s *ScreenshotCapturer) capture(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	abs, rel, err := s.sink.ScreenshotPath(ctx, rec.Seq)
	if err != nil {
		if errors.Is(err, trace.ErrNoActiveExecution) || errors.Is(err, trace.ErrRunNotStarted) {
			s.log.DebugContext(ctx, "screenshot skipped", "seq", rec.Seq, "err", err)
			return
		}
		s.log.WarnContext(ctx, "screenshot path", "seq", rec.Seq, "err", err)
		return
	}

	png, err := d.Screenshot(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "screenshot failed", "seq", rec.Seq, "command", rec.Command.Short(), "err", err)
		return
	}
	if err := os.WriteFile(abs, png, 0o644); err != nil {
		s.log.WarnContext(ctx, "screenshot not saved", "path", abs, "err", err)
		return
	}

	err = s.sink.AppendEvent(ctx, trace.Event{
		Type:       trace.EventScreenshot,
		Content:    fmt.Sprintf("before %s", rec.Command.Long()),
		Level:      trace.LevelInfo,
		Time:       rec.Time,
		Command:    rec.Command.Short(),
		Params:     rec.Param1(),
		Locator:    rec.Locator,
		Seq:        rec.Seq,
		Screenshot: rel,
	})
	if err != nil {
		s.log.DebugContext(ctx, "screenshot not attached", "seq", rec.Seq, "err", err)
	}
}
