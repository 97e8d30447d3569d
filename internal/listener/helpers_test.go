package listener

import (
	"context"
	"time"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/webdriver"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func mkRecord(seq int64, phase event.Phase, cmd event.Command, at time.Duration) *event.Record {
	return &event.Record{Seq: seq, Phase: phase, Command: cmd, Time: t0.Add(at)}
}

// stubDriver answers the two commands listeners issue themselves.
type stubDriver struct {
	webdriver.Driver

	png     []byte
	script  func(args ...any) (any, error)
	shots   int
	scripts int
}

func (s *stubDriver) Screenshot(context.Context) ([]byte, error) {
	s.shots++
	return s.png, nil
}

func (s *stubDriver) ExecuteScript(_ context.Context, _ string, args ...any) (any, error) {
	s.scripts++
	if s.script == nil {
		return nil, webdriver.ErrUnsupported
	}
	return s.script(args...)
}

type stubElement struct {
	webdriver.Element
	loc string
}

func (e stubElement) ID() string      { return "stub" }
func (e stubElement) Locator() string { return e.loc }
