package listener

import (
	"context"
	"regexp"

	"github.com/timvw/webtrace/internal/trace"
)

// Sink receives test events for the calling worker's open execution.
// *trace.Aggregator implements it.
type Sink interface {
	AppendEvent(ctx context.Context, ev trace.Event) error
}

// ScreenshotSink additionally reserves screenshot files.
type ScreenshotSink interface {
	Sink
	ScreenshotPath(ctx context.Context, seq int64) (abs, rel string, err error)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// fileName turns a test name into something usable as a file name.
func fileName(testName string) string {
	name := unsafeFileChars.ReplaceAllString(testName, "_")
	if name == "" || name == "_" {
		return "session"
	}
	return name
}
