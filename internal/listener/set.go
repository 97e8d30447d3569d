package listener

import (
	"errors"
	"io"
	"log/slog"
)

// SetOptions selects the built-in listeners for one browser session.
type SetOptions struct {
	// Sink receives execution events; usually the trace aggregator.
	Sink ScreenshotSink
	// TestName names the reproduction script, shadow dictionary and locator
	// list files.
	TestName string
	// Dir receives those files. Empty keeps them in memory.
	Dir string

	Screenshots bool
	ShadowPaths bool
	Performance bool
	Locators    bool

	// Diagnostics receives timer and shadow path output (stderr when nil).
	Diagnostics io.Writer
	Logger      *slog.Logger
}

// Set is the ordered listener list of one session, with direct access to
// the listeners callers commonly inspect.
type Set struct {
	Listeners []Listener

	Log      *FullLogger
	Steps    *StepsSummarizer
	Locators *LocatorLogger
}

// NewSet builds the default listener order: full logger first, then the
// screenshot capturer, then the summarizers and diagnostics. Disabled
// listeners are left out rather than registered inert.
func NewSet(o SetOptions) *Set {
	s := &Set{Log: NewFullLogger(o.Sink, o.Logger)}
	s.Listeners = append(s.Listeners, s.Log)

	if o.Screenshots && o.Sink != nil {
		s.Listeners = append(s.Listeners, NewScreenshotCapturer(o.Sink, o.Logger))
	}

	var stepsPath, dictPath, locPath string
	if o.Dir != "" {
		stepsPath = StepsPath(o.Dir, o.TestName)
		dictPath = ShadowDictPath(o.Dir, o.TestName)
		locPath = LocatorsPath(o.Dir, o.TestName)
	}
	s.Steps = NewStepsSummarizer(stepsPath)
	s.Listeners = append(s.Listeners, s.Steps)

	if o.Performance {
		s.Listeners = append(s.Listeners, NewPerformanceTimer(o.Diagnostics))
	}
	if o.ShadowPaths {
		s.Listeners = append(s.Listeners, NewShadowPathExtractor(o.Diagnostics, dictPath, o.Logger))
	}
	if o.Locators {
		s.Locators = NewLocatorLogger(locPath)
		s.Listeners = append(s.Listeners, s.Locators)
	}
	return s
}

// Close closes every listener that holds output, returning all errors.
func Close(ls []Listener) error {
	var errs []error
	for _, l := range ls {
		if c, ok := l.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
