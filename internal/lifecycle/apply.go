package lifecycle

import (
	"context"
	"errors"

	"github.com/timvw/webtrace/internal/trace"
)

// Apply performs m against agg on behalf of m's worker. For run_end it
// returns the path of the written artifact.
func Apply(ctx context.Context, agg *trace.Aggregator, m Message) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	if m.Worker != "" {
		ctx = trace.WithWorker(ctx, m.Worker)
	}

	switch m.Op {
	case OpRunStart:
		return "", agg.OnRunStart(ctx)
	case OpConfigurationStart:
		_, err := agg.OnConfigurationStart(ctx, m.Name)
		return "", err
	case OpTestCaseStart:
		exec, err := agg.OnTestCaseStart(ctx, m.Name)
		if err != nil {
			return "", err
		}
		if m.Browser != "" || m.BrowserVersion != "" || m.Resolution != "" {
			exec.SetBrowser(m.Browser, m.BrowserVersion, m.Resolution)
		}
		return "", nil
	case OpEvent:
		return "", agg.OnTestCaseEvent(ctx, m.Content, m.level())
	case OpException:
		return "", agg.OnTestCaseException(ctx, errors.New(m.Error))
	case OpStatus:
		st, _ := trace.ParseStatus(m.Status)
		return "", agg.OnTestCaseStatus(ctx, st)
	case OpConfigurationEnd:
		return "", agg.OnConfigurationEnd(ctx)
	case OpTestCaseEnd:
		return "", agg.OnTestCaseEnd(ctx)
	case OpRunEnd:
		return agg.OnRunEnd(ctx)
	}
	return "", nil
}
