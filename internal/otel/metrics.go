package otel

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "webtrace"

// Metrics holds the webtrace counters. All are cumulative and safe for
// concurrent use; a nil *Metrics records nothing.
type Metrics struct {
	// Intercepted commands, partitioned by command and phase.
	Commands metric.Int64Counter
	// Listener callbacks that panicked.
	ListenerFailures metric.Int64Counter

	// Finished test case executions, partitioned by status.
	Executions  metric.Int64Counter
	Screenshots metric.Int64Counter
	RunsWritten metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Commands, err = meter.Int64Counter("webtrace.commands",
		metric.WithDescription("Browser commands intercepted, per command and phase"),
		metric.WithUnit("{command}"))
	if err != nil {
		return nil, err
	}

	m.ListenerFailures, err = meter.Int64Counter("webtrace.listener.failures",
		metric.WithDescription("Listener callbacks that panicked and were isolated"))
	if err != nil {
		return nil, err
	}

	m.Executions, err = meter.Int64Counter("webtrace.executions",
		metric.WithDescription("Test case and configuration executions ended, per status"),
		metric.WithUnit("{execution}"))
	if err != nil {
		return nil, err
	}

	m.Screenshots, err = meter.Int64Counter("webtrace.screenshots",
		metric.WithDescription("Screenshots captured and attached to executions"))
	if err != nil {
		return nil, err
	}

	m.RunsWritten, err = meter.Int64Counter("webtrace.runs.persisted",
		metric.WithDescription("Run artifacts written to the registry"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordCommand counts one intercepted command phase.
func (m *Metrics) RecordCommand(ctx context.Context, command, phase string) {
	if m == nil {
		return
	}
	m.Commands.Add(ctx, 1, metric.WithAttributes(
		attribute.String("webtrace.command", command),
		attribute.String("webtrace.phase", phase),
	))
}

// RecordListenerFailure counts a listener that panicked.
func (m *Metrics) RecordListenerFailure(ctx context.Context, listener string) {
	if m == nil {
		return
	}
	m.ListenerFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("webtrace.listener", listener),
	))
}

// RecordExecution counts an ended execution.
func (m *Metrics) RecordExecution(ctx context.Context, status string, configuration bool) {
	if m == nil {
		return
	}
	m.Executions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("webtrace.status", status),
		attribute.String("webtrace.configuration", strconv.FormatBool(configuration)),
	))
}

func (m *Metrics) RecordScreenshot(ctx context.Context) {
	if m == nil {
		return
	}
	m.Screenshots.Add(ctx, 1)
}

func (m *Metrics) RecordRunWritten(ctx context.Context) {
	if m == nil {
		return
	}
	m.RunsWritten.Add(ctx, 1)
}
