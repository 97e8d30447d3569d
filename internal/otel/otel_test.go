package otel

import (
	"context"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{"empty", "", map[string]string{}},
		{"single", "Authorization=Basic abc", map[string]string{"Authorization": "Basic abc"}},
		{"multiple with spaces", " a=1 , b = 2 ", map[string]string{"a": "1", "b": "2"}},
		{"value with equals", "k=v=w", map[string]string{"k": "v=w"}},
		{"missing key dropped", "=x,y=1", map[string]string{"y": "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseHeaders(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("header %q: got %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	tel, err := Init(context.Background(), OTELConfig{})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if tel.Enabled() {
		t.Error("expected telemetry to be disabled without endpoint")
	}
	if tel.Tracer == nil || tel.Metrics == nil {
		t.Fatal("tracer and metrics must be usable without an endpoint")
	}
	tel.Metrics.RecordCommand(context.Background(), "get", "BeforeAction")
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordCommand(ctx, "click", "AfterAction")
	m.RecordListenerFailure(ctx, "x")
	m.RecordExecution(ctx, "PASSED", false)
	m.RecordScreenshot(ctx)
	m.RecordRunWritten(ctx)
}

func TestParseEndpoint(t *testing.T) {
	ep, err := parseEndpoint(OTELConfig{Endpoint: "http://collector:4318/otel/", Headers: "k=v"})
	if err != nil {
		t.Fatalf("parseEndpoint: %v", err)
	}
	if ep.host != "collector:4318" || ep.path != "/otel" || !ep.insecure || ep.headers["k"] != "v" {
		t.Errorf("unexpected endpoint %+v", ep)
	}

	ep, err = parseEndpoint(OTELConfig{Endpoint: "https://otlp.example.com"})
	if err != nil {
		t.Fatalf("parseEndpoint: %v", err)
	}
	if ep.insecure || ep.path != "" {
		t.Errorf("https endpoint: %+v", ep)
	}

	if _, err := parseEndpoint(OTELConfig{Endpoint: "collector:4318"}); err == nil {
		t.Error("expected error for endpoint without scheme")
	}
}
