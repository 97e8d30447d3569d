package lifecycle

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/timvw/webtrace/internal/trace"
)

func newAggregator(t *testing.T) *trace.Aggregator {
	t.Helper()
	return trace.NewAggregator(trace.Options{Root: t.TempDir()})
}

func startCollector(t *testing.T, agg *trace.Aggregator) (*Collector, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	socketPath := shortSocketPath(t)
	c := NewCollector(agg, socketPath, nil)
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start collector: %v", err)
	}
	return c, socketPath
}

func TestCollector_StartBindsSocket(t *testing.T) {
	_, socketPath := startCollector(t, newAggregator(t))
	if _, err := os.Stat(socketPath); err != nil {
		t.Fatalf("expected socket at %s: %v", socketPath, err)
	}
}

func TestCollector_TightensExistingSocketDir(t *testing.T) {
	dir, err := os.MkdirTemp("", "wt-dir")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	if err := os.Chmod(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := NewCollector(newAggregator(t), filepath.Join(dir, "l.sock"), nil)
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start collector: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o700 {
		t.Errorf("socket dir mode: got %o, want 700", got)
	}
}

func TestCollector_RequiresAggregator(t *testing.T) {
	c := NewCollector(nil, shortSocketPath(t), nil)
	if err := c.Start(context.Background()); err == nil {
		t.Fatal("expected error without aggregator")
	}
}

func TestCollector_DrivesFullLifecycle(t *testing.T) {
	agg := newAggregator(t)
	c, socketPath := startCollector(t, agg)

	var (
		mu        sync.Mutex
		artifacts []string
	)
	c.OnArtifact = func(p string) {
		mu.Lock()
		artifacts = append(artifacts, p)
		mu.Unlock()
	}

	msgs := []Message{
		{Op: OpRunStart},
		{Op: OpConfigurationStart, Worker: "w1", Name: "setUp"},
		{Op: OpConfigurationEnd, Worker: "w1"},
		{Op: OpTestCaseStart, Worker: "w1", Name: "checkout", Browser: "chrome", BrowserVersion: "126"},
		{Op: OpEvent, Worker: "w1", Content: "cart has 2 items"},
		{Op: OpException, Worker: "w1", Error: "price mismatch"},
		{Op: OpStatus, Worker: "w1", Status: "passed"},
		{Op: OpTestCaseEnd, Worker: "w1"},
		{Op: OpRunEnd},
	}
	for _, m := range msgs {
		if err := Send(socketPath, m); err != nil {
			t.Fatalf("send %s: %v", m.Op, err)
		}
	}

	waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(artifacts) == 1
	})

	res, err := trace.ReadResult(artifacts[0])
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if len(res.Executions) != 2 {
		t.Fatalf("expected 2 executions, got %d", len(res.Executions))
	}
	setup, test := res.Executions[0], res.Executions[1]
	if !setup.IsConfiguration || setup.Status != trace.StatusPassed {
		t.Errorf("setup = %+v", setup)
	}
	if test.TestName != "checkout" || test.Browser != "chrome" || test.BrowserVersion != "126" {
		t.Errorf("test = %+v", test)
	}
	// The exception outranks the later PASSED status.
	if test.Status != trace.StatusFailed {
		t.Errorf("status = %s, want FAILED", test.Status)
	}
	if len(test.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(test.Events))
	}
	if test.Events[0].Level != trace.LevelInfo || test.Events[1].Type != trace.EventException {
		t.Errorf("events = %+v", test.Events)
	}
	if test.EndTime == nil {
		t.Error("test case was not ended")
	}
}

func TestCollector_IgnoresMalformedMessage(t *testing.T) {
	agg := newAggregator(t)
	_, socketPath := startCollector(t, agg)

	if err := sendDatagram(socketPath, []byte(`not-json`)); err != nil {
		t.Fatalf("send datagram: %v", err)
	}
	if err := sendDatagram(socketPath, []byte(`{"op":"test_case_start","ts":"2026-02-27T12:00:00Z"}`)); err != nil {
		t.Fatalf("send datagram: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	if got := len(agg.Executions()); got != 0 {
		t.Fatalf("expected 0 executions for bad payloads, got %d", got)
	}

	// The collector keeps serving after bad input.
	if err := Send(socketPath, Message{Op: OpTestCaseStart, Name: "after"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	waitFor(t, time.Second, func() bool { return len(agg.Executions()) == 1 })
}

func TestCollector_RejectsOversizedPayload(t *testing.T) {
	agg := newAggregator(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	socketPath := shortSocketPath(t)
	c := NewCollector(agg, socketPath, nil)
	c.MaxPayloadBytes = 64
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start collector: %v", err)
	}

	payload := `{"op":"test_case_start","name":"` + strings.Repeat("a", 128) + `","ts":"2026-02-27T12:00:00Z"}`
	if err := sendDatagram(socketPath, []byte(payload)); err != nil {
		t.Fatalf("send datagram: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	if got := len(agg.Executions()); got != 0 {
		t.Fatalf("expected 0 executions for oversized payload, got %d", got)
	}
}

func TestCollector_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	socketPath := shortSocketPath(t)
	c := NewCollector(newAggregator(t), socketPath, nil)
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start collector: %v", err)
	}

	cancel()
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("read loop did not exit")
	}
	if _, err := os.Stat(socketPath); !os.IsNotExist(err) {
		t.Fatalf("expected socket to be removed, stat err = %v", err)
	}
}

func TestSend_NoCollector(t *testing.T) {
	if err := Send(shortSocketPath(t), Message{Op: OpRunStart}); err == nil {
		t.Fatal("expected error when no collector is listening")
	}
}

func sendDatagram(socketPath string, payload []byte) error {
	addr, err := net.ResolveUnixAddr("unixgram", socketPath)
	if err != nil {
		return err
	}
	conn, err := net.DialUnix("unixgram", nil, addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Write(payload)
	return err
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}

// shortSocketPath keeps socket paths under the sun_path length limit.
func shortSocketPath(t *testing.T) string {
	t.Helper()
	base := filepath.Join(os.TempDir(), "wt-life")
	if err := os.MkdirAll(base, 0o700); err != nil {
		t.Fatalf("mkdir temp base: %v", err)
	}
	p := filepath.Join(base, fmt.Sprintf("%d-%d.sock", time.Now().UnixNano(), os.Getpid()))
	t.Cleanup(func() {
		_ = os.Remove(p)
	})
	return p
}
