// Package lifecycle lets test runners outside this process drive a trace
// aggregator. Each datagram on a unix socket carries one JSON Message that
// maps onto one of the aggregator's lifecycle calls.
package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/timvw/webtrace/internal/trace"
)

const DefaultMaxPayloadBytes = 8 * 1024

type Collector struct {
	agg  *trace.Aggregator
	path string
	log  *slog.Logger

	MaxPayloadBytes int

	// OnArtifact, when set, is called with the path of every run artifact
	// written in response to run_end.
	OnArtifact func(path string)

	mu     sync.Mutex
	conn   *net.UnixConn
	closed bool
	runID  string
	done   chan struct{}
}

func NewCollector(agg *trace.Aggregator, socketPath string, log *slog.Logger) *Collector {
	if log == nil {
		log = slog.Default()
	}
	return &Collector{
		agg:             agg,
		path:            socketPath,
		log:             log,
		MaxPayloadBytes: DefaultMaxPayloadBytes,
	}
}

func (c *Collector) SocketPath() string {
	return c.path
}

// Start binds the socket and processes messages in the background until ctx
// is cancelled. Messages are applied in arrival order.
func (c *Collector) Start(ctx context.Context) error {
	if c.agg == nil {
		return fmt.Errorf("aggregator is required")
	}
	if c.path == "" {
		return fmt.Errorf("socket path is required")
	}
	if c.MaxPayloadBytes <= 0 {
		c.MaxPayloadBytes = DefaultMaxPayloadBytes
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create socket dir: %w", err)
	}
	if err := os.Chmod(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("chmod socket dir: %w", err)
	}
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale socket: %w", err)
	}

	addr, err := net.ResolveUnixAddr("unixgram", c.path)
	if err != nil {
		return fmt.Errorf("resolve unix addr: %w", err)
	}
	conn, err := net.ListenUnixgram("unixgram", addr)
	if err != nil {
		return fmt.Errorf("listen unixgram: %w", err)
	}
	if err := os.Chmod(c.path, 0o600); err != nil {
		_ = conn.Close()
		return fmt.Errorf("chmod socket: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.closed = false
	c.done = make(chan struct{})
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.close()
	}()

	go c.readLoop(context.WithoutCancel(ctx), conn)

	c.log.Info("lifecycle collector listening", "socket", c.path)
	return nil
}

// Done is closed once the read loop has exited.
func (c *Collector) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

func (c *Collector) readLoop(ctx context.Context, conn *net.UnixConn) {
	defer close(c.done)
	buf := make([]byte, c.MaxPayloadBytes)
	for {
		n, _, err := conn.ReadFromUnix(buf)
		if err != nil {
			if c.isClosed() {
				return
			}
			c.log.Debug("read datagram", "err", err)
			continue
		}

		if n <= 0 || n >= c.MaxPayloadBytes {
			c.log.Warn("dropping datagram", "bytes", n, "limit", c.MaxPayloadBytes)
			continue
		}

		var m Message
		if err := json.Unmarshal(buf[:n], &m); err != nil {
			c.log.Warn("dropping malformed message", "err", err)
			continue
		}
		c.handle(ctx, m)
	}
}

func (c *Collector) handle(ctx context.Context, m Message) {
	if m.Op == OpRunStart {
		c.runID = uuid.NewString()
	}
	log := c.log.With("op", string(m.Op), "worker", m.Worker, "run_id", c.runID)

	artifact, err := Apply(ctx, c.agg, m)
	if err != nil {
		log.Warn("lifecycle call failed", "err", err)
		return
	}
	log.Debug("lifecycle call applied", "name", m.Name)
	if artifact != "" {
		log.Info("run persisted", "path", artifact)
		if c.OnArtifact != nil {
			c.OnArtifact(artifact)
		}
		c.runID = ""
	}
}

func (c *Collector) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Collector) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	_ = os.Remove(c.path)
}
