package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timvw/webtrace/internal/trace"
)

const checkoutScenario = `
name: checkout
pages:
  https://shop.test/: <title>Shop</title><a id="cart" href="/cart">Cart</a>
  https://shop.test/cart: <title>Cart</title><p id="total">12.50</p>
tests:
  - name: cart total
    steps:
      - {do: get, url: "https://shop.test/"}
      - {do: click, id: cart}
      - {do: text, id: total, want: "12.50"}
  - name: wrong title
    steps:
      - {do: get, url: "https://shop.test/"}
      - {do: title, want: Checkout}
`

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	return t.TempDir()
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestRecordShowStats(t *testing.T) {
	registry := isolate(t)
	scenarioPath := filepath.Join(t.TempDir(), "checkout.yaml")
	require.NoError(t, os.WriteFile(scenarioPath, []byte(checkoutScenario), 0o644))

	out, errOut, err := execute(t, "record", "--registry", registry, "--theme", "light", scenarioPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 tests failed")
	assert.Contains(t, out, "cart total")
	assert.Contains(t, out, "wrong title")
	assert.Contains(t, errOut, "run written to")

	runs, err := trace.ListRuns(registry)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	res, err := trace.ReadResult(runs[0])
	require.NoError(t, err)
	require.Len(t, res.Executions, 2)
	failed := res.Executions[1]
	if failed.TestName != "wrong title" {
		failed = res.Executions[0]
	}
	assert.Equal(t, trace.StatusFailed, failed.Status)

	out, _, err = execute(t, "show", "--registry", registry)
	require.NoError(t, err)
	assert.Contains(t, out, "cart total")

	out, _, err = execute(t, "show", "--registry", registry, "--trace", failed.TraceID, runs[0])
	require.NoError(t, err)
	assert.Contains(t, out, "wrong title")
	assert.Contains(t, out, "Checkout")

	_, _, err = execute(t, "show", "--registry", registry, "--trace", "missing", filepath.Dir(runs[0]))
	assert.ErrorContains(t, err, "no execution with trace id missing")
	flagTraceID = ""

	book := filepath.Join(t.TempDir(), "history.xlsx")
	out, _, err = execute(t, "stats", "--registry", registry, "-o", book)
	require.NoError(t, err)
	assert.Contains(t, out, "1 runs, 2 test cases")
	assert.FileExists(t, book)
}

func TestStatsEmptyRegistry(t *testing.T) {
	registry := isolate(t)
	_, _, err := execute(t, "stats", registry)
	assert.ErrorContains(t, err, "no runs in")
}

func TestRecordRejectsUnknownDriver(t *testing.T) {
	registry := isolate(t)
	scenarioPath := filepath.Join(t.TempDir(), "checkout.yaml")
	require.NoError(t, os.WriteFile(scenarioPath, []byte(checkoutScenario), 0o644))

	_, _, err := execute(t, "record", "--registry", registry, "--driver", "webkit", scenarioPath)
	assert.ErrorContains(t, err, `unknown driver "webkit"`)
	flagDriver = "static"
}

func TestWithShutdownCancelsOnSIGTERM(t *testing.T) {
	ctx, stop := withShutdown(context.Background())
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled by SIGTERM")
	}
}
