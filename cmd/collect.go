package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/timvw/webtrace/internal/lifecycle"
)

var flagSocket string

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Record runs driven by an external test runner",
	Long: `Listen on a unix datagram socket for lifecycle messages (one JSON
object per datagram) and apply them to a trace aggregator. Every run_end
message writes the run to the registry.

Test runners in other processes or languages send messages like:

  {"op":"test_case_start","worker":"w1","name":"login","ts":"2026-03-01T10:00:00Z"}

See "webtrace emit" for sending them from a shell.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := withShutdown(cmd.Context())
		defer stop()

		agg, flush := newAggregator(ctx)
		defer flush()

		c := lifecycle.NewCollector(agg, socketPath(), slog.Default())
		c.OnArtifact = func(path string) {
			fmt.Fprintf(cmd.OutOrStdout(), "run written to %s\n", path)
		}
		if err := c.Start(ctx); err != nil {
			return fmt.Errorf("lifecycle collector: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "lifecycle collector: listening on %s\n", c.SocketPath())

		<-c.Done()
		if n := len(agg.Executions()); n > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d executions of an unfinished run were not written\n", n)
		}
		return nil
	},
}

func init() {
	collectCmd.Flags().StringVar(&flagSocket, "socket", "", "unix datagram socket path (default: $XDG_RUNTIME_DIR/webtrace/lifecycle.sock)")
	rootCmd.AddCommand(collectCmd)
}

func socketPath() string {
	switch {
	case flagSocket != "":
		return flagSocket
	case cfg.Socket != "":
		return cfg.Socket
	}
	return lifecycle.DefaultSocketPath()
}
