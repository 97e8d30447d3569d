package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/webtrace/internal/lifecycle"
)

var (
	flagEmitWorker  string
	flagEmitName    string
	flagEmitStatus  string
	flagEmitContent string
	flagEmitLevel   string
	flagEmitError   string
	flagEmitBrowser string
)

var emitCmd = &cobra.Command{
	Use:   "emit <op>",
	Short: "Send one lifecycle message to a running collector",
	Long: `Send a lifecycle message to "webtrace collect". op is one of
run_start, configuration_start, test_case_start, event, exception, status,
configuration_end, test_case_end, run_end.`,
	Example: `  webtrace emit run_start
  webtrace emit test_case_start --worker w1 --name login
  webtrace emit event --worker w1 --content "cart has 2 items"
  webtrace emit status --worker w1 --status failed
  webtrace emit test_case_end --worker w1
  webtrace emit run_end`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m := lifecycle.Message{
			Op:      lifecycle.Op(args[0]),
			Worker:  flagEmitWorker,
			Name:    flagEmitName,
			Status:  flagEmitStatus,
			Content: flagEmitContent,
			Level:   flagEmitLevel,
			Error:   flagEmitError,
			Browser: flagEmitBrowser,
		}
		if err := lifecycle.Send(socketPath(), m); err != nil {
			return fmt.Errorf("emit %s: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	emitCmd.Flags().StringVar(&flagSocket, "socket", "", "unix datagram socket path of the collector")
	emitCmd.Flags().StringVar(&flagEmitWorker, "worker", "", "worker identity (default: main)")
	emitCmd.Flags().StringVar(&flagEmitName, "name", "", "test or configuration name")
	emitCmd.Flags().StringVar(&flagEmitStatus, "status", "", "passed, skipped or failed")
	emitCmd.Flags().StringVar(&flagEmitContent, "content", "", "event text")
	emitCmd.Flags().StringVar(&flagEmitLevel, "level", "", "event level: SEVERE, WARNING, INFO, FINE")
	emitCmd.Flags().StringVar(&flagEmitError, "error", "", "exception message")
	emitCmd.Flags().StringVar(&flagEmitBrowser, "browser", "", "browser name for test_case_start")
	rootCmd.AddCommand(emitCmd)
}
