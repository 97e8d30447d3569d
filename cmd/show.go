package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/timvw/webtrace/internal/report"
	"github.com/timvw/webtrace/internal/trace"
)

var (
	flagTraceID string
	flagJSON    bool
)

var showCmd = &cobra.Command{
	Use:   "show [test-result.json | run dir]",
	Short: "Print a recorded run",
	Long: `Print the executions of a run, or the events of one execution with
--trace. Without an argument the newest run in the registry is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveArtifact(args)
		if err != nil {
			return err
		}
		res, err := trace.ReadResult(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		theme := report.ThemeByName(flagTheme)
		if flagTraceID == "" {
			if flagJSON {
				return trace.EncodeResult(out, res)
			}
			return report.Summary(out, res, theme)
		}

		rec, ok := res.Find(flagTraceID)
		if !ok {
			return fmt.Errorf("no execution with trace id %s in %s", flagTraceID, path)
		}
		if flagJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		}
		return report.Execution(out, rec, theme)
	},
}

func init() {
	showCmd.Flags().StringVar(&flagTraceID, "trace", "", "show the events of the execution with this trace id")
	showCmd.Flags().BoolVar(&flagJSON, "json", false, "print JSON instead of text")
	rootCmd.AddCommand(showCmd)
}

// resolveArtifact accepts an artifact path, a run directory, or nothing for
// the newest run in the registry.
func resolveArtifact(args []string) (string, error) {
	if len(args) == 0 {
		runs, err := trace.ListRuns(cfg.RegistryRoot())
		if err != nil {
			return "", err
		}
		if len(runs) == 0 {
			return "", fmt.Errorf("no runs in %s", cfg.RegistryRoot())
		}
		return runs[len(runs)-1], nil
	}
	info, err := os.Stat(args[0])
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return filepath.Join(args[0], trace.ArtifactName), nil
	}
	return args[0], nil
}
