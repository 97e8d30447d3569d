package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/timvw/webtrace/internal/stats"
)

var (
	flagStatsOutput   string
	flagStatsParallel int
)

var statsCmd = &cobra.Command{
	Use:   "stats [registry]",
	Short: "Summarize run history into a spreadsheet",
	Long: `Read every run of a registry and write an xlsx workbook with the
duration and status of each test case per run, the average duration of its
passed runs and its pass rate.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cfg.RegistryRoot()
		if len(args) == 1 {
			root = args[0]
		}
		runs, err := stats.Load(cmd.Context(), root, flagStatsParallel)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			return fmt.Errorf("no runs in %s", root)
		}

		out := flagStatsOutput
		if out == "" {
			out = filepath.Join(root, "stats.xlsx")
		}
		summary := stats.Summarize(runs)
		if err := stats.WriteWorkbook(out, summary); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d runs, %d test cases -> %s\n", len(runs), len(summary.Rows), out)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&flagStatsOutput, "output", "o", "", "workbook path (default: <registry>/stats.xlsx)")
	statsCmd.Flags().IntVar(&flagStatsParallel, "parallel", 8, "artifacts read concurrently")
	rootCmd.AddCommand(statsCmd)
}
