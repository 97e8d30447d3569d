package cmd

import (
	"github.com/spf13/cobra"

	"github.com/timvw/webtrace/internal/report"
)

var browseCmd = &cobra.Command{
	Use:   "browse [registry]",
	Short: "Browse recorded runs interactively",
	Long: `Open a terminal UI over the runs of a registry: pick a run, then an
execution, then scroll through its events.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cfg.RegistryRoot()
		if len(args) == 1 {
			root = args[0]
		}
		b := &report.Browser{Root: root, Theme: report.ThemeByName(flagTheme)}
		return b.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
