package cmd

import (
	"studentdb/internal/tui"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive menu (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func runTUI() error {
	return withSession(func(s *session) error {
		return tui.Run(tui.Config{Manager: s.mgr})
	})
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
