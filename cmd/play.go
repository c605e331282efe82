package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a study session",
	Long:  "Launches the interactive TUI. Same as running studium with no arguments.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}
