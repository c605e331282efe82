package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print completed sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, cleanup, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		items := lib.History()
		if len(items) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		for _, item := range items {
			fmt.Printf("%-12s %-28s %-8s %s\n", item.Mode, item.Topic, item.Score, item.Date)
			if verbose && item.Details != nil {
				fmt.Printf("             total %ds", item.Details.TotalTime)
				for i, secs := range item.Details.TimePerQuestion {
					fmt.Printf("  Q%d %ds", i+1, secs)
				}
				fmt.Println()
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolP("verbose", "v", false, "Show per-question timing")
}
