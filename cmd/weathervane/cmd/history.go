package cmd

import (
	"github.com/spf13/cobra"
)

// historyCmd represents the history related commands
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Commands to manage weather histories",
	Long: `Commands to manage the per-day weather history of a location.

Each location's history lives in its own zip archive under the data
directory, one entry per day.`,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
