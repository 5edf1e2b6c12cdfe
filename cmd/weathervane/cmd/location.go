package cmd

import (
	"github.com/spf13/cobra"
)

// locationCmd represents the location related commands
var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Commands to manage locations",
	Long: `Commands to manage the locations known to the data directory.

A location pairs a display name with a short alias. The alias names the
location's history archive and every entry inside it.`,
	Aliases: []string{"locations"},
}

func init() {
	rootCmd.AddCommand(locationCmd)
}
