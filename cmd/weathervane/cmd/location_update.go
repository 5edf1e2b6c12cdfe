package cmd

import (
	"github.com/spf13/cobra"
)

// locationUpdateCmd represents the update command
var locationUpdateCmd = &cobra.Command{
	Use:   "update <name or alias>",
	Short: "Update a location's alias",
	Long: `Update a location's alias in the manifest.

The location's history archive is renamed to match the new alias.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w, err := openWeatherData()
		if err != nil {
			wrapFatalln("open weather data", err)
			return
		}

		updated, err := w.UpdateLocation(args[0], weatherFlags.location.alias)
		if err != nil {
			wrapFatalln("update location", err)
			return
		}
		if !updated {
			wrapFatalWithCodef(1, "no such location: %s", args[0])
			return
		}
		infoLogger.Println("updated", args[0])
	},
}

func init() {
	locationUpdateCmd.Flags().StringVar(&weatherFlags.location.alias, "alias", "", "New alias for the location")
	err := locationUpdateCmd.MarkFlagRequired("alias")
	if err != nil {
		wrapFatalln("mark required flag", err)
		return
	}
	locationCmd.AddCommand(locationUpdateCmd)
}
