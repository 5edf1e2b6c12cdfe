package cmd

import (
	"github.com/spf13/cobra"
)

// locationRemoveCmd represents the remove command
var locationRemoveCmd = &cobra.Command{
	Use:     "remove <name or alias>",
	Short:   "Remove a location",
	Long:    `Remove a location from the manifest, along with its history archive`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w, err := openWeatherData()
		if err != nil {
			wrapFatalln("open weather data", err)
			return
		}

		removed, err := w.RemoveLocation(args[0])
		if err != nil {
			wrapFatalln("remove location", err)
			return
		}
		if !removed {
			wrapFatalWithCodef(1, "no such location: %s", args[0])
			return
		}
		infoLogger.Println("removed", args[0])
	},
}

func init() {
	locationCmd.AddCommand(locationRemoveCmd)
}
