package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// locationListCmd represents the list command
var locationListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the known locations",
	Long:    `List the locations recorded in the manifest of the data directory`,
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		w, err := openWeatherData()
		if err != nil {
			wrapFatalln("open weather data", err)
			return
		}

		for _, location := range w.Locations() {
			fmt.Printf("%s\t%s\t%s\n",
				location.Name,
				color.HiBlackString(location.Alias),
				color.HiBlackString("%s,%s %s", location.Latitude, location.Longitude, location.TZ))
		}
	},
}

func init() {
	locationCmd.AddCommand(locationListCmd)
}
