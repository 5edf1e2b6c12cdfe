package cmd

import (
	"github.com/spf13/cobra"

	"github.com/weathervane/weathervane/pkg/model"
)

// locationAddCmd represents the add command
var locationAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a location",
	Long:  `Add a location to the manifest of the data directory`,
	Example: `% weathervane location add --name "Fairbanks, AK" --alias fairbanks_ak \
    --longitude=-147.7164 --latitude=64.8378 --tz America/Anchorage`,
	Run: func(cmd *cobra.Command, args []string) {
		w, err := openWeatherData()
		if err != nil {
			wrapFatalln("open weather data", err)
			return
		}

		err = w.AddLocation(model.Location{
			Name:      weatherFlags.location.name,
			Alias:     weatherFlags.location.alias,
			Longitude: weatherFlags.location.longitude,
			Latitude:  weatherFlags.location.latitude,
			TZ:        weatherFlags.location.tz,
		})
		if err != nil {
			wrapFatalln("add location", err)
			return
		}
		infoLogger.Println("added", weatherFlags.location.name)
	},
}

func init() {
	addLocationFlags(locationAddCmd)
	for _, flag := range []string{"name", "alias", "longitude", "latitude", "tz"} {
		err := locationAddCmd.MarkFlagRequired(flag)
		if err != nil {
			wrapFatalln("mark required flag", err)
			return
		}
	}
	locationCmd.AddCommand(locationAddCmd)
}
