package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/weathervane/weathervane/pkg/core"
	"github.com/weathervane/weathervane/pkg/dates"
	"github.com/weathervane/weathervane/pkg/dlogger"
	"github.com/weathervane/weathervane/pkg/model"
)

type flagsT struct {
	root struct {
		dataDir  string
		logLevel string
	}
	location struct {
		name      string
		alias     string
		longitude string
		latitude  string
		tz        string
	}
	history struct {
		from          string
		to            string
		ext           string
		source        string
		stopOnMissing bool
	}
}

var weatherFlags flagsT

const dayFormat = "2006-01-02"

func addDataDirFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&weatherFlags.root.dataDir, "data-dir", "",
		"Directory holding the location manifest and history archives")
}

func addLogLevelFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&weatherFlags.root.logLevel, "loglevel", "",
		"The logging level, one of: info, debug, none")
}

func addLocationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&weatherFlags.location.name, "name", "", "Display name of the location, e.g. \"Fairbanks, AK\"")
	cmd.Flags().StringVar(&weatherFlags.location.alias, "alias", "", "Short alias used in archive and entry names")
	cmd.Flags().StringVar(&weatherFlags.location.longitude, "longitude", "", "Longitude of the location")
	cmd.Flags().StringVar(&weatherFlags.location.latitude, "latitude", "", "Latitude of the location")
	cmd.Flags().StringVar(&weatherFlags.location.tz, "tz", "", "IANA time zone of the location")
}

func addFromToFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&weatherFlags.history.from, "from", "", "First date of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&weatherFlags.history.to, "to", "", "Last date of the range (YYYY-MM-DD)")
}

func addExtFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&weatherFlags.history.ext, "ext", model.DefaultHistoryExt,
		"Extension of the stored history entries")
}

func parseDay(value string) (time.Time, error) {
	return time.ParseInLocation(dayFormat, value, time.UTC)
}

// parseDayRange turns the --from/--to flags into a validated range.
func parseDayRange() (dates.DateRange, error) {
	var zero dates.DateRange
	from, err := parseDay(weatherFlags.history.from)
	if err != nil {
		return zero, err
	}
	to := time.Time{}
	if weatherFlags.history.to != "" {
		if to, err = parseDay(weatherFlags.history.to); err != nil {
			return zero, err
		}
	}
	return dates.New(from, to)
}

func openWeatherData() (*core.WeatherData, error) {
	logger, err := dlogger.GetLogger(weatherFlags.root.logLevel)
	if err != nil {
		return nil, err
	}
	return core.New(weatherFlags.root.dataDir,
		core.WithLogger(logger),
		core.WithHistoryExt(weatherFlags.history.ext),
	)
}
