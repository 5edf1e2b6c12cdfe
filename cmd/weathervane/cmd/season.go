package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/weathervane/weathervane/pkg/dates"
	"github.com/weathervane/weathervane/pkg/model"
	"github.com/weathervane/weathervane/pkg/season"
)

// seasonCmd represents the season related commands
var seasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Commands to compare histories across seasons",
}

// seasonAlignCmd represents the align command
var seasonAlignCmd = &cobra.Command{
	Use:   "align <alias=from:to> ...",
	Short: "Align date ranges on a common season timeline",
	Long: `Align one date range per location onto a common season timeline.

Each argument names a location and one of its date ranges, as
alias=YYYY-MM-DD:YYYY-MM-DD. The same location may be given several
times with ranges from different years. The ranges must overlap in a
single contiguous stretch of months once years are factored out;
disjoint inputs are an error, not a guess.`,
	Example: `% weathervane season align \
    fairbanks_ak=2019-10-01:2020-04-30 \
    fairbanks_ak=2020-10-01:2021-04-30 \
    medford_or=2020-10-01:2021-04-30`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w, err := openWeatherData()
		if err != nil {
			wrapFatalln("open weather data", err)
			return
		}

		pairs := make([]season.LocationRange, 0, len(args))
		for _, arg := range args {
			pair, err := parseLocationRange(w, arg)
			if err != nil {
				wrapFatalln("parse "+arg, err)
				return
			}
			pairs = append(pairs, pair)
		}

		alignment, err := season.Align(pairs)
		if err != nil {
			wrapFatalln("align seasons", err)
			return
		}
		printAlignment(alignment)
	},
}

func parseLocationRange(w weatherLocations, arg string) (season.LocationRange, error) {
	var zero season.LocationRange

	key, rangeSpec, found := strings.Cut(arg, "=")
	if !found {
		return zero, fmt.Errorf("expected alias=from:to, got %q", arg)
	}
	location, ok := w.GetLocation(key)
	if !ok {
		return zero, fmt.Errorf("no such location: %s", key)
	}

	fromSpec, toSpec, _ := strings.Cut(rangeSpec, ":")
	from, err := parseDay(fromSpec)
	if err != nil {
		return zero, err
	}
	to := from
	if toSpec != "" {
		if to, err = parseDay(toSpec); err != nil {
			return zero, err
		}
	}
	r, err := dates.New(from, to)
	if err != nil {
		return zero, err
	}
	return season.LocationRange{Location: location, Range: r}, nil
}

func printAlignment(alignment *season.Alignment) {
	header := "location\trange"
	for _, month := range alignment.Months() {
		header += "\t" + month.String()[:3]
	}
	fmt.Println(header)

	for _, mapping := range alignment.Mappings {
		row := fmt.Sprintf("%s\t%s", mapping.Location.Name, color.HiBlackString("%s", mapping.Range))
		for slot := alignment.Start; slot <= alignment.End; slot++ {
			mark := ""
			if mapping.Slots[slot] {
				mark = "X"
			}
			row += "\t" + mark
		}
		fmt.Println(row)
	}

	if start, end, ok := alignment.Common(); ok && (start != alignment.Start || end != alignment.End) {
		fmt.Printf("months shared by all: %s..%s\n",
			season.SlotMonth(start), season.SlotMonth(end))
	}
}

// weatherLocations is the location lookup needed to parse alignment args.
type weatherLocations interface {
	GetLocation(nameOrAlias string) (model.Location, bool)
}

func init() {
	rootCmd.AddCommand(seasonCmd)
	seasonCmd.AddCommand(seasonAlignCmd)
}
