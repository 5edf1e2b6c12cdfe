package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// historyDatesCmd represents the dates command
var historyDatesCmd = &cobra.Command{
	Use:   "dates <name or alias>",
	Short: "List the dates stored for a location",
	Long: `List the dates stored in a location's history archive, in ascending
order, optionally narrowed to [--from, --to]`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w, err := openWeatherData()
		if err != nil {
			wrapFatalln("open weather data", err)
			return
		}

		from, to := time.Time{}, time.Time{}
		if weatherFlags.history.from != "" {
			if from, err = parseDay(weatherFlags.history.from); err != nil {
				wrapFatalln("parse --from", err)
				return
			}
		}
		if weatherFlags.history.to != "" {
			if to, err = parseDay(weatherFlags.history.to); err != nil {
				wrapFatalln("parse --to", err)
				return
			}
		}

		days, err := w.HistoryDates(context.Background(), args[0], from, to)
		if err != nil {
			wrapFatalln("list history dates", err)
			return
		}
		for _, day := range days {
			fmt.Println(day.Format(dayFormat))
		}
	},
}

func init() {
	addFromToFlags(historyDatesCmd)
	historyCmd.AddCommand(historyDatesCmd)
}
