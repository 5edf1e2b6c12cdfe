package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// historyRangesCmd represents the ranges command
var historyRangesCmd = &cobra.Command{
	Use:   "ranges <name or alias>",
	Short: "List the contiguous date ranges stored for a location",
	Long: `List a location's stored dates merged into maximal contiguous ranges.
A gap of more than one day between stored dates starts a new range.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w, err := openWeatherData()
		if err != nil {
			wrapFatalln("open weather data", err)
			return
		}

		ranges, err := w.HistoryDateRanges(context.Background(), args[0])
		if err != nil {
			wrapFatalln("list history date ranges", err)
			return
		}
		for _, r := range ranges {
			fmt.Printf("%s\t%s\n", r, color.HiBlackString("%d days", r.TotalDays()+1))
		}
	},
}

func init() {
	historyCmd.AddCommand(historyRangesCmd)
}
