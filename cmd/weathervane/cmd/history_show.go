package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// historyShowCmd represents the show command
var historyShowCmd = &cobra.Command{
	Use:   "show <name or alias> <date>",
	Short: "Print one day's stored record",
	Long:  `Print the raw record stored for a location at a given date (YYYY-MM-DD) to stdout`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		w, err := openWeatherData()
		if err != nil {
			wrapFatalln("open weather data", err)
			return
		}

		day, err := parseDay(args[1])
		if err != nil {
			wrapFatalln("parse date", err)
			return
		}

		payload, err := w.ReadHistory(context.Background(), args[0], day)
		if err != nil {
			wrapFatalln("read history", err)
			return
		}
		_, _ = os.Stdout.Write(payload)
	},
}

func init() {
	historyCmd.AddCommand(historyShowCmd)
}
