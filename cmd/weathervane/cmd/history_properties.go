package cmd

import (
	"context"
	"fmt"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// historyPropertiesCmd represents the properties command
var historyPropertiesCmd = &cobra.Command{
	Use:   "properties [name or alias]",
	Short: "Show archive properties",
	Long: `Show entry counts and sizes of history archives.

Without an argument, properties of every known location are listed.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w, err := openWeatherData()
		if err != nil {
			wrapFatalln("open weather data", err)
			return
		}
		ctx := context.Background()

		if len(args) == 1 {
			location, ok := w.GetLocation(args[0])
			if !ok {
				wrapFatalWithCodef(1, "no such location: %s", args[0])
				return
			}
			props, err := w.HistoryProperties(ctx, args[0])
			if err != nil {
				wrapFatalln("archive properties", err)
				return
			}
			printProperties(location.Name, props.Entries, props.EntriesSize, props.Size)
			return
		}

		all, err := w.AllHistoryProperties(ctx)
		if err != nil {
			wrapFatalln("archive properties", err)
			return
		}
		for _, lp := range all {
			printProperties(lp.Location.Name, lp.Properties.Entries, lp.Properties.EntriesSize, lp.Properties.Size)
		}
	},
}

func printProperties(name string, entries, entriesSize, archiveSize int64) {
	fmt.Printf("%s\t%d entries\t%s\t%s\n",
		name,
		entries,
		units.HumanSize(float64(entriesSize)),
		color.HiBlackString("%s on disk", units.HumanSize(float64(archiveSize))))
}

func init() {
	historyCmd.AddCommand(historyPropertiesCmd)
}
