package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/weathervane/weathervane/pkg/core"
	"github.com/weathervane/weathervane/pkg/model"
)

// historyImportCmd represents the import command
var historyImportCmd = &cobra.Command{
	Use:   "import <name or alias>",
	Short: "Import history records from a directory",
	Long: `Import per-day records from a source directory into a location's archive.

The source directory is expected to hold one file per day, laid out like
the archive itself: {alias}/{alias}-{YYYYMMDD}.{ext}. Days already present
in the archive are skipped. Each imported day is committed in its own
transaction, so a failure partway through keeps everything imported so far.`,
	Example: `% weathervane history import fairbanks_ak --source ./staging \
    --from 2020-10-01 --to 2021-04-30 --stop-on-missing`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		w, err := openWeatherData()
		if err != nil {
			wrapFatalln("open weather data", err)
			return
		}

		dayRange, err := parseDayRange()
		if err != nil {
			wrapFatalln("parse date range", err)
			return
		}

		source := weatherFlags.history.source
		ext := weatherFlags.history.ext
		stopOnMissing := weatherFlags.history.stopOnMissing
		fetch := func(_ context.Context, loc model.Location, day time.Time) ([]byte, error) {
			name := filepath.Join(source, filepath.FromSlash(model.HistoryPath(loc.Alias, day, ext)))
			payload, err := os.ReadFile(name)
			if err != nil {
				if os.IsNotExist(err) && stopOnMissing {
					return nil, core.ErrStopFetch.WrapMessage(name)
				}
				return nil, err
			}
			return payload, nil
		}

		added, err := w.AddHistory(context.Background(), args[0], dayRange.Dates(), fetch)
		if err != nil {
			wrapFatalln("import history", err)
			return
		}
		infoLogger.Println("imported", added, "days")
	},
}

func init() {
	addFromToFlags(historyImportCmd)
	addExtFlag(historyImportCmd)
	historyImportCmd.Flags().StringVar(&weatherFlags.history.source, "source", "",
		"Directory holding the per-day record files")
	historyImportCmd.Flags().BoolVar(&weatherFlags.history.stopOnMissing, "stop-on-missing", false,
		"Stop the import cleanly at the first missing source file instead of failing")
	for _, flag := range []string{"source", "from"} {
		err := historyImportCmd.MarkFlagRequired(flag)
		if err != nil {
			wrapFatalln("mark required flag", err)
			return
		}
	}
	historyCmd.AddCommand(historyImportCmd)
}
