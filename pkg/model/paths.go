package model

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/weathervane/weathervane/pkg/errors"
)

// DefaultHistoryExt is the archive entry extension used when none is given.
const DefaultHistoryExt = "json"

// historyDateLayout is the date component of archive entry names.
const historyDateLayout = "20060102"

// ErrInvalidHistoryPath indicates an archive entry name that does not follow
// the {alias}/{alias}-YYYYMMDD.{ext} convention.
var ErrInvalidHistoryPath = errors.New("invalid history path")

// HistoryPath builds the archive entry name for one day of history,
// following the form {alias}/{alias}-YYYYMMDD.{ext}.
func HistoryPath(alias string, day time.Time, ext string) string {
	if ext == "" {
		ext = DefaultHistoryExt
	}
	prefix := strings.ToLower(alias)
	return fmt.Sprintf("%s/%s-%s.%s", prefix, prefix, day.Format(historyDateLayout), ext)
}

// HistoryArchiveName is the archive file name holding a location's history.
func HistoryArchiveName(alias string) string {
	return strings.ToLower(alias) + ".zip"
}

// HistoryPathComponents are the parts recovered from an archive entry name.
type HistoryPathComponents struct {
	Alias string
	Day   time.Time
}

// ParseHistoryPath recovers the location alias and UTC date from an archive
// entry name whose basename follows the form {alias}-YYYYMMDD.{ext}.
func ParseHistoryPath(entry string) (HistoryPathComponents, error) {
	base := path.Base(entry)
	if dot := strings.LastIndex(base, "."); dot >= 0 {
		base = base[:dot]
	}
	dash := strings.LastIndex(base, "-")
	if dash < 0 {
		return HistoryPathComponents{}, ErrInvalidHistoryPath.WrapMessage(entry)
	}
	alias, stamp := base[:dash], base[dash+1:]
	day, err := time.ParseInLocation(historyDateLayout, stamp, time.UTC)
	if err != nil {
		return HistoryPathComponents{}, ErrInvalidHistoryPath.Wrap(err)
	}
	return HistoryPathComponents{Alias: alias, Day: day}, nil
}
