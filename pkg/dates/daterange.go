// Package dates implements the calendar algebra behind history comparison:
// an immutable, construction-validated date range and its projection onto a
// year-agnostic ("neutral") timeline used to line up seasons from different
// calendar years.
package dates

import (
	"fmt"
	"time"

	"github.com/weathervane/weathervane/pkg/errors"
)

// NeutralEpochYear is the synthetic year neutral ranges are projected onto.
// Neither it nor the following year is a leap year, which is why Feb 29
// collapses onto Feb 28 during projection.
const NeutralEpochYear = 1

// ErrInvalidDateRange indicates a range whose high date precedes its low date,
// or a missing low date.
var ErrInvalidDateRange = errors.New("invalid date range")

// DateRange is an inclusive range of calendar days. The zero value is not
// valid; build ranges with New or Single so that Low <= High always holds.
type DateRange struct {
	Low  time.Time
	High time.Time
}

// New builds a range from low to high inclusive. A zero high defaults to low
// (a single-day range). Fails with ErrInvalidDateRange when high < low.
// Both bounds are truncated to UTC midnight.
func New(low, high time.Time) (DateRange, error) {
	if low.IsZero() {
		return DateRange{}, ErrInvalidDateRange.WrapMessage("a low date is required")
	}
	low = Day(low.Year(), low.Month(), low.Day())
	if high.IsZero() {
		high = low
	} else {
		high = Day(high.Year(), high.Month(), high.Day())
	}
	if high.Before(low) {
		return DateRange{}, ErrInvalidDateRange.WrapMessage(fmt.Sprintf(
			"high date (%s) cannot be less than low date (%s)",
			high.Format(dayLayout), low.Format(dayLayout)))
	}
	return DateRange{Low: low, High: high}, nil
}

// Single builds a single-day range.
func Single(day time.Time) DateRange {
	d := Day(day.Year(), day.Month(), day.Day())
	return DateRange{Low: d, High: d}
}

// MustNew is New for ranges known valid at compile time; it panics otherwise.
func MustNew(low, high time.Time) DateRange {
	r, err := New(low, high)
	if err != nil {
		panic(err)
	}
	return r
}

// Day builds a calendar date at UTC midnight.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

const dayLayout = "2006-01-02"

func (r DateRange) String() string {
	return fmt.Sprintf("DateRange(low=%s,high=%s)",
		r.Low.Format(dayLayout), r.High.Format(dayLayout))
}

// Equal reports whether both ranges cover the same days.
func (r DateRange) Equal(other DateRange) bool {
	return r.Low.Equal(other.Low) && r.High.Equal(other.High)
}

// Contains reports whether other lies fully within this range.
func (r DateRange) Contains(other DateRange) bool {
	return !r.Low.After(other.Low) && !r.High.Before(other.High)
}

// TotalDays is the distance in days between the bounds; a single-day range
// yields zero.
func (r DateRange) TotalDays() int {
	return int(r.High.Sub(r.Low).Hours() / 24)
}

// Dates lists every day from Low to High inclusive, ascending.
func (r DateRange) Dates() []time.Time {
	days := make([]time.Time, 0, r.TotalDays()+1)
	for ts := r.Low; !ts.After(r.High); ts = ts.AddDate(0, 0, 1) {
		days = append(days, ts)
	}
	return days
}

// SpansYears reports whether the range crosses a calendar year boundary.
func (r DateRange) SpansYears() bool {
	return r.Low.Year() < r.High.Year()
}

// AsNeutral erases the year component: the low bound is moved to the neutral
// epoch year, the high bound to the epoch year plus one when the original
// range spans a year boundary. Feb 29 is coerced to Feb 28 since the epoch
// year is not a leap year. Projecting an already-neutral range again yields
// the same range.
func (r DateRange) AsNeutral() DateRange {
	highYear := NeutralEpochYear
	if r.SpansYears() {
		highYear = NeutralEpochYear + 1
	}
	return DateRange{
		Low:  Day(NeutralEpochYear, r.Low.Month(), neutralDay(r.Low)),
		High: Day(highYear, r.High.Month(), neutralDay(r.High)),
	}
}

func neutralDay(ts time.Time) int {
	if ts.Month() == time.February && ts.Day() == 29 {
		return 28
	}
	return ts.Day()
}
