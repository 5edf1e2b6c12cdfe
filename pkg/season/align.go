// Package season aligns weather histories from different calendar years and
// locations onto a common year-agnostic timeline.
//
// Every input range is projected to its neutral form and slotted into a
// table of 24 logical months spanning two synthetic years, so that, say, an
// Oct 2018–Apr 2019 winter and an Oct 2020–Apr 2021 winter land on the same
// slots. The aligner then finds the single contiguous month window occupied
// across all inputs; when the occupied slots form zero or several disjoint
// windows there is no unambiguous answer and the aligner reports an error
// rather than guessing.
package season

import (
	"fmt"
	"time"

	"github.com/weathervane/weathervane/pkg/dates"
	"github.com/weathervane/weathervane/pkg/errors"
	"github.com/weathervane/weathervane/pkg/model"
)

var (
	// ErrNoInput indicates an alignment request without any ranges
	ErrNoInput = errors.New("no location date ranges to align")

	// ErrNoWindow indicates that no month is occupied by any input
	ErrNoWindow = errors.New("no common season window")

	// ErrAmbiguousWindow indicates several disjoint candidate windows;
	// the caller must narrow its inputs instead of the aligner guessing
	ErrAmbiguousWindow = errors.New("ambiguous season window")
)

// LocationRange pairs a location with one of its history date ranges. The
// same location may appear several times with ranges from different years.
type LocationRange struct {
	Location model.Location
	Range    dates.DateRange
}

// Mapping is one input's occupancy within the aligned window.
type Mapping struct {
	Location model.Location
	Range    dates.DateRange
	Slots    MonthSlots
}

// Alignment is the result of aligning a cohort: the single contiguous
// month window [Start, End] (slot indexes) common to all inputs, and each
// input's occupancy within it, in input order.
type Alignment struct {
	Start    int
	End      int
	Mappings []Mapping
}

// Months lists the window as calendar months on the neutral timeline.
func (a *Alignment) Months() []time.Month {
	months := make([]time.Month, 0, a.End-a.Start+1)
	for slot := a.Start; slot <= a.End; slot++ {
		months = append(months, SlotMonth(slot))
	}
	return months
}

// Common is the longest run of consecutive slots occupied by every input,
// i.e. the stretch of months where all histories can actually be compared.
// ok is false when no slot is shared by all inputs.
func (a *Alignment) Common() (start, end int, ok bool) {
	runStart, runEnd := 0, 0
	for slot := a.Start; slot <= a.End; slot++ {
		shared := true
		for i := range a.Mappings {
			if !a.Mappings[i].Slots[slot] {
				shared = false
				break
			}
		}
		if shared {
			if runStart == 0 {
				runStart = slot
			}
			runEnd = slot
			continue
		}
		if runStart != 0 && (!ok || runEnd-runStart > end-start) {
			start, end, ok = runStart, runEnd, true
		}
		runStart, runEnd = 0, 0
	}
	if runStart != 0 && (!ok || runEnd-runStart > end-start) {
		start, end, ok = runStart, runEnd, true
	}
	return start, end, ok
}

// Align computes the season window shared by all input ranges.
//
// Each range occupies the slots from its neutral low month through its
// neutral high month, shifted a synthetic year forward for the high bound
// when the range spans a calendar year boundary. A reconciliation pass then
// resolves cohorts recorded without an explicit year span: when a
// first-year slot is only partially occupied and its mirror slot one
// synthetic year later is occupied too, the non-spanning entries move
// forward to the mirror slot (never backward). The remaining occupied
// slots must form exactly one contiguous run.
func Align(pairs []LocationRange) (*Alignment, error) {
	if len(pairs) == 0 {
		return nil, ErrNoInput
	}

	// entries are pair indexes, keeping identity exact even when the same
	// location appears once per compared year
	var slots [slotCount][]int
	for idx, pair := range pairs {
		neutral := pair.Range.AsNeutral()
		low := int(neutral.Low.Month())
		high := int(neutral.High.Month())
		if pair.Range.SpansYears() {
			high += monthsPerYear
		}
		for slot := low; slot <= high; slot++ {
			slots[slot] = append(slots[slot], idx)
		}
	}

	reconcile(&slots, pairs)

	runs := occupiedRuns(&slots)
	switch len(runs) {
	case 0:
		return nil, ErrNoWindow
	case 1:
	default:
		return nil, ErrAmbiguousWindow.WrapMessage(describeRuns(runs))
	}

	start, end := runs[0][0], runs[0][1]
	alignment := &Alignment{Start: start, End: end, Mappings: make([]Mapping, 0, len(pairs))}
	for idx, pair := range pairs {
		mapping := Mapping{Location: pair.Location, Range: pair.Range}
		for slot := start; slot <= end; slot++ {
			for _, entry := range slots[slot] {
				if entry == idx {
					mapping.Slots[slot] = true
					break
				}
			}
		}
		alignment.Mappings = append(alignment.Mappings, mapping)
	}
	return alignment, nil
}

// reconcile moves first-year entries that do not themselves span a year
// boundary into the mirror slot twelve months later, whenever their slot is
// partially occupied and the mirror slot is occupied at all. This lines up
// ranges recorded without an explicit year span with the rest of the cohort.
func reconcile(slots *[slotCount][]int, pairs []LocationRange) {
	for slot := 1; slot <= monthsPerYear; slot++ {
		occupants := slots[slot]
		if len(occupants) == 0 || len(occupants) == len(pairs) {
			continue
		}
		mirror := slot + monthsPerYear
		if len(slots[mirror]) == 0 {
			continue
		}
		kept := occupants[:0]
		for _, entry := range occupants {
			if pairs[entry].Range.SpansYears() {
				kept = append(kept, entry)
			} else {
				slots[mirror] = append(slots[mirror], entry)
			}
		}
		slots[slot] = kept
	}
}

// occupiedRuns finds the maximal runs of consecutive non-empty slots.
func occupiedRuns(slots *[slotCount][]int) [][2]int {
	var runs [][2]int
	start, end := 0, 0
	for slot := 1; slot < slotCount; slot++ {
		if len(slots[slot]) > 0 {
			if start == 0 {
				start = slot
			}
			end = slot
			continue
		}
		if start != 0 {
			runs = append(runs, [2]int{start, end})
			start, end = 0, 0
		}
	}
	if start != 0 {
		runs = append(runs, [2]int{start, end})
	}
	return runs
}

func describeRuns(runs [][2]int) string {
	msg := ""
	for i, run := range runs {
		if i > 0 {
			msg += ", "
		}
		msg += fmt.Sprintf("%s..%s", SlotMonth(run[0]), SlotMonth(run[1]))
	}
	return fmt.Sprintf("%d disjoint windows: %s", len(runs), msg)
}
