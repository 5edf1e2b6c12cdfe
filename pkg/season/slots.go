package season

import "time"

const (
	monthsPerYear = 12

	// slotCount sizes the month-slot table: slot 0 is unused, slots 1..12
	// are the months of the neutral epoch year and 13..24 the months of the
	// following synthetic year.
	slotCount = 2*monthsPerYear + 1
)

// MonthSlots marks which months of the two-synthetic-year timeline an
// entity's history occupies. Slot 0 is never set.
type MonthSlots [slotCount]bool

// StartEnd is the first and last occupied slot, or (0, 0) when empty.
func (m MonthSlots) StartEnd() (int, int) {
	start, end := 0, 0
	for slot := 1; slot < slotCount; slot++ {
		if !m[slot] {
			continue
		}
		if start == 0 {
			start = slot
		}
		end = slot
	}
	return start, end
}

// Count is the number of occupied slots.
func (m MonthSlots) Count() int {
	count := 0
	for slot := 1; slot < slotCount; slot++ {
		if m[slot] {
			count++
		}
	}
	return count
}

// SlotMonth is the calendar month a slot stands for.
func SlotMonth(slot int) time.Month {
	return time.Month((slot-1)%monthsPerYear + 1)
}

// SlotYearOffset is 0 for slots in the epoch year, 1 for the year after.
func SlotYearOffset(slot int) int {
	return (slot - 1) / monthsPerYear
}
