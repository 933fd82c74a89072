package booking

import (
	"sort"
	"time"
)

// DefaultSlotMinutes is used when a window carries no usable slot duration.
const DefaultSlotMinutes = 30

const minutesPerDay = 24 * 60

// GenerateSlots expands availability windows into the ordered candidate slots
// for one date. Pure and deterministic: no I/O, no clock reads.
//
// Windows whose raw end time precedes their start time are interpreted as
// ending in the PM half of the day (end + 12h). This compensates for
// ambiguous AM/PM data entry in clinic configuration; it is a business rule,
// not timezone handling. A window whose adjusted end still precedes its start
// wraps past midnight, and the emitted times fold back into a single day.
//
// Overlapping windows are not merged here; duplicate times are collapsed by
// the coordinator when it cross-references bookings.
func GenerateSlots(windows []*AvailabilityWindow, date time.Time) []CandidateSlot {
	day := int(date.Weekday())

	var slots []CandidateSlot
	for _, w := range windows {
		if !w.Active {
			continue
		}
		if w.DayOfWeek != nil && *w.DayOfWeek != day {
			continue
		}

		step := w.SlotDurationMins
		if step <= 0 {
			step = DefaultSlotMinutes
		}

		start, end := int(w.StartTime), int(w.EndTime)
		if end < start {
			end += 12 * 60
		}
		if end < start {
			end += minutesPerDay
		}

		// Half-open walk: a slot exactly at the window end is not offered.
		for t := start; t < end; t += step {
			tod := TimeOfDay(t % minutesPerDay)
			slots = append(slots, CandidateSlot{
				Time:        tod,
				Display:     tod.Display(),
				IsAvailable: true,
				Remaining:   1,
			})
		}
	}

	// Ascending by time; stable so ties keep window declaration order.
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Time < slots[j].Time
	})
	return slots
}

// collapseDuplicates removes repeated candidate times produced by overlapping
// windows, keeping the first occurrence. Double-counting a time would corrupt
// the remaining-slots tally.
func collapseDuplicates(slots []CandidateSlot) []CandidateSlot {
	seen := make(map[TimeOfDay]bool, len(slots))
	out := slots[:0:0]
	for _, s := range slots {
		if seen[s.Time] {
			continue
		}
		seen[s.Time] = true
		out = append(out, s)
	}
	return out
}
