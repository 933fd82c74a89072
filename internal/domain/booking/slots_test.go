package booking

import (
	"reflect"
	"testing"
	"time"
)

// monday is 2025-03-10, a Monday (weekday 1).
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func window(start, end string, opts ...func(*AvailabilityWindow)) *AvailabilityWindow {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		panic(err)
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		panic(err)
	}
	w := &AvailabilityWindow{
		StartTime:        s,
		EndTime:          e,
		SlotDurationMins: 30,
		Active:           true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func onDay(d int) func(*AvailabilityWindow) {
	return func(w *AvailabilityWindow) { w.DayOfWeek = &d }
}

func times(slots []CandidateSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Time.String()
	}
	return out
}

func TestGenerateSlotsWalksWindowInSteps(t *testing.T) {
	slots := GenerateSlots([]*AvailabilityWindow{window("09:00", "13:00")}, monday)

	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30"}
	if got := times(slots); !reflect.DeepEqual(got, want) {
		t.Errorf("slots = %v, want %v", got, want)
	}
	for _, s := range slots {
		if !s.IsAvailable || s.Remaining != 1 {
			t.Errorf("freshly generated slot %s should be available with remaining 1", s.Time)
		}
	}
}

func TestGenerateSlotsExcludesWindowEnd(t *testing.T) {
	slots := GenerateSlots([]*AvailabilityWindow{window("09:00", "10:00")}, monday)
	for _, s := range slots {
		if s.Time.String() == "10:00" {
			t.Error("slot at the exact window end must not be offered")
		}
	}
	if len(slots) != 2 {
		t.Errorf("expected 2 slots, got %d", len(slots))
	}
}

func TestGenerateSlotsCustomDuration(t *testing.T) {
	w := window("09:00", "10:00")
	w.SlotDurationMins = 20
	slots := GenerateSlots([]*AvailabilityWindow{w}, monday)

	want := []string{"09:00", "09:20", "09:40"}
	if got := times(slots); !reflect.DeepEqual(got, want) {
		t.Errorf("slots = %v, want %v", got, want)
	}
}

func TestGenerateSlotsDefaultsDuration(t *testing.T) {
	w := window("09:00", "11:00")
	w.SlotDurationMins = 0
	if got := len(GenerateSlots([]*AvailabilityWindow{w}, monday)); got != 4 {
		t.Errorf("expected 30-minute default steps (4 slots), got %d", got)
	}

	w.SlotDurationMins = -15
	if got := len(GenerateSlots([]*AvailabilityWindow{w}, monday)); got != 4 {
		t.Errorf("negative duration should fall back to default, got %d slots", got)
	}
}

func TestGenerateSlotsAMPMHeuristic(t *testing.T) {
	// Raw end 05:00 precedes start 09:00: interpreted as 17:00.
	slots := GenerateSlots([]*AvailabilityWindow{window("09:00", "05:00")}, monday)
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots for effective 09:00-17:00, got %d", len(slots))
	}
	if first := slots[0].Time.String(); first != "09:00" {
		t.Errorf("first slot = %s, want 09:00", first)
	}
	if last := slots[len(slots)-1].Time.String(); last != "16:30" {
		t.Errorf("last slot = %s, want 16:30", last)
	}
}

func TestGenerateSlotsWrapsPastMidnight(t *testing.T) {
	// 20:00-04:00: the 12-hour adjustment yields 16:00, still before the
	// start, so the window runs into the next day and times fold back into
	// a single clock face.
	slots := GenerateSlots([]*AvailabilityWindow{window("20:00", "04:00")}, monday)
	if len(slots) != 40 {
		t.Fatalf("expected 40 slots, got %d", len(slots))
	}

	have := make(map[string]bool)
	for _, s := range slots {
		have[s.Time.String()] = true
	}
	for _, want := range []string{"20:00", "23:30", "00:00", "15:30"} {
		if !have[want] {
			t.Errorf("expected slot at %s", want)
		}
	}
	for _, absent := range []string{"16:00", "19:30"} {
		if have[absent] {
			t.Errorf("slot at %s lies outside the effective window", absent)
		}
	}
}

func TestGenerateSlotsFiltersByDayOfWeek(t *testing.T) {
	windows := []*AvailabilityWindow{
		window("09:00", "10:00", onDay(1)), // Monday
		window("14:00", "15:00", onDay(2)), // Tuesday
		window("18:00", "19:00"),           // every day
	}
	slots := GenerateSlots(windows, monday)

	want := []string{"09:00", "09:30", "18:00", "18:30"}
	if got := times(slots); !reflect.DeepEqual(got, want) {
		t.Errorf("slots = %v, want %v", got, want)
	}
}

func TestGenerateSlotsSkipsInactiveWindows(t *testing.T) {
	w := window("09:00", "10:00")
	w.Active = false
	if got := GenerateSlots([]*AvailabilityWindow{w}, monday); len(got) != 0 {
		t.Errorf("inactive window produced %d slots", len(got))
	}
}

func TestGenerateSlotsKeepsOverlapDuplicates(t *testing.T) {
	windows := []*AvailabilityWindow{
		window("09:00", "10:00"),
		window("09:00", "10:00"),
	}
	slots := GenerateSlots(windows, monday)
	if len(slots) != 4 {
		t.Fatalf("generator must not merge overlapping windows, got %d slots", len(slots))
	}

	collapsed := collapseDuplicates(slots)
	want := []string{"09:00", "09:30"}
	if got := times(collapsed); !reflect.DeepEqual(got, want) {
		t.Errorf("collapsed = %v, want %v", got, want)
	}
}

func TestGenerateSlotsIsDeterministic(t *testing.T) {
	windows := []*AvailabilityWindow{
		window("09:00", "12:00"),
		window("10:00", "14:00", onDay(1)),
	}
	first := GenerateSlots(windows, monday)
	second := GenerateSlots(windows, monday)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must yield identical ordered output")
	}
}

func TestGenerateSlotsOrderedAscending(t *testing.T) {
	windows := []*AvailabilityWindow{
		window("14:00", "15:00"),
		window("09:00", "10:00"),
	}
	slots := GenerateSlots(windows, monday)
	for i := 1; i < len(slots); i++ {
		if slots[i].Time < slots[i-1].Time {
			t.Fatalf("slots out of order: %s before %s", slots[i-1].Time, slots[i].Time)
		}
	}
}
