package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeOfDay is a clock time expressed as minutes since midnight, local to the
// clinic. The booking core deals exclusively in times-of-day; dates travel
// separately.
type TimeOfDay int

// ParseTimeOfDay parses a 24-hour "HH:mm" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String returns the 24-hour wire format ("09:30").
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Display returns the 12-hour patient-facing label ("09:30 AM").
func (t TimeOfDay) Display() string {
	h := t.Hour()
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, t.Minute(), suffix)
}

// Valid reports whether t falls within a single day.
func (t TimeOfDay) Valid() bool { return t >= 0 && t < 24*60 }

// AvailabilityWindow is a recurring time range during which a doctor accepts
// appointments at a location. Owned by clinic configuration; the booking core
// only reads it.
type AvailabilityWindow struct {
	ID               uuid.UUID `db:"id" json:"id"`
	DoctorID         uuid.UUID `db:"doctor_id" json:"doctor_id"`
	LocationID       uuid.UUID `db:"location_id" json:"location_id"`
	DayOfWeek        *int      `db:"day_of_week" json:"day_of_week,omitempty"` // 0=Sunday .. 6=Saturday; nil = every day
	StartTime        TimeOfDay `db:"start_time" json:"start_time"`
	EndTime          TimeOfDay `db:"end_time" json:"end_time"`
	SlotDurationMins int       `db:"slot_duration_mins" json:"slot_duration_mins"`
	Active           bool      `db:"active" json:"active"`
}

// BookingStatus tracks a committed slot:
//
//	booked → completed
//	booked → cancelled   (outside this core; only the resulting row is read)
//	booked → no_show
//
// A slot counts as occupied for every status except cancelled.
type BookingStatus string

const (
	StatusBooked    BookingStatus = "booked"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Occupies reports whether a row with this status blocks its slot.
func (s BookingStatus) Occupies() bool { return s != StatusCancelled }

// Booking maps to the appointment table. Created by a successful commit;
// never mutated by the booking core.
type Booking struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	ReferenceNumber string        `db:"reference_number" json:"reference_number"`
	DoctorID        uuid.UUID     `db:"doctor_id" json:"doctor_id"`
	LocationID      uuid.UUID     `db:"location_id" json:"location_id"`
	Date            time.Time     `db:"appointment_date" json:"date"`
	Time            TimeOfDay     `db:"appointment_time" json:"time"`
	Status          BookingStatus `db:"status" json:"status"`

	PatientName string  `db:"patient_name" json:"patient_name"`
	Age         int     `db:"age" json:"age"`
	Mobile      string  `db:"mobile" json:"mobile"`
	Email       *string `db:"email" json:"email,omitempty"`
	BloodGroup  *string `db:"blood_group" json:"blood_group,omitempty"`
	Remarks     *string `db:"remarks" json:"remarks,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// BookedTime is the projection of a Booking the availability computation
// needs: when, and whether the row still occupies its slot.
type BookedTime struct {
	Time   TimeOfDay
	Status BookingStatus
}

// CandidateSlot is one discrete bookable time derived from an availability
// window. Ephemeral; recomputed on every request.
type CandidateSlot struct {
	Time        TimeOfDay `json:"time"`
	Display     string    `json:"display"`
	IsAvailable bool      `json:"is_available"`
	Remaining   int       `json:"remaining"` // 0 or 1
}

// DayAvailability is the slot listing for one (doctor, location, date).
type DayAvailability struct {
	Date                 time.Time
	DoctorID             uuid.UUID
	LocationID           uuid.UUID
	Slots                []CandidateSlot
	RemainingSlotsForDay int
}

// BookingRequest carries a patient's booking attempt. Date and Time arrive as
// strings so malformed input can be rejected before touching persistence.
type BookingRequest struct {
	DoctorID   uuid.UUID `json:"doctor_id"`
	LocationID uuid.UUID `json:"location_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	Time       string    `json:"time"` // HH:mm, 24-hour

	PatientName string `json:"patient_name"`
	Age         int    `json:"age"`
	Mobile      string `json:"mobile"`
	Email       string `json:"email,omitempty"`
	BloodGroup  string `json:"blood_group,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
}

// BookingResult is returned after a successful commit.
type BookingResult struct {
	AppointmentID        uuid.UUID `json:"appointment_id"`
	ReferenceNumber      string    `json:"reference_number"`
	RemainingSlotsForDay int       `json:"remaining_slots_for_day"`
}
