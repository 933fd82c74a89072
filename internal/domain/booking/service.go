package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service coordinates slot listing and booking commits. It holds no state
// across calls and no locks: concurrent bookings for the same slot are
// resolved by the repository's uniqueness constraint.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListAvailability returns every candidate slot for the date, each marked
// against the current non-cancelled bookings. Read-only.
func (s *Service) ListAvailability(ctx context.Context, doctorID, locationID uuid.UUID, date time.Time) (*DayAvailability, error) {
	windows, err := s.repo.FetchAvailability(ctx, doctorID, locationID)
	if err != nil {
		return nil, fmt.Errorf("fetching availability windows: %w", err)
	}

	slots := collapseDuplicates(GenerateSlots(windows, date))

	booked, err := s.repo.FetchBookedSlots(ctx, doctorID, locationID, date)
	if err != nil {
		return nil, fmt.Errorf("fetching booked slots: %w", err)
	}
	taken := make(map[TimeOfDay]bool, len(booked))
	for _, b := range booked {
		if b.Status.Occupies() {
			taken[b.Time] = true
		}
	}

	remaining := 0
	for i := range slots {
		if taken[slots[i].Time] {
			slots[i].IsAvailable = false
			slots[i].Remaining = 0
		} else {
			remaining++
		}
	}

	return &DayAvailability{
		Date:                 date,
		DoctorID:             doctorID,
		LocationID:           locationID,
		Slots:                slots,
		RemainingSlotsForDay: remaining,
	}, nil
}

// Book validates the request, confirms the slot is offered and currently
// free, and commits it. The free check is optimistic: if a concurrent
// booking wins between the check and the insert, the repository's uniqueness
// violation surfaces as ErrSlotTaken. Exactly one Booking row is created on
// success and none on any failure path.
func (s *Service) Book(ctx context.Context, req *BookingRequest) (*BookingResult, error) {
	date, tod, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	windows, err := s.repo.FetchAvailability(ctx, req.DoctorID, req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("fetching availability windows: %w", err)
	}
	if !slotOffered(windows, date, tod) {
		return nil, ErrInvalidSlot
	}

	// Fast pre-check for a friendly failure before attempting the insert.
	booked, err := s.repo.FetchBookedSlots(ctx, req.DoctorID, req.LocationID, date)
	if err != nil {
		return nil, fmt.Errorf("fetching booked slots: %w", err)
	}
	for _, b := range booked {
		if b.Time == tod && b.Status.Occupies() {
			return nil, ErrSlotTaken
		}
	}

	b := &Booking{
		DoctorID:    req.DoctorID,
		LocationID:  req.LocationID,
		Date:        date,
		Time:        tod,
		Status:      StatusBooked,
		PatientName: req.PatientName,
		Age:         req.Age,
		Mobile:      req.Mobile,
		Email:       optional(req.Email),
		BloodGroup:  optional(req.BloodGroup),
		Remarks:     optional(req.Remarks),
	}
	if err := s.repo.InsertBooking(ctx, b); err != nil {
		if errors.Is(err, ErrDuplicateSlot) {
			// A concurrent booking won the race after the pre-check.
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	result := &BookingResult{
		AppointmentID:   b.ID,
		ReferenceNumber: b.ReferenceNumber,
	}
	// The refreshed count is advisory; the booking itself already committed.
	if day, err := s.ListAvailability(ctx, req.DoctorID, req.LocationID, date); err == nil {
		result.RemainingSlotsForDay = day.RemainingSlotsForDay
	}
	return result, nil
}

// slotOffered reports whether tod is one of the candidate times generated for
// the date, regardless of current bookings.
func slotOffered(windows []*AvailabilityWindow, date time.Time, tod TimeOfDay) bool {
	for _, s := range GenerateSlots(windows, date) {
		if s.Time == tod {
			return true
		}
	}
	return false
}

func validateRequest(req *BookingRequest) (time.Time, TimeOfDay, error) {
	var fields []string

	if req.DoctorID == uuid.Nil {
		fields = append(fields, "doctor_id is required")
	}
	if req.LocationID == uuid.Nil {
		fields = append(fields, "location_id is required")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		fields = append(fields, "date must be YYYY-MM-DD")
	}
	tod, err := ParseTimeOfDay(req.Time)
	if err != nil {
		fields = append(fields, "time must be HH:mm")
	}
	if req.PatientName == "" {
		fields = append(fields, "patient_name is required")
	}
	if req.Mobile == "" {
		fields = append(fields, "mobile is required")
	}
	if req.Age <= 0 || req.Age > 120 {
		fields = append(fields, "age must be between 1 and 120")
	}

	if len(fields) > 0 {
		return time.Time{}, 0, &ValidationError{Fields: fields}
	}
	return date, tod, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
