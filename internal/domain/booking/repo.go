package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence collaborator for the booking core.
//
// InsertBooking must be atomic and enforce uniqueness over
// (doctor_id, location_id, date, time) excluding cancelled rows; a conflict
// is reported as ErrDuplicateSlot, never as a raw driver error. That
// constraint, not the coordinator's pre-check, is the final arbiter under
// concurrent bookings.
type Repository interface {
	FetchAvailability(ctx context.Context, doctorID, locationID uuid.UUID) ([]*AvailabilityWindow, error)
	FetchBookedSlots(ctx context.Context, doctorID, locationID uuid.UUID, date time.Time) ([]BookedTime, error)

	// InsertBooking commits b, filling in its ID and ReferenceNumber.
	InsertBooking(ctx context.Context, b *Booking) error
}
