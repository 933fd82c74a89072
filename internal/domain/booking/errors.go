package booking

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidSlot means the requested time does not fall inside any
	// active availability window for that date.
	ErrInvalidSlot = errors.New("requested time is not an offered slot")

	// ErrSlotTaken means another booking occupies the slot. Callers must
	// re-query availability and let the patient pick again; it is never
	// retried here.
	ErrSlotTaken = errors.New("selected slot was just taken — please choose another slot")

	// ErrDuplicateSlot is returned by Repository.InsertBooking when the
	// storage uniqueness constraint rejects the insert. The coordinator
	// surfaces it as ErrSlotTaken.
	ErrDuplicateSlot = errors.New("booking conflicts with an existing slot")
)

// ValidationError reports malformed request fields, rejected before any
// persistence call.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}
