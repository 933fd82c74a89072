package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("directory: not found")

// Repository is the read-side store for the clinic directory. Listings
// return only active entries, ordered by name.
type Repository interface {
	ListLocations(ctx context.Context) ([]*Location, error)
	ListDoctorsByLocation(ctx context.Context, locationID uuid.UUID) ([]*Doctor, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error)
}
