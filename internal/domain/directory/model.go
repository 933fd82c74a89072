package directory

import (
	"time"

	"github.com/google/uuid"
)

// Location is a clinic branch patients can book at.
type Location struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Address        *string   `db:"address" json:"address,omitempty"`
	City           *string   `db:"city" json:"city,omitempty"`
	State          *string   `db:"state" json:"state,omitempty"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	AvailableHours *string   `db:"available_hours" json:"available_hours,omitempty"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Doctor is a practitioner who holds availability windows at one or more
// locations.
type Doctor struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Qualifications  *string   `db:"qualifications" json:"qualifications,omitempty"`
	Specializations *string   `db:"specializations" json:"specializations,omitempty"`
	ExperienceYears *int      `db:"experience_years" json:"experience_years,omitempty"`
	Email           *string   `db:"email" json:"email,omitempty"`
	Phone           *string   `db:"phone" json:"phone,omitempty"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
