package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const locationCols = `id, name, address, city, state, phone, available_hours, active, created_at`

func scanLocation(row pgx.Row) (*Location, error) {
	var l Location
	err := row.Scan(&l.ID, &l.Name, &l.Address, &l.City, &l.State, &l.Phone,
		&l.AvailableHours, &l.Active, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

const doctorCols = `id, name, qualifications, specializations, experience_years, email, phone, active, created_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Qualifications, &d.Specializations,
		&d.ExperienceYears, &d.Email, &d.Phone, &d.Active, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) ListLocations(ctx context.Context) ([]*Location, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+locationCols+` FROM location WHERE active ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var out []*Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *repoPG) ListDoctorsByLocation(ctx context.Context, locationID uuid.UUID) ([]*Doctor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT d.id, d.name, d.qualifications, d.specializations,
		        d.experience_years, d.email, d.phone, d.active, d.created_at
		   FROM doctor d
		   JOIN doctor_availability a ON a.doctor_id = d.id
		  WHERE a.location_id = $1 AND a.active AND d.active
		  ORDER BY d.name ASC`, locationID)
	if err != nil {
		return nil, fmt.Errorf("listing doctors for location: %w", err)
	}
	defer rows.Close()

	var out []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning doctor: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repoPG) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := scanDoctor(r.pool.QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching doctor: %w", err)
	}
	return d, nil
}
