package booking

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// slotConstraint is the partial unique index over
// (doctor_id, location_id, appointment_date, appointment_time) WHERE
// status <> 'cancelled'. See migrations/001_clinic.sql.
const slotConstraint = "uq_appointment_slot"

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const windowCols = `id, doctor_id, location_id, day_of_week, start_time, end_time, slot_duration_mins, active`

func scanWindow(row pgx.Row) (*AvailabilityWindow, error) {
	var (
		w          AvailabilityWindow
		start, end pgtype.Time
	)
	err := row.Scan(&w.ID, &w.DoctorID, &w.LocationID, &w.DayOfWeek,
		&start, &end, &w.SlotDurationMins, &w.Active)
	if err != nil {
		return nil, err
	}
	w.StartTime = timeOfDayFromPG(start)
	w.EndTime = timeOfDayFromPG(end)
	return &w, nil
}

func (r *repoPG) FetchAvailability(ctx context.Context, doctorID, locationID uuid.UUID) ([]*AvailabilityWindow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+windowCols+` FROM doctor_availability
		WHERE doctor_id = $1 AND location_id = $2
		ORDER BY created_at ASC`, doctorID, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AvailabilityWindow
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

func (r *repoPG) FetchBookedSlots(ctx context.Context, doctorID, locationID uuid.UUID, date time.Time) ([]BookedTime, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT appointment_time, status FROM appointment
		WHERE doctor_id = $1 AND location_id = $2 AND appointment_date = $3`,
		doctorID, locationID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BookedTime
	for rows.Next() {
		var (
			t      pgtype.Time
			status string
		)
		if err := rows.Scan(&t, &status); err != nil {
			return nil, err
		}
		items = append(items, BookedTime{Time: timeOfDayFromPG(t), Status: BookingStatus(status)})
	}
	return items, rows.Err()
}

func (r *repoPG) InsertBooking(ctx context.Context, b *Booking) error {
	b.ID = uuid.New()
	if b.ReferenceNumber == "" {
		b.ReferenceNumber = newReferenceNumber(b.Date)
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment (id, reference_number, doctor_id, location_id,
			appointment_date, appointment_time, status,
			patient_name, age, mobile, email, blood_group, remarks)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		b.ID, b.ReferenceNumber, b.DoctorID, b.LocationID,
		b.Date, pgTimeOfDay(b.Time), b.Status,
		b.PatientName, b.Age, b.Mobile, b.Email, b.BloodGroup, b.Remarks)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == slotConstraint {
			return ErrDuplicateSlot
		}
		return err
	}
	return nil
}

// newReferenceNumber builds the human-facing confirmation code, e.g.
// APT-20260901-3FA2C1. The column's unique constraint backs its uniqueness.
func newReferenceNumber(date time.Time) string {
	id := uuid.New()
	return fmt.Sprintf("APT-%s-%s", date.Format("20060102"),
		strings.ToUpper(hex.EncodeToString(id[:3])))
}

func timeOfDayFromPG(t pgtype.Time) TimeOfDay {
	return TimeOfDay(t.Microseconds / int64(time.Minute/time.Microsecond))
}

func pgTimeOfDay(t TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t) * int64(time.Minute/time.Microsecond), Valid: true}
}
