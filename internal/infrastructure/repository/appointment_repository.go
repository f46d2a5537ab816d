package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juristack/lawoffice-backend/internal/domain/appointment"
	domainerrors "github.com/juristack/lawoffice-backend/internal/domain/errors"
	appointmentsvc "github.com/juristack/lawoffice-backend/internal/service/appointment"
)

// appointmentRepository implements the appointment service repository using PostgreSQL
type appointmentRepository struct {
	db *pgxpool.Pool
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *pgxpool.Pool) appointmentsvc.Repository {
	return &appointmentRepository{db: db}
}

const appointmentColumns = `
	id, title, starts_at, duration_minutes, location, case_id, client_id,
	reminder_lead_minutes, status, notes, created_at, updated_at
`

// Create inserts a new appointment. Durations are stored as whole minutes.
func (r *appointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		a.ID, a.Title, a.StartsAt, int(a.Duration.Minutes()), a.Location,
		a.CaseID, a.ClientID, int(a.ReminderLead.Minutes()),
		a.Status.String(), a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// Update persists changes to an existing appointment
func (r *appointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	query := `
		UPDATE appointments SET
			title = $2, starts_at = $3, duration_minutes = $4, location = $5,
			case_id = $6, client_id = $7, reminder_lead_minutes = $8,
			status = $9, notes = $10, updated_at = $11
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		a.ID, a.Title, a.StartsAt, int(a.Duration.Minutes()), a.Location,
		a.CaseID, a.ClientID, int(a.ReminderLead.Minutes()),
		a.Status.String(), a.Notes, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrAppointmentNotFound
	}
	return nil
}

// GetByID retrieves an appointment by ID
func (r *appointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	a, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return a, nil
}

// ListUpcoming retrieves non-canceled appointments starting at or after from
func (r *appointmentRepository) ListUpcoming(ctx context.Context, from time.Time) ([]*appointment.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE starts_at >= $1 AND status <> 'canceled'
		ORDER BY starts_at`
	return r.list(ctx, query, from)
}

// ListByCase retrieves appointments linked to a case in start order
func (r *appointmentRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*appointment.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE case_id = $1 ORDER BY starts_at`
	return r.list(ctx, query, caseID)
}

func (r *appointmentRepository) list(ctx context.Context, query string, arg any) ([]*appointment.Appointment, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var out []*appointment.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(row pgx.Row) (*appointment.Appointment, error) {
	var a appointment.Appointment
	var durationMin, reminderMin int
	var statusStr string

	err := row.Scan(
		&a.ID, &a.Title, &a.StartsAt, &durationMin, &a.Location,
		&a.CaseID, &a.ClientID, &reminderMin,
		&statusStr, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Duration = time.Duration(durationMin) * time.Minute
	a.ReminderLead = time.Duration(reminderMin) * time.Minute

	status, ok := appointment.ParseStatus(statusStr)
	if !ok {
		return nil, fmt.Errorf("unknown appointment status %q", statusStr)
	}
	a.Status = status
	return &a, nil
}
