package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainerrors "github.com/juristack/lawoffice-backend/internal/domain/errors"
	"github.com/juristack/lawoffice-backend/internal/domain/legalcase"
	"github.com/juristack/lawoffice-backend/internal/service/caseops"
)

// caseRepository implements the case service repository using PostgreSQL
type caseRepository struct {
	db *pgxpool.Pool
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *pgxpool.Pool) caseops.Repository {
	return &caseRepository{db: db}
}

const caseColumns = `
	id, number, client_id, area, court, opposing_party, subject,
	claim_amount, status, priority, active, created_at, updated_at
`

// Create inserts a new case
func (r *caseRepository) Create(ctx context.Context, c *legalcase.Case) error {
	query := `
		INSERT INTO cases (` + caseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		c.ID, c.Number, c.ClientID, string(c.Area), c.Court, c.OpposingParty,
		c.Subject, c.ClaimAmount, c.Status.String(), c.Priority.String(),
		c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

// GetByID retrieves a case by ID
func (r *caseRepository) GetByID(ctx context.Context, id uuid.UUID) (*legalcase.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`

	c, err := scanCase(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerrors.ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	return c, nil
}

// ListByClient retrieves the cases linked to a client, newest first
func (r *caseRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*legalcase.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE client_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	var out []*legalcase.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ExistsWithValue is the uniqueness collaborator for the docket number.
func (r *caseRepository) ExistsWithValue(ctx context.Context, field, value string, excludeID uuid.UUID) (bool, error) {
	if field != "number" {
		return false, fmt.Errorf("uniqueness check not supported for field %q", field)
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM cases WHERE number = $1 AND id <> $2)`
	if err := r.db.QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed uniqueness check on number: %w", err)
	}
	return exists, nil
}

// AddDeadline inserts a deadline attached to a case
func (r *caseRepository) AddDeadline(ctx context.Context, d *legalcase.Deadline) error {
	query := `
		INSERT INTO case_deadlines (
			id, case_id, description, due_at, done, completed_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		d.ID, d.CaseID, d.Description, d.DueAt, d.Done, d.CompletedAt, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add deadline: %w", err)
	}
	return nil
}

// AddUpdate inserts a progress entry attached to a case
func (r *caseRepository) AddUpdate(ctx context.Context, u *legalcase.Update) error {
	query := `
		INSERT INTO case_updates (
			id, case_id, kind, date, description, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		u.ID, u.CaseID, string(u.Kind), u.Date, u.Description, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add case update: %w", err)
	}
	return nil
}

func scanCase(row pgx.Row) (*legalcase.Case, error) {
	var c legalcase.Case
	var areaStr, statusStr, priorityStr string

	err := row.Scan(
		&c.ID, &c.Number, &c.ClientID, &areaStr, &c.Court, &c.OpposingParty,
		&c.Subject, &c.ClaimAmount, &statusStr, &priorityStr,
		&c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Area = legalcase.Area(areaStr)
	status, ok := legalcase.ParseStatus(statusStr)
	if !ok {
		return nil, fmt.Errorf("unknown case status %q", statusStr)
	}
	c.Status = status

	priority, ok := legalcase.ParsePriority(priorityStr)
	if !ok {
		return nil, fmt.Errorf("unknown case priority %q", priorityStr)
	}
	c.Priority = priority

	return &c, nil
}
