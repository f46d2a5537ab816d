package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainerrors "github.com/juristack/lawoffice-backend/internal/domain/errors"
	"github.com/juristack/lawoffice-backend/internal/domain/ledger"
	ledgersvc "github.com/juristack/lawoffice-backend/internal/service/ledger"
)

// ledgerRepository implements the ledger service repository using PostgreSQL
type ledgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *pgxpool.Pool) ledgersvc.Repository {
	return &ledgerRepository{db: db}
}

const entryColumns = `
	id, kind, description, amount, due_at, paid_at, status,
	case_id, client_id, category_id, notes, created_at, updated_at
`

// CreateEntry inserts a new ledger entry
func (r *ledgerRepository) CreateEntry(ctx context.Context, e *ledger.Entry) error {
	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		e.ID, e.Kind.String(), e.Description, e.Amount, e.DueAt, e.PaidAt,
		string(e.Status), e.CaseID, e.ClientID, e.CategoryID, e.Notes,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return nil
}

// UpdateEntry persists changes to an existing ledger entry
func (r *ledgerRepository) UpdateEntry(ctx context.Context, e *ledger.Entry) error {
	query := `
		UPDATE ledger_entries SET
			kind = $2, description = $3, amount = $4, due_at = $5, paid_at = $6,
			status = $7, case_id = $8, client_id = $9, category_id = $10,
			notes = $11, updated_at = $12
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		e.ID, e.Kind.String(), e.Description, e.Amount, e.DueAt, e.PaidAt,
		string(e.Status), e.CaseID, e.ClientID, e.CategoryID, e.Notes,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrEntryNotFound
	}
	return nil
}

// GetEntryByID retrieves a ledger entry by ID
func (r *ledgerRepository) GetEntryByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE id = $1`

	e, err := scanEntry(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerrors.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	return e, nil
}

// ListEntriesByCase retrieves entries linked to a case by due date
func (r *ledgerRepository) ListEntriesByCase(ctx context.Context, caseID uuid.UUID) ([]*ledger.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE case_id = $1 ORDER BY due_at`
	return r.listEntries(ctx, query, caseID)
}

// ListEntriesByClient retrieves entries linked directly to a client by due date
func (r *ledgerRepository) ListEntriesByClient(ctx context.Context, clientID uuid.UUID) ([]*ledger.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE client_id = $1 ORDER BY due_at`
	return r.listEntries(ctx, query, clientID)
}

// CreateFeeContract inserts a new fee contract
func (r *ledgerRepository) CreateFeeContract(ctx context.Context, fc *ledger.FeeContract) error {
	query := `
		INSERT INTO fee_contracts (
			id, name, total, valid_until, case_id, client_id, draft,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		fc.ID, fc.Name, fc.Total, fc.ValidUntil, fc.CaseID, fc.ClientID,
		fc.Draft, fc.CreatedAt, fc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create fee contract: %w", err)
	}
	return nil
}

func (r *ledgerRepository) listEntries(ctx context.Context, query string, arg any) ([]*ledger.Entry, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var out []*ledger.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEntry(row pgx.Row) (*ledger.Entry, error) {
	var e ledger.Entry
	var kindStr, statusStr string

	err := row.Scan(
		&e.ID, &kindStr, &e.Description, &e.Amount, &e.DueAt, &e.PaidAt,
		&statusStr, &e.CaseID, &e.ClientID, &e.CategoryID, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	kind, ok := ledger.ParseKind(kindStr)
	if !ok {
		return nil, fmt.Errorf("unknown ledger entry kind %q", kindStr)
	}
	e.Kind = kind
	e.Status = ledger.Status(statusStr)
	return &e, nil
}
