package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juristack/lawoffice-backend/internal/domain/client"
	domainerrors "github.com/juristack/lawoffice-backend/internal/domain/errors"
	clientsvc "github.com/juristack/lawoffice-backend/internal/service/client"
)

// clientRepository implements the client service repository using PostgreSQL
type clientRepository struct {
	db *pgxpool.Pool
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *pgxpool.Pool) clientsvc.Repository {
	return &clientRepository{db: db}
}

const clientColumns = `
	id, name, kind, tax_id, email, phone,
	street, city, state, postal_code,
	notes, active, created_at, updated_at
`

// Create inserts a new client
func (r *clientRepository) Create(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Kind.String(), c.TaxID, c.Email, c.Phone,
		c.Address.Street, c.Address.City, c.Address.State, c.Address.PostalCode,
		c.Notes, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// Update persists changes to an existing client
func (r *clientRepository) Update(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients SET
			name = $2, kind = $3, tax_id = $4, email = $5, phone = $6,
			street = $7, city = $8, state = $9, postal_code = $10,
			notes = $11, active = $12, updated_at = $13
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Kind.String(), c.TaxID, c.Email, c.Phone,
		c.Address.Street, c.Address.City, c.Address.State, c.Address.PostalCode,
		c.Notes, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrClientNotFound
	}
	return nil
}

// GetByID retrieves a client by ID
func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerrors.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// List retrieves clients ordered by name, optionally only active ones
func (r *clientRepository) List(ctx context.Context, onlyActive bool) ([]*client.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var out []*client.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ExistsWithValue is the uniqueness collaborator: it reports whether a
// client other than excludeID already holds value in the named field. Only
// the uniquely-constrained columns are accepted.
func (r *clientRepository) ExistsWithValue(ctx context.Context, field, value string, excludeID uuid.UUID) (bool, error) {
	switch field {
	case "tax_id", "email":
	default:
		return false, fmt.Errorf("uniqueness check not supported for field %q", field)
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM clients WHERE %s = $1 AND id <> $2)`, field)

	var exists bool
	if err := r.db.QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed uniqueness check on %s: %w", field, err)
	}
	return exists, nil
}

func scanClient(row pgx.Row) (*client.Client, error) {
	var c client.Client
	var kindStr string

	err := row.Scan(
		&c.ID, &c.Name, &kindStr, &c.TaxID, &c.Email, &c.Phone,
		&c.Address.Street, &c.Address.City, &c.Address.State, &c.Address.PostalCode,
		&c.Notes, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	kind, ok := client.ParseKind(kindStr)
	if !ok {
		return nil, fmt.Errorf("unknown client kind %q", kindStr)
	}
	c.Kind = kind
	return &c, nil
}
