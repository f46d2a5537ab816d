package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juristack/lawoffice-backend/internal/domain/document"
	domainerrors "github.com/juristack/lawoffice-backend/internal/domain/errors"
	documentsvc "github.com/juristack/lawoffice-backend/internal/service/document"
)

// documentRepository implements the document service repository using PostgreSQL
type documentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) documentsvc.Repository {
	return &documentRepository{db: db}
}

const documentColumns = `
	id, name, kind, case_id, client_id, category_id, confidential, expires_at,
	filename, content_type, size_bytes, created_at, updated_at
`

// Create inserts document metadata
func (r *documentRepository) Create(ctx context.Context, d *document.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		d.ID, d.Name, string(d.Kind), d.CaseID, d.ClientID, d.CategoryID,
		d.Confidential, d.ExpiresAt,
		d.File.Filename, d.File.ContentType, d.File.SizeBytes,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// GetByID retrieves document metadata by ID
func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	d, err := scanDocument(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return d, nil
}

// ListByCase retrieves documents linked to a case, newest first
func (r *documentRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*document.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE case_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, caseID)
}

// ListByClient retrieves documents linked directly to a client, newest first
func (r *documentRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*document.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE client_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, clientID)
}

// Delete removes document metadata by ID
func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepository) list(ctx context.Context, query string, arg any) ([]*document.Document, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var out []*document.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDocument(row pgx.Row) (*document.Document, error) {
	var d document.Document
	var kindStr string

	err := row.Scan(
		&d.ID, &d.Name, &kindStr, &d.CaseID, &d.ClientID, &d.CategoryID,
		&d.Confidential, &d.ExpiresAt,
		&d.File.Filename, &d.File.ContentType, &d.File.SizeBytes,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.Kind = document.Kind(kindStr)
	return &d, nil
}
