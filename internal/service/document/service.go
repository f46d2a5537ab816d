package document

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/juristack/lawoffice-backend/internal/domain/document"
)

// Repository is the persistence collaborator for document metadata.
type Repository interface {
	Create(ctx context.Context, d *document.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*document.Document, error)
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]*document.Document, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*document.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CaseResolver resolves the client a case belongs to, for link-consistency
// checks when a document names both a case and a client.
type CaseResolver interface {
	CaseClient(ctx context.Context, caseID uuid.UUID) (uuid.UUID, error)
}

// CaseResolverFunc adapts a function to the CaseResolver interface.
type CaseResolverFunc func(ctx context.Context, caseID uuid.UUID) (uuid.UUID, error)

func (f CaseResolverFunc) CaseClient(ctx context.Context, caseID uuid.UUID) (uuid.UUID, error) {
	return f(ctx, caseID)
}

// Service validates and stores document metadata. File bytes are the upload
// layer's concern; only their metadata passes through here.
type Service struct {
	repo   Repository
	cases  CaseResolver
	policy document.FilePolicy
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a document service with the given upload policy.
func NewService(repo Repository, cases CaseResolver, policy document.FilePolicy, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cases:  cases,
		policy: policy,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Attach validates in and persists the document metadata. When a case is
// linked its owning client is resolved first so the consistency rule sees the
// stored link, not the submitted one.
func (s *Service) Attach(ctx context.Context, in document.Input) (*document.Document, error) {
	var caseClientID *uuid.UUID
	if in.CaseID != nil {
		owner, err := s.cases.CaseClient(ctx, *in.CaseID)
		if err != nil {
			return nil, err
		}
		caseClientID = &owner
	}

	d, err := document.New(in, caseClientID, s.policy, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("document attached",
		zap.String("document_id", d.ID.String()),
		zap.String("kind", string(d.Kind)),
		zap.Int64("size_bytes", d.File.SizeBytes))
	return d, nil
}

// Get retrieves document metadata by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByCase retrieves all documents linked to the given case.
func (s *Service) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*document.Document, error) {
	return s.repo.ListByCase(ctx, caseID)
}

// ListByClient retrieves all documents linked directly to the given client.
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*document.Document, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// Remove deletes document metadata by id.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("document removed", zap.String("document_id", id.String()))
	return nil
}
