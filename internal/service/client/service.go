package client

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/juristack/lawoffice-backend/internal/domain/client"
	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// Repository is the persistence collaborator for clients. ExistsWithValue is
// the uniqueness check consulted after field-level acceptance.
type Repository interface {
	Create(ctx context.Context, c *domain.Client) error
	Update(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.Client, error)
	ExistsWithValue(ctx context.Context, field, value string, excludeID uuid.UUID) (bool, error)
}

// Service coordinates client registration: field validation, uniqueness
// checks against stored records, and persistence.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a client service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Register validates in, verifies tax-ID and email uniqueness, and persists
// the new client. Validation rejections come back as *validation.FieldErrors
// with every failing field reported together.
func (s *Service) Register(ctx context.Context, in domain.Input) (*domain.Client, error) {
	c, err := domain.New(in)
	if err != nil {
		return nil, err
	}

	if err := s.checkUniqueness(ctx, c, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("client registered",
		zap.String("client_id", c.ID.String()),
		zap.String("kind", c.Kind.String()))
	return c, nil
}

// Update validates in against the stored client identified by id and
// persists the result. The record's own id is excluded from uniqueness
// checks.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in domain.Input) (*domain.Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Update(in); err != nil {
		return nil, err
	}

	if err := s.checkUniqueness(ctx, c, c.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("client updated", zap.String("client_id", c.ID.String()))
	return c, nil
}

// Get retrieves a client by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves clients, optionally only active ones.
func (s *Service) List(ctx context.Context, onlyActive bool) ([]*domain.Client, error) {
	return s.repo.List(ctx, onlyActive)
}

// Deactivate marks a client inactive without deleting its records.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Deactivate()
	return s.repo.Update(ctx, c)
}

// checkUniqueness consults the collaborator for both uniquely-constrained
// fields, aggregating duplicate rejections so a submission that clashes on
// tax ID and email reports both at once.
func (s *Service) checkUniqueness(ctx context.Context, c *domain.Client, excludeID uuid.UUID) error {
	var fe validation.FieldErrors

	checks := []struct {
		field string
		value string
	}{
		{"tax_id", c.TaxID.Digits()},
		{"email", c.Email.String()},
	}

	for _, chk := range checks {
		err := validation.CheckUnique(ctx, s.repo.ExistsWithValue, chk.field, chk.value, excludeID)
		if err == nil {
			continue
		}
		if validation.IsKind(err, validation.KindDuplicateValue) {
			fe.Add(chk.field, err)
			continue
		}
		// Infrastructure failure, not a rejection.
		return err
	}

	return fe.Err()
}
