package caseops

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainerrors "github.com/juristack/lawoffice-backend/internal/domain/errors"
	"github.com/juristack/lawoffice-backend/internal/domain/legalcase"
	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// Repository is the persistence collaborator for cases and their attached
// deadlines and progress entries.
type Repository interface {
	Create(ctx context.Context, c *legalcase.Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*legalcase.Case, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*legalcase.Case, error)
	ExistsWithValue(ctx context.Context, field, value string, excludeID uuid.UUID) (bool, error)
	AddDeadline(ctx context.Context, d *legalcase.Deadline) error
	AddUpdate(ctx context.Context, u *legalcase.Update) error
}

// ClientChecker resolves whether a client exists and can take new cases.
type ClientChecker interface {
	ClientActive(ctx context.Context, id uuid.UUID) (bool, error)
}

// ClientCheckerFunc adapts a function to the ClientChecker interface.
type ClientCheckerFunc func(ctx context.Context, id uuid.UUID) (bool, error)

func (f ClientCheckerFunc) ClientActive(ctx context.Context, id uuid.UUID) (bool, error) {
	return f(ctx, id)
}

// Service coordinates case intake and the recording of deadlines and
// progress entries against existing cases.
type Service struct {
	repo    Repository
	clients ClientChecker
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a case service.
func NewService(repo Repository, clients ClientChecker, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		clients: clients,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Open validates in, verifies the linked client is registered and active,
// checks docket-number uniqueness, and persists the new case.
func (s *Service) Open(ctx context.Context, in legalcase.Input) (*legalcase.Case, error) {
	c, err := legalcase.New(in)
	if err != nil {
		return nil, err
	}

	active, err := s.clients.ClientActive(ctx, c.ClientID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, domainerrors.ErrClientInactive
	}

	if err := validation.CheckUnique(ctx, s.repo.ExistsWithValue, "number", c.Number, uuid.Nil); err != nil {
		if validation.IsKind(err, validation.KindDuplicateValue) {
			var fe validation.FieldErrors
			fe.Add("number", err)
			return nil, fe.Err()
		}
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("case opened",
		zap.String("case_id", c.ID.String()),
		zap.String("number", c.Number),
		zap.String("area", string(c.Area)))
	return c, nil
}

// Get retrieves a case by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*legalcase.Case, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByClient retrieves all cases linked to the given client.
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*legalcase.Case, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// RecordDeadline validates and attaches a new deadline to an existing case.
// The case is resolved first so a dangling case id fails as not-found rather
// than as a foreign-key violation.
func (s *Service) RecordDeadline(ctx context.Context, in legalcase.DeadlineInput) (*legalcase.Deadline, error) {
	if _, err := s.repo.GetByID(ctx, in.CaseID); err != nil {
		return nil, err
	}

	d, err := legalcase.NewDeadline(in, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddDeadline(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("deadline recorded",
		zap.String("case_id", d.CaseID.String()),
		zap.Time("due_at", d.DueAt))
	return d, nil
}

// RecordUpdate validates and attaches a new progress entry to an existing
// case.
func (s *Service) RecordUpdate(ctx context.Context, in legalcase.UpdateInput) (*legalcase.Update, error) {
	if _, err := s.repo.GetByID(ctx, in.CaseID); err != nil {
		return nil, err
	}

	u, err := legalcase.NewUpdate(in, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddUpdate(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("case update recorded",
		zap.String("case_id", u.CaseID.String()),
		zap.String("kind", string(u.Kind)))
	return u, nil
}
