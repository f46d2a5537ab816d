package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/juristack/lawoffice-backend/internal/domain/appointment"
)

// Repository is the persistence collaborator for appointments.
type Repository interface {
	Create(ctx context.Context, a *appointment.Appointment) error
	Update(ctx context.Context, a *appointment.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]*appointment.Appointment, error)
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]*appointment.Appointment, error)
}

// CaseResolver resolves the client a case belongs to.
type CaseResolver interface {
	CaseClient(ctx context.Context, caseID uuid.UUID) (uuid.UUID, error)
}

// CaseResolverFunc adapts a function to the CaseResolver interface.
type CaseResolverFunc func(ctx context.Context, caseID uuid.UUID) (uuid.UUID, error)

func (f CaseResolverFunc) CaseClient(ctx context.Context, caseID uuid.UUID) (uuid.UUID, error) {
	return f(ctx, caseID)
}

// Service schedules appointments under the configured scheduling policy.
type Service struct {
	repo   Repository
	cases  CaseResolver
	policy appointment.Policy
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates an appointment service.
func NewService(repo Repository, cases CaseResolver, policy appointment.Policy, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cases:  cases,
		policy: policy,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Schedule validates in and persists the appointment.
func (s *Service) Schedule(ctx context.Context, in appointment.Input) (*appointment.Appointment, error) {
	var caseClientID *uuid.UUID
	if in.CaseID != nil {
		owner, err := s.cases.CaseClient(ctx, *in.CaseID)
		if err != nil {
			return nil, err
		}
		caseClientID = &owner
	}

	a, err := appointment.New(in, caseClientID, s.policy, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("appointment scheduled",
		zap.String("appointment_id", a.ID.String()),
		zap.Time("starts_at", a.StartsAt))
	return a, nil
}

// Get retrieves an appointment by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUpcoming retrieves appointments starting at or after now.
func (s *Service) ListUpcoming(ctx context.Context) ([]*appointment.Appointment, error) {
	return s.repo.ListUpcoming(ctx, s.now())
}

// ListByCase retrieves appointments linked to the given case.
func (s *Service) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*appointment.Appointment, error) {
	return s.repo.ListByCase(ctx, caseID)
}

// Confirm marks an appointment confirmed.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Confirm(s.now())
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Cancel marks an appointment canceled.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Cancel(s.now())
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("appointment canceled", zap.String("appointment_id", a.ID.String()))
	return a, nil
}
