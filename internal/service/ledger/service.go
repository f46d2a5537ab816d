package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/juristack/lawoffice-backend/internal/domain/ledger"
	"github.com/juristack/lawoffice-backend/internal/domain/values"
)

// Repository is the persistence collaborator for ledger entries and fee
// contracts.
type Repository interface {
	CreateEntry(ctx context.Context, e *ledger.Entry) error
	UpdateEntry(ctx context.Context, e *ledger.Entry) error
	GetEntryByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error)
	ListEntriesByCase(ctx context.Context, caseID uuid.UUID) ([]*ledger.Entry, error)
	ListEntriesByClient(ctx context.Context, clientID uuid.UUID) ([]*ledger.Entry, error)
	CreateFeeContract(ctx context.Context, fc *ledger.FeeContract) error
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

// Service records financial movements under the configured financial policy.
type Service struct {
	repo   Repository
	cases  CaseResolver
	policy ledger.Policy
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a ledger service.
func NewService(repo Repository, cases CaseResolver, policy ledger.Policy, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cases:  cases,
		policy: policy,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) resolveCaseClient(ctx context.Context, caseID *uuid.UUID) (*uuid.UUID, error) {
	if caseID == nil {
		return nil, nil
	}
	owner, err := s.cases.CaseClient(ctx, *caseID)
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

// Record validates in and persists the new entry.
func (s *Service) Record(ctx context.Context, in ledger.Input) (*ledger.Entry, error) {
	caseClientID, err := s.resolveCaseClient(ctx, in.CaseID)
	if err != nil {
		return nil, err
	}

	e, err := ledger.New(in, caseClientID, s.policy, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("ledger entry recorded",
		zap.String("entry_id", e.ID.String()),
		zap.String("kind", e.Kind.String()),
		zap.String("amount", e.Amount.String()))
	return e, nil
}

// MarkPaid records the payment of an existing entry.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (*ledger.Entry, error) {
	e, err := s.repo.GetEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := e.MarkPaid(paidAt, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateEntry(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("ledger entry paid",
		zap.String("entry_id", e.ID.String()),
		zap.Time("paid_at", paidAt))
	return e, nil
}

// ListByCase retrieves entries linked to the given case.
func (s *Service) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*ledger.Entry, error) {
	return s.repo.ListEntriesByCase(ctx, caseID)
}

// ListByClient retrieves entries linked directly to the given client.
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*ledger.Entry, error) {
	return s.repo.ListEntriesByClient(ctx, clientID)
}

// CaseBalance sums the case's entries with expenses negated, skipping
// canceled entries.
func (s *Service) CaseBalance(ctx context.Context, caseID uuid.UUID) (values.Money, error) {
	entries, err := s.repo.ListEntriesByCase(ctx, caseID)
	if err != nil {
		return values.ZeroMoney(), err
	}
	return ledger.Balance(entries), nil
}

// Contract validates and persists a fee contract.
func (s *Service) Contract(ctx context.Context, in ledger.FeeContractInput) (*ledger.FeeContract, error) {
	caseClientID, err := s.resolveCaseClient(ctx, in.CaseID)
	if err != nil {
		return nil, err
	}

	fc, err := ledger.NewFeeContract(in, caseClientID, s.policy, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateFeeContract(ctx, fc); err != nil {
		return nil, err
	}

	s.logger.Info("fee contract recorded", zap.String("contract_id", fc.ID.String()))
	return fc, nil
}
