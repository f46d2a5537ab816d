package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
	"github.com/juristack/lawoffice-backend/internal/domain/values"
)

// Policy holds the caller-supplied financial limits. The original office
// rules cap amounts at 999,999,999.99 and tolerate due dates five years back
// and ten years out; all three are configuration.
type Policy struct {
	MaxAmount       decimal.Decimal
	PastTolerance   time.Duration
	FutureTolerance time.Duration
}

// Kind distinguishes income from expense entries.
type Kind int

const (
	KindIncome Kind = iota
	KindExpense
)

func (k Kind) String() string {
	switch k {
	case KindIncome:
		return "income"
	case KindExpense:
		return "expense"
	default:
		return "unknown"
	}
}

// ParseKind maps the wire form back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "income":
		return KindIncome, true
	case "expense":
		return KindExpense, true
	default:
		return 0, false
	}
}

// Status of a ledger entry.
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusOverdue  Status = "overdue"
	StatusCanceled Status = "canceled"
)

var statuses = map[Status]bool{
	StatusPending: true, StatusPaid: true, StatusOverdue: true, StatusCanceled: true,
}

// Entry is a single financial movement linked to a case, a client, or both.
type Entry struct {
	ID          uuid.UUID    `json:"id"`
	Kind        Kind         `json:"kind"`
	Description string       `json:"description"`
	Amount      values.Money `json:"amount"`
	DueAt       time.Time    `json:"due_at"`
	PaidAt      *time.Time   `json:"paid_at,omitempty"`
	Status      Status       `json:"status"`
	CaseID      *uuid.UUID   `json:"case_id,omitempty"`
	ClientID    *uuid.UUID   `json:"client_id,omitempty"`
	CategoryID  *uuid.UUID   `json:"category_id,omitempty"`
	Notes       string       `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the raw fields of a ledger-entry submission. caseClientID is
// the client of the linked case, resolved by the caller.
type Input struct {
	Kind        string
	Description string
	Amount      string
	DueAt       time.Time
	PaidAt      *time.Time
	Status      string
	CaseID      *uuid.UUID
	ClientID    *uuid.UUID
	CategoryID  *uuid.UUID
	Notes       string
}

// New validates in against the financial policy and now. Amounts must be
// strictly positive and within the configured cap; a payment date is
// required exactly when the status is paid and can never sit in the future.
func New(in Input, caseClientID *uuid.UUID, policy Policy, now time.Time) (*Entry, error) {
	var fe validation.FieldErrors

	kind, ok := ParseKind(in.Kind)
	if !ok {
		fe.Reject("kind", validation.KindMalformed, "kind must be income or expense")
	}

	desc, err := validation.RequiredText(in.Description, 3, 200)
	fe.Add("description", err)

	var amount values.Money
	amount, err = values.NewMoneyFromString(in.Amount)
	fe.Add("amount", err)
	if err == nil {
		if !amount.IsPositive() {
			fe.Reject("amount", validation.KindAmountTooLow, "amount must be greater than zero")
		} else {
			fe.Add("amount", validation.AmountInBounds(amount.Amount(), decimal.Zero, policy.MaxAmount))
		}
	}

	if in.DueAt.IsZero() {
		fe.Reject("due_at", validation.KindRequired, "due date is required")
	} else {
		fe.Add("due_at", validation.DateWithinPast(in.DueAt, now, policy.PastTolerance))
		fe.Add("due_at", validation.DateWithinFuture(in.DueAt, now, policy.FutureTolerance))
	}

	status := StatusPending
	if in.Status != "" {
		status = Status(in.Status)
		if !statuses[status] {
			fe.Reject("status", validation.KindMalformed, "unknown status %q", in.Status)
		}
	}

	if in.PaidAt != nil {
		fe.Add("paid_at", validation.DateNotFuture(*in.PaidAt, now))
		fe.Add("paid_at", validation.DateWithinPast(*in.PaidAt, now, policy.PastTolerance))
		if status != StatusPaid {
			fe.Reject("status", validation.KindInconsistentLink, "status must be paid when a payment date is given")
		}
	} else if status == StatusPaid {
		fe.Reject("paid_at", validation.KindRequired, "payment date is required when the status is paid")
	}

	fe.Add("case_id", validation.RequireOneOf(in.CaseID, in.ClientID))
	if in.CaseID != nil {
		fe.Add("client_id", validation.RequireConsistentLink(caseClientID, in.ClientID))
	}

	if err := fe.Err(); err != nil {
		return nil, err
	}

	return &Entry{
		ID:          uuid.New(),
		Kind:        kind,
		Description: desc,
		Amount:      amount,
		DueAt:       in.DueAt,
		PaidAt:      in.PaidAt,
		Status:      status,
		CaseID:      in.CaseID,
		ClientID:    in.ClientID,
		CategoryID:  in.CategoryID,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MarkPaid records the payment of a pending entry.
func (e *Entry) MarkPaid(paidAt, now time.Time) error {
	var fe validation.FieldErrors
	fe.Add("paid_at", validation.DateNotFuture(paidAt, now))
	if err := fe.Err(); err != nil {
		return err
	}
	e.Status = StatusPaid
	e.PaidAt = &paidAt
	e.UpdatedAt = now
	return nil
}

// Signed returns the amount with expenses negated, for balance sums.
func (e *Entry) Signed() values.Money {
	if e.Kind == KindExpense {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Balance sums entries with expenses negated. Canceled entries are skipped.
func Balance(entries []*Entry) values.Money {
	total := values.ZeroMoney()
	for _, e := range entries {
		if e.Status == StatusCanceled {
			continue
		}
		total = total.Add(e.Signed())
	}
	return total
}
