package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
	"github.com/juristack/lawoffice-backend/internal/domain/values"
)

// FeeContract is an agreed fee arrangement for a case or client.
type FeeContract struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Total      values.Money `json:"total"`
	ValidUntil *time.Time   `json:"valid_until,omitempty"`
	CaseID     *uuid.UUID   `json:"case_id,omitempty"`
	ClientID   *uuid.UUID   `json:"client_id,omitempty"`
	Draft      bool         `json:"draft"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeeContractInput carries the raw fields of a fee-contract submission.
type FeeContractInput struct {
	Name       string
	Total      string
	ValidUntil *time.Time
	CaseID     *uuid.UUID
	ClientID   *uuid.UUID
	Draft      bool
}

// NewFeeContract validates in against the financial policy and now. The
// total must be strictly positive within the cap, and any validity date must
// sit strictly in the future.
func NewFeeContract(in FeeContractInput, caseClientID *uuid.UUID, policy Policy, now time.Time) (*FeeContract, error) {
	var fe validation.FieldErrors

	name, err := validation.RequiredText(in.Name, 3, 200)
	fe.Add("name", err)

	total, err := values.NewMoneyFromString(in.Total)
	fe.Add("total", err)
	if err == nil {
		if !total.IsPositive() {
			fe.Reject("total", validation.KindAmountTooLow, "total must be greater than zero")
		} else {
			fe.Add("total", validation.AmountInBounds(total.Amount(), decimal.Zero, policy.MaxAmount))
		}
	}

	if in.ValidUntil != nil && !in.ValidUntil.After(now) {
		fe.Reject("valid_until", validation.KindDateInPast, "validity date must be in the future")
	}

	fe.Add("case_id", validation.RequireOneOf(in.CaseID, in.ClientID))
	if in.CaseID != nil {
		fe.Add("client_id", validation.RequireConsistentLink(caseClientID, in.ClientID))
	}

	if err := fe.Err(); err != nil {
		return nil, err
	}

	return &FeeContract{
		ID:         uuid.New(),
		Name:       name,
		Total:      total,
		ValidUntil: in.ValidUntil,
		CaseID:     in.CaseID,
		ClientID:   in.ClientID,
		Draft:      in.Draft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
