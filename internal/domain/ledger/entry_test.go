package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

var testPolicy = Policy{
	MaxAmount:       decimal.RequireFromString("999999999.99"),
	PastTolerance:   5 * 365 * 24 * time.Hour,
	FutureTolerance: 10 * 365 * 24 * time.Hour,
}

func validEntryInput(clientID uuid.UUID, now time.Time) Input {
	return Input{
		Kind:        "income",
		Description: "Honorários contratuais",
		Amount:      "2500.00",
		DueAt:       now.AddDate(0, 1, 0),
		ClientID:    &clientID,
	}
}

func TestNewEntry(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clientID := uuid.New()

	e, err := New(validEntryInput(clientID, now), nil, testPolicy, now)
	require.NoError(t, err)
	assert.Equal(t, KindIncome, e.Kind)
	assert.Equal(t, StatusPending, e.Status)
	assert.Equal(t, "2500.00", e.Amount.String())
}

func TestNewEntryRejections(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clientID := uuid.New()
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name     string
		mutate   func(*Input)
		field    string
		wantKind validation.Kind
	}{
		{
			name:     "zero amount",
			mutate:   func(in *Input) { in.Amount = "0" },
			field:    "amount",
			wantKind: validation.KindAmountTooLow,
		},
		{
			name:     "negative amount",
			mutate:   func(in *Input) { in.Amount = "-10" },
			field:    "amount",
			wantKind: validation.KindAmountTooLow,
		},
		{
			name:     "amount above the cap",
			mutate:   func(in *Input) { in.Amount = "1000000000.00" },
			field:    "amount",
			wantKind: validation.KindAmountTooHigh,
		},
		{
			name:     "malformed amount",
			mutate:   func(in *Input) { in.Amount = "abc" },
			field:    "amount",
			wantKind: validation.KindMalformed,
		},
		{
			name:     "due date too far in the past",
			mutate:   func(in *Input) { in.DueAt = now.AddDate(-6, 0, 0) },
			field:    "due_at",
			wantKind: validation.KindDateInPast,
		},
		{
			name:     "due date too far in the future",
			mutate:   func(in *Input) { in.DueAt = now.AddDate(11, 0, 0) },
			field:    "due_at",
			wantKind: validation.KindDateInFuture,
		},
		{
			name:     "paid status without payment date",
			mutate:   func(in *Input) { in.Status = "paid" },
			field:    "paid_at",
			wantKind: validation.KindRequired,
		},
		{
			name:     "payment date without paid status",
			mutate:   func(in *Input) { in.PaidAt = &yesterday },
			field:    "status",
			wantKind: validation.KindInconsistentLink,
		},
		{
			name: "payment date in the future",
			mutate: func(in *Input) {
				in.Status = "paid"
				in.PaidAt = &tomorrow
			},
			field:    "paid_at",
			wantKind: validation.KindDateInFuture,
		},
		{
			name: "neither case nor client",
			mutate: func(in *Input) {
				in.ClientID = nil
			},
			field:    "case_id",
			wantKind: validation.KindMissingRequiredAssociation,
		},
		{
			name:     "unknown kind",
			mutate:   func(in *Input) { in.Kind = "transfer" },
			field:    "kind",
			wantKind: validation.KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validEntryInput(clientID, now)
			tt.mutate(&in)

			_, err := New(in, nil, testPolicy, now)
			require.Error(t, err)

			var fe *validation.FieldErrors
			require.True(t, errors.As(err, &fe))
			byField := fe.ByField()
			require.Contains(t, byField, tt.field)
			assert.Equal(t, tt.wantKind, byField[tt.field][0].Kind)
		})
	}
}

func TestEntryInconsistentCaseClient(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clientID := uuid.New()
	caseID := uuid.New()
	otherClient := uuid.New()

	in := validEntryInput(clientID, now)
	in.CaseID = &caseID

	_, err := New(in, &otherClient, testPolicy, now)
	require.Error(t, err)

	var fe *validation.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, validation.KindInconsistentLink, fe.ByField()["client_id"][0].Kind)

	// Same client on both sides passes.
	_, err = New(in, &clientID, testPolicy, now)
	assert.NoError(t, err)
}

func TestEntryMarkPaid(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clientID := uuid.New()

	e, err := New(validEntryInput(clientID, now), nil, testPolicy, now)
	require.NoError(t, err)

	require.NoError(t, e.MarkPaid(now, now))
	assert.Equal(t, StatusPaid, e.Status)
	require.NotNil(t, e.PaidAt)

	assert.Error(t, e.MarkPaid(now.AddDate(0, 0, 1), now))
}

func TestBalance(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clientID := uuid.New()

	income, err := New(validEntryInput(clientID, now), nil, testPolicy, now)
	require.NoError(t, err)

	expenseIn := validEntryInput(clientID, now)
	expenseIn.Kind = "expense"
	expenseIn.Description = "Custas processuais"
	expenseIn.Amount = "500.00"
	expense, err := New(expenseIn, nil, testPolicy, now)
	require.NoError(t, err)

	canceledIn := validEntryInput(clientID, now)
	canceledIn.Amount = "9999.99"
	canceled, err := New(canceledIn, nil, testPolicy, now)
	require.NoError(t, err)
	canceled.Status = StatusCanceled

	total := Balance([]*Entry{income, expense, canceled})
	assert.Equal(t, "2000.00", total.String())
}

func TestNewFeeContract(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clientID := uuid.New()
	future := now.AddDate(0, 6, 0)

	fc, err := NewFeeContract(FeeContractInput{
		Name:       "Contrato de honorários",
		Total:      "12000.00",
		ValidUntil: &future,
		ClientID:   &clientID,
	}, nil, testPolicy, now)
	require.NoError(t, err)
	assert.Equal(t, "12000.00", fc.Total.String())

	_, err = NewFeeContract(FeeContractInput{
		Name:       "Contrato vencido",
		Total:      "12000.00",
		ValidUntil: &now,
		ClientID:   &clientID,
	}, nil, testPolicy, now)
	require.Error(t, err)

	var fe *validation.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, validation.KindDateInPast, fe.ByField()["valid_until"][0].Kind)
}
