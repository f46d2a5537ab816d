package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

var testPolicy = Policy{
	FutureHorizon:   2 * 365 * 24 * time.Hour,
	MaxDuration:     24 * time.Hour,
	MaxReminderLead: 7 * 24 * time.Hour,
}

func validApptInput(clientID uuid.UUID, now time.Time) Input {
	return Input{
		Title:        "Reunião com cliente",
		StartsAt:     now.AddDate(0, 0, 7),
		Duration:     time.Hour,
		ClientID:     &clientID,
		ReminderLead: 30 * time.Minute,
	}
}

func TestNewAppointment(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clientID := uuid.New()

	a, err := New(validApptInput(clientID, now), nil, testPolicy, now)
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, a.Status)
	assert.Equal(t, a.StartsAt.Add(time.Hour), a.EndsAt())
}

func TestNewAppointmentRejections(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clientID := uuid.New()

	tests := []struct {
		name     string
		mutate   func(*Input)
		field    string
		wantKind validation.Kind
	}{
		{
			name:     "starts in the past",
			mutate:   func(in *Input) { in.StartsAt = now.Add(-time.Hour) },
			field:    "starts_at",
			wantKind: validation.KindDateInPast,
		},
		{
			name:     "beyond the scheduling horizon",
			mutate:   func(in *Input) { in.StartsAt = now.AddDate(3, 0, 0) },
			field:    "starts_at",
			wantKind: validation.KindDateInFuture,
		},
		{
			name:     "zero duration",
			mutate:   func(in *Input) { in.Duration = 0 },
			field:    "duration",
			wantKind: validation.KindAmountTooLow,
		},
		{
			name:     "duration above the cap",
			mutate:   func(in *Input) { in.Duration = 25 * time.Hour },
			field:    "duration",
			wantKind: validation.KindAmountTooHigh,
		},
		{
			name:     "negative reminder lead",
			mutate:   func(in *Input) { in.ReminderLead = -time.Minute },
			field:    "reminder_lead",
			wantKind: validation.KindAmountTooLow,
		},
		{
			name:     "reminder lead above one week",
			mutate:   func(in *Input) { in.ReminderLead = 8 * 24 * time.Hour },
			field:    "reminder_lead",
			wantKind: validation.KindAmountTooHigh,
		},
		{
			name:     "no case nor client",
			mutate:   func(in *Input) { in.ClientID = nil },
			field:    "case_id",
			wantKind: validation.KindMissingRequiredAssociation,
		},
		{
			name:     "short title",
			mutate:   func(in *Input) { in.Title = "ab" },
			field:    "title",
			wantKind: validation.KindTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validApptInput(clientID, now)
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

func TestAppointmentInconsistentCase(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clientID := uuid.New()
	caseID := uuid.New()
	otherClient := uuid.New()

	in := validApptInput(clientID, now)
	in.CaseID = &caseID

	_, err := New(in, &otherClient, testPolicy, now)
	require.Error(t, err)

	var fe *validation.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, validation.KindInconsistentLink, fe.ByField()["client_id"][0].Kind)
}

func TestAppointmentOverlaps(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clientID := uuid.New()

	first, err := New(validApptInput(clientID, now), nil, testPolicy, now)
	require.NoError(t, err)

	in := validApptInput(clientID, now)
	in.StartsAt = first.StartsAt.Add(30 * time.Minute)
	second, err := New(in, nil, testPolicy, now)
	require.NoError(t, err)

	assert.True(t, first.Overlaps(second))
	assert.True(t, second.Overlaps(first))

	in.StartsAt = first.EndsAt()
	third, err := New(in, nil, testPolicy, now)
	require.NoError(t, err)
	assert.False(t, first.Overlaps(third))
}

func TestAppointmentStatusTransitions(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clientID := uuid.New()

	a, err := New(validApptInput(clientID, now), nil, testPolicy, now)
	require.NoError(t, err)

	a.Confirm(now)
	assert.Equal(t, StatusConfirmed, a.Status)

	a.Cancel(now)
	assert.Equal(t, StatusCanceled, a.Status)
}
