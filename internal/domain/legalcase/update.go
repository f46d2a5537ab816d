package legalcase

import (
	"time"

	"github.com/google/uuid"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// UpdateKind classifies a progress entry on a case.
type UpdateKind string

const (
	UpdateOrder    UpdateKind = "order"
	UpdateRuling   UpdateKind = "ruling"
	UpdateHearing  UpdateKind = "hearing"
	UpdatePetition UpdateKind = "petition"
	UpdateAppeal   UpdateKind = "appeal"
	UpdateDecision UpdateKind = "decision"
	UpdateOther    UpdateKind = "other"
)

var updateKinds = map[UpdateKind]bool{
	UpdateOrder: true, UpdateRuling: true, UpdateHearing: true,
	UpdatePetition: true, UpdateAppeal: true, UpdateDecision: true,
	UpdateOther: true,
}

// Update is a dated progress entry recorded against a case.
type Update struct {
	ID          uuid.UUID  `json:"id"`
	CaseID      uuid.UUID  `json:"case_id"`
	Kind        UpdateKind `json:"kind"`
	Date        time.Time  `json:"date"`
	Description string     `json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

// UpdateInput carries the raw fields of a progress-entry submission.
type UpdateInput struct {
	CaseID      uuid.UUID
	Kind        string
	Date        time.Time
	Description string
}

// NewUpdate validates in against now. Progress cannot be recorded with a
// future date.
func NewUpdate(in UpdateInput, now time.Time) (*Update, error) {
	var fe validation.FieldErrors

	if in.CaseID == uuid.Nil {
		fe.Reject("case_id", validation.KindMissingRequiredAssociation, "progress entry must be linked to a case")
	}

	kind := UpdateKind(in.Kind)
	if !updateKinds[kind] {
		fe.Reject("kind", validation.KindMalformed, "unknown progress kind %q", in.Kind)
	}

	if in.Date.IsZero() {
		fe.Reject("date", validation.KindRequired, "date is required")
	} else {
		fe.Add("date", validation.DateNotFuture(in.Date, now))
	}

	desc, err := validation.RequiredText(in.Description, 5, 2000)
	fe.Add("description", err)

	if err := fe.Err(); err != nil {
		return nil, err
	}

	return &Update{
		ID:          uuid.New(),
		CaseID:      in.CaseID,
		Kind:        kind,
		Date:        in.Date,
		Description: desc,
		CreatedAt:   now,
	}, nil
}
