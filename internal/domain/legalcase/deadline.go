package legalcase

import (
	"time"

	"github.com/google/uuid"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// Deadline is a dated procedural obligation attached to a case.
type Deadline struct {
	ID          uuid.UUID  `json:"id"`
	CaseID      uuid.UUID  `json:"case_id"`
	Description string     `json:"description"`
	DueAt       time.Time  `json:"due_at"`
	Done        bool       `json:"done"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeadlineInput carries the raw fields of a deadline submission.
type DeadlineInput struct {
	CaseID      uuid.UUID
	Description string
	DueAt       time.Time
	Done        bool
	CompletedAt *time.Time
}

// NewDeadline validates in against now. New deadlines cannot be due in the
// past; a completion date is required exactly when the deadline is marked
// done and can never sit in the future.
func NewDeadline(in DeadlineInput, now time.Time) (*Deadline, error) {
	var fe validation.FieldErrors

	if in.CaseID == uuid.Nil {
		fe.Reject("case_id", validation.KindMissingRequiredAssociation, "deadline must be linked to a case")
	}

	desc, err := validation.RequiredText(in.Description, 5, 500)
	fe.Add("description", err)

	if in.DueAt.IsZero() {
		fe.Reject("due_at", validation.KindRequired, "due date is required")
	} else {
		fe.Add("due_at", validation.DateNotPast(in.DueAt, now))
	}

	if in.Done && in.CompletedAt == nil {
		fe.Reject("completed_at", validation.KindRequired, "completion date is required when the deadline is done")
	}
	if !in.Done && in.CompletedAt != nil {
		fe.Reject("completed_at", validation.KindInconsistentLink, "completion date given but the deadline is not done")
	}
	if in.CompletedAt != nil {
		fe.Add("completed_at", validation.DateNotFuture(*in.CompletedAt, now))
	}

	if err := fe.Err(); err != nil {
		return nil, err
	}

	return &Deadline{
		ID:          uuid.New(),
		CaseID:      in.CaseID,
		Description: desc,
		DueAt:       in.DueAt,
		Done:        in.Done,
		CompletedAt: in.CompletedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Complete marks the deadline done at completedAt. The completion time may
// not be in the future.
func (d *Deadline) Complete(completedAt, now time.Time) error {
	if err := validation.DateNotFuture(completedAt, now); err != nil {
		var fe validation.FieldErrors
		fe.Add("completed_at", err)
		return fe.Err()
	}
	d.Done = true
	d.CompletedAt = &completedAt
	d.UpdatedAt = now
	return nil
}

// Overdue reports whether the deadline is past due and not done.
func (d *Deadline) Overdue(now time.Time) bool {
	return !d.Done && d.DueAt.Before(now)
}
