package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// Policy holds the caller-supplied scheduling limits. The original office
// rules cap scheduling two years out, meetings at 24 hours, and reminders at
// one week, but these are configuration, not constants of the domain.
type Policy struct {
	FutureHorizon   time.Duration
	MaxDuration     time.Duration
	MaxReminderLead time.Duration
}

// Status of an appointment.
type Status int

const (
	StatusScheduled Status = iota
	StatusConfirmed
	StatusDone
	StatusCanceled
)

func (s Status) String() string {
	switch s {
	case StatusScheduled:
		return "scheduled"
	case StatusConfirmed:
		return "confirmed"
	case StatusDone:
		return "done"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// ParseStatus maps the wire form back to a Status.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "scheduled":
		return StatusScheduled, true
	case "confirmed":
		return StatusConfirmed, true
	case "done":
		return StatusDone, true
	case "canceled":
		return StatusCanceled, true
	default:
		return 0, false
	}
}

// Appointment is a calendar entry linked to a case, a client, or both.
type Appointment struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	StartsAt     time.Time     `json:"starts_at"`
	Duration     time.Duration `json:"duration"`
	Location     string        `json:"location,omitempty"`
	CaseID       *uuid.UUID    `json:"case_id,omitempty"`
	ClientID     *uuid.UUID    `json:"client_id,omitempty"`
	ReminderLead time.Duration `json:"reminder_lead"`
	Status       Status        `json:"status"`
	Notes        string        `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the raw fields of an appointment submission. caseClientID is
// the client of the linked case, resolved by the caller.
type Input struct {
	Title        string
	StartsAt     time.Time
	Duration     time.Duration
	Location     string
	CaseID       *uuid.UUID
	ClientID     *uuid.UUID
	ReminderLead time.Duration
	Notes        string
}

// New validates in against the scheduling policy and now. New appointments
// cannot start in the past nor beyond the configured horizon.
func New(in Input, caseClientID *uuid.UUID, policy Policy, now time.Time) (*Appointment, error) {
	var fe validation.FieldErrors

	title, err := validation.RequiredText(in.Title, 3, 200)
	fe.Add("title", err)

	if in.StartsAt.IsZero() {
		fe.Reject("starts_at", validation.KindRequired, "start time is required")
	} else {
		fe.Add("starts_at", validation.DateNotPast(in.StartsAt, now))
		fe.Add("starts_at", validation.DateWithinFuture(in.StartsAt, now, policy.FutureHorizon))
	}

	if in.Duration < time.Minute {
		fe.Reject("duration", validation.KindAmountTooLow, "duration must be at least one minute")
	} else if in.Duration > policy.MaxDuration {
		fe.Reject("duration", validation.KindAmountTooHigh, "duration must not exceed %s", policy.MaxDuration)
	}

	if in.ReminderLead < 0 {
		fe.Reject("reminder_lead", validation.KindAmountTooLow, "reminder lead must not be negative")
	} else if in.ReminderLead > policy.MaxReminderLead {
		fe.Reject("reminder_lead", validation.KindAmountTooHigh, "reminder lead must not exceed %s", policy.MaxReminderLead)
	}

	fe.Add("case_id", validation.RequireOneOf(in.CaseID, in.ClientID))
	if in.CaseID != nil {
		fe.Add("client_id", validation.RequireConsistentLink(caseClientID, in.ClientID))
	}

	if err := fe.Err(); err != nil {
		return nil, err
	}

	return &Appointment{
		ID:           uuid.New(),
		Title:        title,
		StartsAt:     in.StartsAt,
		Duration:     in.Duration,
		Location:     in.Location,
		CaseID:       in.CaseID,
		ClientID:     in.ClientID,
		ReminderLead: in.ReminderLead,
		Status:       StatusScheduled,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// EndsAt returns the scheduled end time.
func (a *Appointment) EndsAt() time.Time {
	return a.StartsAt.Add(a.Duration)
}

// Overlaps reports whether two appointments share any time.
func (a *Appointment) Overlaps(other *Appointment) bool {
	return a.StartsAt.Before(other.EndsAt()) && other.StartsAt.Before(a.EndsAt())
}

// Cancel marks the appointment canceled.
func (a *Appointment) Cancel(now time.Time) {
	a.Status = StatusCanceled
	a.UpdatedAt = now
}

// Confirm marks the appointment confirmed.
func (a *Appointment) Confirm(now time.Time) {
	a.Status = StatusConfirmed
	a.UpdatedAt = now
}
