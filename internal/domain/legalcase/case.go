package legalcase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
	"github.com/juristack/lawoffice-backend/internal/domain/values"
)

// Status of a legal case.
type Status int

const (
	StatusActive Status = iota
	StatusSuspended
	StatusArchived
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusSuspended:
		return "suspended"
	case StatusArchived:
		return "archived"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ParseStatus maps the wire form back to a Status.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "active":
		return StatusActive, true
	case "suspended":
		return StatusSuspended, true
	case "archived":
		return StatusArchived, true
	case "closed":
		return StatusClosed, true
	default:
		return 0, false
	}
}

// Priority of a legal case.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ParsePriority maps the wire form back to a Priority.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "low":
		return PriorityLow, true
	case "normal":
		return PriorityNormal, true
	case "high":
		return PriorityHigh, true
	case "critical":
		return PriorityCritical, true
	default:
		return 0, false
	}
}

// Area is the practice area a case belongs to.
type Area string

const (
	AreaCivil          Area = "civil"
	AreaCriminal       Area = "criminal"
	AreaLabor          Area = "labor"
	AreaTax            Area = "tax"
	AreaAdministrative Area = "administrative"
	AreaFamily         Area = "family"
	AreaSocialSecurity Area = "social_security"
	AreaConsumer       Area = "consumer"
	AreaOther          Area = "other"
)

var areas = map[Area]bool{
	AreaCivil: true, AreaCriminal: true, AreaLabor: true, AreaTax: true,
	AreaAdministrative: true, AreaFamily: true, AreaSocialSecurity: true,
	AreaConsumer: true, AreaOther: true,
}

// Case is a legal process handled by the office, always linked to one client.
type Case struct {
	ID            uuid.UUID    `json:"id"`
	Number        string       `json:"number"`
	ClientID      uuid.UUID    `json:"client_id"`
	Area          Area         `json:"area"`
	Court         string       `json:"court,omitempty"`
	OpposingParty string       `json:"opposing_party,omitempty"`
	Subject       string       `json:"subject"`
	ClaimAmount   values.Money `json:"claim_amount"`
	Status        Status       `json:"status"`
	Priority      Priority     `json:"priority"`
	Active        bool         `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the raw form fields of a case submission.
type Input struct {
	Number        string
	ClientID      uuid.UUID
	Area          string
	Court         string
	OpposingParty string
	Subject       string
	ClaimAmount   string
	Status        string
	Priority      string
	Active        bool
}

// New validates in and returns the case. Docket-number uniqueness is the
// caller's responsibility via the persistence collaborator.
func New(in Input) (*Case, error) {
	var fe validation.FieldErrors

	number, err := validation.RequiredText(in.Number, 5, 50)
	fe.Add("number", err)

	if in.ClientID == uuid.Nil {
		fe.Reject("client_id", validation.KindMissingRequiredAssociation, "case must be linked to a client")
	}

	area := Area(in.Area)
	if !areas[area] {
		fe.Reject("area", validation.KindMalformed, "unknown practice area %q", in.Area)
	}

	if in.OpposingParty != "" {
		if _, err := validation.RequiredText(in.OpposingParty, 3, 200); err != nil {
			fe.Add("opposing_party", err)
		}
	}

	subject, err := validation.RequiredText(in.Subject, 3, 500)
	fe.Add("subject", err)

	claim := values.ZeroMoney()
	if in.ClaimAmount != "" {
		claim, err = values.NewMoneyFromString(in.ClaimAmount)
		fe.Add("claim_amount", err)
		if err == nil {
			// Claim amounts are informational but never negative.
			fe.Add("claim_amount", validation.AmountInBounds(
				claim.Amount(), decimal.Zero, decimal.RequireFromString("999999999999.99")))
		}
	}

	status := StatusActive
	if in.Status != "" {
		var ok bool
		if status, ok = ParseStatus(in.Status); !ok {
			fe.Reject("status", validation.KindMalformed, "unknown status %q", in.Status)
		}
	}

	priority := PriorityNormal
	if in.Priority != "" {
		var ok bool
		if priority, ok = ParsePriority(in.Priority); !ok {
			fe.Reject("priority", validation.KindMalformed, "unknown priority %q", in.Priority)
		}
	}

	if err := fe.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Case{
		ID:            uuid.New(),
		Number:        number,
		ClientID:      in.ClientID,
		Area:          area,
		Court:         in.Court,
		OpposingParty: in.OpposingParty,
		Subject:       subject,
		ClaimAmount:   claim,
		Status:        status,
		Priority:      priority,
		Active:        in.Active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Archive moves the case out of the active set.
func (c *Case) Archive() {
	c.Status = StatusArchived
	c.Active = false
	c.UpdatedAt = time.Now().UTC()
}
