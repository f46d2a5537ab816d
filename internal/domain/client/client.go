package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
	"github.com/juristack/lawoffice-backend/internal/domain/values"
)

// Kind distinguishes individual clients from organizations.
type Kind int

const (
	KindIndividual Kind = iota
	KindCompany
)

func (k Kind) String() string {
	switch k {
	case KindIndividual:
		return "individual"
	case KindCompany:
		return "company"
	default:
		return "unknown"
	}
}

// ParseKind maps the wire form back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "individual":
		return KindIndividual, true
	case "company":
		return KindCompany, true
	default:
		return 0, false
	}
}

// Client is a registered client of the office, individual or organization.
type Client struct {
	ID      uuid.UUID          `json:"id"`
	Name    string             `json:"name"`
	Kind    Kind               `json:"kind"`
	TaxID   values.TaxID       `json:"tax_id"`
	Email   values.Email       `json:"email"`
	Phone   values.PhoneNumber `json:"phone"`
	Address Address            `json:"address"`
	Notes   string             `json:"notes,omitempty"`
	Active  bool               `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Address holds the client's contact address. Every component is optional;
// present components are validated.
type Address struct {
	Street     string            `json:"street,omitempty"`
	City       string            `json:"city,omitempty"`
	State      values.State      `json:"state,omitempty"`
	PostalCode values.PostalCode `json:"postal_code,omitempty"`
}

// Input carries the raw form fields of a client submission.
type Input struct {
	Name       string
	Kind       string
	TaxID      string
	Email      string
	Phone      string
	Street     string
	City       string
	State      string
	PostalCode string
	Notes      string
	Active     bool
}

// New validates every field of in, collects all rejections together, and
// returns the client only when the whole submission is clean. The returned
// error is a *validation.FieldErrors on rejection.
func New(in Input) (*Client, error) {
	var fe validation.FieldErrors

	name, err := validation.RequiredText(in.Name, 2, 200)
	fe.Add("name", err)

	kind, ok := ParseKind(in.Kind)
	if !ok {
		fe.Reject("kind", validation.KindMalformed, "kind must be individual or company")
	}

	taxID, err := values.NewTaxID(in.TaxID)
	fe.Add("tax_id", err)
	if err == nil && ok {
		// The identifier form must agree with the declared client kind.
		if kind == KindIndividual && !taxID.IsIndividual() {
			fe.Reject("tax_id", validation.KindInconsistentLink, "individual clients require a CPF")
		}
		if kind == KindCompany && !taxID.IsCompany() {
			fe.Reject("tax_id", validation.KindInconsistentLink, "company clients require a CNPJ")
		}
	}

	email, err := values.NewEmail(in.Email)
	fe.Add("email", err)

	var phone values.PhoneNumber
	if in.Phone != "" {
		phone, err = values.NewPhoneNumber(in.Phone)
		fe.Add("phone", err)
	}

	var addr Address
	addr.Street = in.Street
	addr.City = in.City
	if in.State != "" {
		addr.State, err = values.NewState(in.State)
		fe.Add("state", err)
	}
	if in.PostalCode != "" {
		addr.PostalCode, err = values.NewPostalCode(in.PostalCode)
		fe.Add("postal_code", err)
	}

	if err := fe.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Client{
		ID:        uuid.New(),
		Name:      name,
		Kind:      kind,
		TaxID:     taxID,
		Email:     email,
		Phone:     phone,
		Address:   addr,
		Notes:     in.Notes,
		Active:    in.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update re-validates in and applies it to c, preserving identity and
// creation time.
func (c *Client) Update(in Input) error {
	updated, err := New(in)
	if err != nil {
		return err
	}

	updated.ID = c.ID
	updated.CreatedAt = c.CreatedAt
	*c = *updated
	return nil
}

// Deactivate marks the client inactive. Inactive clients keep their records
// but stop appearing in linkable-entity choices.
func (c *Client) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now().UTC()
}
