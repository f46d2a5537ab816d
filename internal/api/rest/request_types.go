package rest

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/juristack/lawoffice-backend/internal/domain/appointment"
	"github.com/juristack/lawoffice-backend/internal/domain/client"
	"github.com/juristack/lawoffice-backend/internal/domain/document"
	"github.com/juristack/lawoffice-backend/internal/domain/ledger"
	"github.com/juristack/lawoffice-backend/internal/domain/legalcase"
	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// validate checks DTO shape (presence, enum membership) before the domain
// validators look at content. Field names in violations use the json tag.
var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate binds the JSON body into dst and runs struct-tag
// validation, reporting tag violations as field rejections.
func decodeAndValidate(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var fe validation.FieldErrors
		fe.Reject("body", validation.KindMalformed, "invalid JSON body: %v", err)
		return fe.Err()
	}

	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var fe validation.FieldErrors
	for _, v := range verrs {
		kind := validation.KindMalformed
		if v.Tag() == "required" {
			kind = validation.KindRequired
		}
		fe.Reject(v.Field(), kind, "failed %q constraint", v.Tag())
	}
	return fe.Err()
}

func init() {
	// Violations name fields by their json tag so responses match the wire.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// createClientRequest is the submission body for client registration.
type createClientRequest struct {
	Name       string `json:"name" validate:"required"`
	Kind       string `json:"kind" validate:"required,oneof=individual company"`
	TaxID      string `json:"tax_id" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Notes      string `json:"notes"`
}

func (req createClientRequest) toInput() client.Input {
	return client.Input{
		Name:       req.Name,
		Kind:       req.Kind,
		TaxID:      req.TaxID,
		Email:      req.Email,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Notes:      req.Notes,
		Active:     true,
	}
}

// createCaseRequest is the submission body for opening a case.
type createCaseRequest struct {
	Number        string    `json:"number" validate:"required"`
	ClientID      uuid.UUID `json:"client_id" validate:"required"`
	Area          string    `json:"area" validate:"required"`
	Court         string    `json:"court"`
	OpposingParty string    `json:"opposing_party"`
	Subject       string    `json:"subject" validate:"required"`
	ClaimAmount   string    `json:"claim_amount"`
	Priority      string    `json:"priority" validate:"omitempty,oneof=low normal high critical"`
}

func (req createCaseRequest) toInput() legalcase.Input {
	return legalcase.Input{
		Number:        req.Number,
		ClientID:      req.ClientID,
		Area:          req.Area,
		Court:         req.Court,
		OpposingParty: req.OpposingParty,
		Subject:       req.Subject,
		ClaimAmount:   req.ClaimAmount,
		Priority:      req.Priority,
		Active:        true,
	}
}

// createDeadlineRequest is the submission body for recording a deadline.
type createDeadlineRequest struct {
	Description string     `json:"description" validate:"required"`
	DueAt       time.Time  `json:"due_at" validate:"required"`
	Done        bool       `json:"done"`
	CompletedAt *time.Time `json:"completed_at"`
}

// createCaseUpdateRequest is the submission body for a progress entry.
type createCaseUpdateRequest struct {
	Kind        string    `json:"kind" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Description string    `json:"description" validate:"required"`
}

func legalcaseDeadlineInput(caseID uuid.UUID, req createDeadlineRequest) legalcase.DeadlineInput {
	return legalcase.DeadlineInput{
		CaseID:      caseID,
		Description: req.Description,
		DueAt:       req.DueAt,
		Done:        req.Done,
		CompletedAt: req.CompletedAt,
	}
}

func legalcaseUpdateInput(caseID uuid.UUID, req createCaseUpdateRequest) legalcase.UpdateInput {
	return legalcase.UpdateInput{
		CaseID:      caseID,
		Kind:        req.Kind,
		Date:        req.Date,
		Description: req.Description,
	}
}

// createDocumentRequest is the submission body for document metadata.
type createDocumentRequest struct {
	Name         string            `json:"name" validate:"required"`
	Kind         string            `json:"kind" validate:"required"`
	CaseID       *uuid.UUID        `json:"case_id"`
	ClientID     *uuid.UUID        `json:"client_id"`
	CategoryID   *uuid.UUID        `json:"category_id"`
	Confidential bool              `json:"confidential"`
	ExpiresAt    *time.Time        `json:"expires_at"`
	File         document.FileMeta `json:"file" validate:"required"`
}

func (req createDocumentRequest) toInput() document.Input {
	return document.Input{
		Name:         req.Name,
		Kind:         req.Kind,
		CaseID:       req.CaseID,
		ClientID:     req.ClientID,
		CategoryID:   req.CategoryID,
		Confidential: req.Confidential,
		ExpiresAt:    req.ExpiresAt,
		File:         req.File,
	}
}

// createAppointmentRequest is the submission body for scheduling.
type createAppointmentRequest struct {
	Title           string     `json:"title" validate:"required"`
	StartsAt        time.Time  `json:"starts_at" validate:"required"`
	DurationMinutes int        `json:"duration_minutes" validate:"required,min=1"`
	Location        string     `json:"location"`
	CaseID          *uuid.UUID `json:"case_id"`
	ClientID        *uuid.UUID `json:"client_id"`
	ReminderMinutes int        `json:"reminder_minutes" validate:"min=0"`
	Notes           string     `json:"notes"`
}

func (req createAppointmentRequest) toInput() appointment.Input {
	return appointment.Input{
		Title:        req.Title,
		StartsAt:     req.StartsAt,
		Duration:     time.Duration(req.DurationMinutes) * time.Minute,
		Location:     req.Location,
		CaseID:       req.CaseID,
		ClientID:     req.ClientID,
		ReminderLead: time.Duration(req.ReminderMinutes) * time.Minute,
		Notes:        req.Notes,
	}
}

// createEntryRequest is the submission body for a ledger entry.
type createEntryRequest struct {
	Kind        string     `json:"kind" validate:"required,oneof=income expense"`
	Description string     `json:"description" validate:"required"`
	Amount      string     `json:"amount" validate:"required"`
	DueAt       time.Time  `json:"due_at" validate:"required"`
	PaidAt      *time.Time `json:"paid_at"`
	Status      string     `json:"status" validate:"omitempty,oneof=pending paid overdue canceled"`
	CaseID      *uuid.UUID `json:"case_id"`
	ClientID    *uuid.UUID `json:"client_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Notes       string     `json:"notes"`
}

func (req createEntryRequest) toInput() ledger.Input {
	return ledger.Input{
		Kind:        req.Kind,
		Description: req.Description,
		Amount:      req.Amount,
		DueAt:       req.DueAt,
		PaidAt:      req.PaidAt,
		Status:      req.Status,
		CaseID:      req.CaseID,
		ClientID:    req.ClientID,
		CategoryID:  req.CategoryID,
		Notes:       req.Notes,
	}
}

// createFeeContractRequest is the submission body for a fee contract.
type createFeeContractRequest struct {
	Name       string     `json:"name" validate:"required"`
	Total      string     `json:"total" validate:"required"`
	ValidUntil *time.Time `json:"valid_until"`
	CaseID     *uuid.UUID `json:"case_id"`
	ClientID   *uuid.UUID `json:"client_id"`
	Draft      bool       `json:"draft"`
}

func (req createFeeContractRequest) toInput() ledger.FeeContractInput {
	return ledger.FeeContractInput{
		Name:       req.Name,
		Total:      req.Total,
		ValidUntil: req.ValidUntil,
		CaseID:     req.CaseID,
		ClientID:   req.ClientID,
		Draft:      req.Draft,
	}
}

// markPaidRequest is the submission body for paying an entry.
type markPaidRequest struct {
	PaidAt time.Time `json:"paid_at" validate:"required"`
}
