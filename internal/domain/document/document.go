package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// FilePolicy is the caller-supplied upload policy. Limits are configuration,
// not domain constants.
type FilePolicy struct {
	MaxSizeBytes int64
	AllowedTypes []string
}

// FileMeta is the metadata of an uploaded file, supplied by the upload layer.
type FileMeta struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// Kind classifies a stored document.
type Kind string

const (
	KindContract   Kind = "contract"
	KindPetition   Kind = "petition"
	KindPowerOfAtt Kind = "power_of_attorney"
	KindEvidence   Kind = "evidence"
	KindReport     Kind = "report"
	KindOther      Kind = "other"
)

var kinds = map[Kind]bool{
	KindContract: true, KindPetition: true, KindPowerOfAtt: true,
	KindEvidence: true, KindReport: true, KindOther: true,
}

// Document is stored file metadata linked to a case, a client, or both.
type Document struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Kind         Kind       `json:"kind"`
	CaseID       *uuid.UUID `json:"case_id,omitempty"`
	ClientID     *uuid.UUID `json:"client_id,omitempty"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	Confidential bool       `json:"confidential"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	File         FileMeta   `json:"file"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the raw fields of a document submission. caseClientID is the
// client the linked case belongs to, resolved by the caller; nil when no case
// is linked.
type Input struct {
	Name         string
	Kind         string
	CaseID       *uuid.UUID
	ClientID     *uuid.UUID
	CategoryID   *uuid.UUID
	Confidential bool
	ExpiresAt    *time.Time
	File         FileMeta
}

// New validates in against the upload policy and now. A document must be
// linked to a case or a client; when both are given, the case must belong to
// the same client. Expiry dates must sit strictly in the future.
func New(in Input, caseClientID *uuid.UUID, policy FilePolicy, now time.Time) (*Document, error) {
	var fe validation.FieldErrors

	name, err := validation.RequiredText(in.Name, 3, 200)
	fe.Add("name", err)

	kind := Kind(in.Kind)
	if !kinds[kind] {
		fe.Reject("kind", validation.KindMalformed, "unknown document kind %q", in.Kind)
	}

	fe.Add("case_id", validation.RequireOneOf(in.CaseID, in.ClientID))
	if in.CaseID != nil {
		fe.Add("client_id", validation.RequireConsistentLink(caseClientID, in.ClientID))
	}

	if in.ExpiresAt != nil {
		if !in.ExpiresAt.After(now) {
			fe.Reject("expires_at", validation.KindDateInPast, "expiry date must be in the future")
		}
	}

	if in.File.Filename == "" {
		fe.Reject("file", validation.KindRequired, "a file is required")
	} else {
		fe.Add("file", validation.FileConstraints(
			in.File.SizeBytes, in.File.ContentType, policy.MaxSizeBytes, policy.AllowedTypes))
	}

	if err := fe.Err(); err != nil {
		return nil, err
	}

	return &Document{
		ID:           uuid.New(),
		Name:         name,
		Kind:         kind,
		CaseID:       in.CaseID,
		ClientID:     in.ClientID,
		CategoryID:   in.CategoryID,
		Confidential: in.Confidential,
		ExpiresAt:    in.ExpiresAt,
		File:         in.File,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Expired reports whether the document has an expiry date in the past.
func (d *Document) Expired(now time.Time) bool {
	return d.ExpiresAt != nil && d.ExpiresAt.Before(now)
}
