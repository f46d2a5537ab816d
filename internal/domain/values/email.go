package values

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// Email represents a validated, lowercased email address.
type Email struct {
	address string
}

// NewEmail validates raw as an email address. The address is trimmed and
// lowercased before RFC 5322 parsing.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Email{}, validation.Reject(validation.KindRequired, "email is required")
	}

	parsed, err := mail.ParseAddress(normalized)
	if err != nil || parsed.Address != normalized {
		return Email{}, validation.Reject(validation.KindMalformed, "invalid email address %q", raw)
	}

	if len(parsed.Address) > 254 {
		return Email{}, validation.Reject(validation.KindTooLong, "email address exceeds 254 characters")
	}

	return Email{address: parsed.Address}, nil
}

// MustNewEmail creates an Email and panics on error (for constants/tests).
func MustNewEmail(raw string) Email {
	e, err := NewEmail(raw)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the email address.
func (e Email) String() string {
	return e.address
}

// Domain returns the part after "@".
func (e Email) Domain() string {
	i := strings.LastIndexByte(e.address, '@')
	if i < 0 {
		return ""
	}
	return e.address[i+1:]
}

// IsEmpty checks if the email is empty.
func (e Email) IsEmpty() bool {
	return e.address == ""
}

// Equal checks if two Email values are equal.
func (e Email) Equal(other Email) bool {
	return e.address == other.address
}

// MarshalJSON implements JSON marshaling.
func (e Email) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.address)
}

// UnmarshalJSON implements JSON unmarshaling with validation.
func (e *Email) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	email, err := NewEmail(raw)
	if err != nil {
		return err
	}
	*e = email
	return nil
}

// Value implements driver.Valuer for database storage.
func (e Email) Value() (driver.Value, error) {
	if e.address == "" {
		return nil, nil
	}
	return e.address, nil
}

// Scan implements sql.Scanner for database retrieval.
func (e *Email) Scan(value interface{}) error {
	if value == nil {
		*e = Email{}
		return nil
	}

	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Email", value)
	}

	if str == "" {
		*e = Email{}
		return nil
	}

	email, err := NewEmail(str)
	if err != nil {
		return err
	}
	*e = email
	return nil
}
