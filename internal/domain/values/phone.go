package values

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// PhoneNumber represents a validated national phone number: a two-digit area
// code followed by an 8-digit landline or 9-digit mobile subscriber number.
type PhoneNumber struct {
	digits string
}

// NewPhoneNumber validates raw as a 10- or 11-digit phone number after
// stripping formatting. Inputs longer than 11 digits are rejected, never
// truncated.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	d := stripNonDigits(raw)

	if len(d) < 10 {
		return PhoneNumber{}, validation.Reject(validation.KindTooShort,
			"phone number must have at least 10 digits, got %d", len(d))
	}
	if len(d) > 11 {
		return PhoneNumber{}, validation.Reject(validation.KindInvalidLength,
			"phone number must have 10 or 11 digits, got %d", len(d))
	}

	return PhoneNumber{digits: d}, nil
}

// MustNewPhoneNumber creates a PhoneNumber and panics on error (for
// constants/tests).
func MustNewPhoneNumber(raw string) PhoneNumber {
	p, err := NewPhoneNumber(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the canonical rendering: (AA) NNNN-NNNN for landlines,
// (AA) NNNNN-NNNN for mobiles.
func (p PhoneNumber) String() string {
	switch len(p.digits) {
	case 10:
		return fmt.Sprintf("(%s) %s-%s", p.digits[0:2], p.digits[2:6], p.digits[6:10])
	case 11:
		return fmt.Sprintf("(%s) %s-%s", p.digits[0:2], p.digits[2:7], p.digits[7:11])
	default:
		return ""
	}
}

// Digits returns the bare digit string.
func (p PhoneNumber) Digits() string {
	return p.digits
}

// AreaCode returns the two-digit area code.
func (p PhoneNumber) AreaCode() string {
	if len(p.digits) < 2 {
		return ""
	}
	return p.digits[0:2]
}

// Subscriber returns the subscriber number after the area code.
func (p PhoneNumber) Subscriber() string {
	if len(p.digits) < 2 {
		return ""
	}
	return p.digits[2:]
}

// IsMobile reports whether the number has a 9-digit subscriber part.
func (p PhoneNumber) IsMobile() bool {
	return len(p.digits) == 11
}

// IsEmpty checks if the phone number is empty.
func (p PhoneNumber) IsEmpty() bool {
	return p.digits == ""
}

// Equal checks if two PhoneNumber values are equal.
func (p PhoneNumber) Equal(other PhoneNumber) bool {
	return p.digits == other.digits
}

// MarshalJSON implements JSON marshaling using the canonical form.
func (p PhoneNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements JSON unmarshaling with validation.
func (p *PhoneNumber) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	phone, err := NewPhoneNumber(raw)
	if err != nil {
		return err
	}
	*p = phone
	return nil
}

// Value implements driver.Valuer for database storage.
func (p PhoneNumber) Value() (driver.Value, error) {
	if p.digits == "" {
		return nil, nil
	}
	return p.digits, nil
}

// Scan implements sql.Scanner for database retrieval.
func (p *PhoneNumber) Scan(value interface{}) error {
	if value == nil {
		*p = PhoneNumber{}
		return nil
	}

	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into PhoneNumber", value)
	}

	if str == "" {
		*p = PhoneNumber{}
		return nil
	}

	phone, err := NewPhoneNumber(str)
	if err != nil {
		return err
	}
	*p = phone
	return nil
}
