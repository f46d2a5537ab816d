package values

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// PostalCode represents a validated 8-digit postal code (CEP).
type PostalCode struct {
	digits string
}

// NewPostalCode validates raw as an 8-digit postal code after stripping
// formatting.
func NewPostalCode(raw string) (PostalCode, error) {
	d := stripNonDigits(raw)
	if len(d) != 8 {
		return PostalCode{}, validation.Reject(validation.KindInvalidLength,
			"postal code must have 8 digits, got %d", len(d))
	}
	return PostalCode{digits: d}, nil
}

// MustNewPostalCode creates a PostalCode and panics on error (for
// constants/tests).
func MustNewPostalCode(raw string) PostalCode {
	pc, err := NewPostalCode(raw)
	if err != nil {
		panic(err)
	}
	return pc
}

// String returns the canonical rendering NNNNN-NNN.
func (c PostalCode) String() string {
	if len(c.digits) != 8 {
		return ""
	}
	return c.digits[0:5] + "-" + c.digits[5:8]
}

// Digits returns the bare digit string.
func (c PostalCode) Digits() string {
	return c.digits
}

// IsEmpty checks if the postal code is empty.
func (c PostalCode) IsEmpty() bool {
	return c.digits == ""
}

// Equal checks if two PostalCode values are equal.
func (c PostalCode) Equal(other PostalCode) bool {
	return c.digits == other.digits
}

// MarshalJSON implements JSON marshaling using the canonical form.
func (c PostalCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements JSON unmarshaling with validation.
func (c *PostalCode) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pc, err := NewPostalCode(raw)
	if err != nil {
		return err
	}
	*c = pc
	return nil
}

// Value implements driver.Valuer for database storage.
func (c PostalCode) Value() (driver.Value, error) {
	if c.digits == "" {
		return nil, nil
	}
	return c.digits, nil
}

// Scan implements sql.Scanner for database retrieval.
func (c *PostalCode) Scan(value interface{}) error {
	if value == nil {
		*c = PostalCode{}
		return nil
	}

	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into PostalCode", value)
	}

	if str == "" {
		*c = PostalCode{}
		return nil
	}

	pc, err := NewPostalCode(str)
	if err != nil {
		return err
	}
	*c = pc
	return nil
}
