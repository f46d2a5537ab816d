package values

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// TaxID represents a validated national tax identifier: an 11-digit CPF for
// individuals or a 14-digit CNPJ for organizations. The zero value is empty.
type TaxID struct {
	digits string
}

// TaxIDKind distinguishes the two identifier forms.
type TaxIDKind int

const (
	TaxIDUnknown TaxIDKind = iota
	TaxIDIndividual
	TaxIDCompany
)

func (k TaxIDKind) String() string {
	switch k {
	case TaxIDIndividual:
		return "individual"
	case TaxIDCompany:
		return "company"
	default:
		return "unknown"
	}
}

// CNPJ check-digit weight vectors.
var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// NewTaxID validates raw as a CPF or CNPJ and returns the value object.
// Formatting punctuation is stripped first, so both bare digit strings and
// already-canonical punctuated forms are accepted. Never panics; every
// failure is a validation rejection.
func NewTaxID(raw string) (TaxID, error) {
	d := stripNonDigits(raw)

	switch len(d) {
	case 11, 14:
	default:
		return TaxID{}, validation.Reject(validation.KindWrongLength,
			"tax ID must have 11 or 14 digits, got %d", len(d))
	}

	if allSameDigit(d) {
		return TaxID{}, validation.Reject(validation.KindTrivialSequence,
			"tax ID made of a single repeated digit")
	}

	if len(d) == 11 {
		if !cpfCheckDigitsValid(d) {
			return TaxID{}, validation.Reject(validation.KindInvalidCheckDigit,
				"CPF check digits do not match")
		}
	} else {
		if !cnpjCheckDigitsValid(d) {
			return TaxID{}, validation.Reject(validation.KindInvalidCheckDigit,
				"CNPJ check digits do not match")
		}
	}

	return TaxID{digits: d}, nil
}

// MustNewTaxID creates a TaxID and panics on error (for constants/tests).
func MustNewTaxID(raw string) TaxID {
	id, err := NewTaxID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// cpfCheckDigitsValid verifies both CPF check digits. Digit i uses weights
// (10-i) over the first nine digits, then (11-i) over the first ten; a raw
// remainder below 2 maps to 0, otherwise to 11 minus the remainder.
func cpfCheckDigitsValid(d string) bool {
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(d[i]-'0') * (10 - i)
	}
	if checkDigitFromRemainder(sum%11) != int(d[9]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(d[i]-'0') * (11 - i)
	}
	return checkDigitFromRemainder(sum%11) == int(d[10]-'0')
}

// cnpjCheckDigitsValid verifies both CNPJ check digits using the fixed
// weight vectors, with the same remainder rule as the CPF.
func cnpjCheckDigitsValid(d string) bool {
	sum := 0
	for i := 0; i < 12; i++ {
		sum += int(d[i]-'0') * cnpjWeights1[i]
	}
	if checkDigitFromRemainder(sum%11) != int(d[12]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 13; i++ {
		sum += int(d[i]-'0') * cnpjWeights2[i]
	}
	return checkDigitFromRemainder(sum%11) == int(d[13]-'0')
}

func checkDigitFromRemainder(remainder int) int {
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

// String returns the canonical punctuated form: DDD.DDD.DDD-DD for a CPF,
// DD.DDD.DDD/DDDD-DD for a CNPJ. Empty values render as "".
func (t TaxID) String() string {
	switch len(t.digits) {
	case 11:
		return fmt.Sprintf("%s.%s.%s-%s",
			t.digits[0:3], t.digits[3:6], t.digits[6:9], t.digits[9:11])
	case 14:
		return fmt.Sprintf("%s.%s.%s/%s-%s",
			t.digits[0:2], t.digits[2:5], t.digits[5:8], t.digits[8:12], t.digits[12:14])
	default:
		return ""
	}
}

// Digits returns the bare digit string without punctuation.
func (t TaxID) Digits() string {
	return t.digits
}

// Kind reports whether the identifier is a CPF or a CNPJ.
func (t TaxID) Kind() TaxIDKind {
	switch len(t.digits) {
	case 11:
		return TaxIDIndividual
	case 14:
		return TaxIDCompany
	default:
		return TaxIDUnknown
	}
}

// IsIndividual reports whether the identifier is an 11-digit CPF.
func (t TaxID) IsIndividual() bool {
	return t.Kind() == TaxIDIndividual
}

// IsCompany reports whether the identifier is a 14-digit CNPJ.
func (t TaxID) IsCompany() bool {
	return t.Kind() == TaxIDCompany
}

// IsEmpty checks if the tax ID is empty.
func (t TaxID) IsEmpty() bool {
	return t.digits == ""
}

// Equal checks if two TaxID values are equal.
func (t TaxID) Equal(other TaxID) bool {
	return t.digits == other.digits
}

// MarshalJSON implements JSON marshaling using the canonical form.
func (t TaxID) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements JSON unmarshaling with validation.
func (t *TaxID) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := NewTaxID(raw)
	if err != nil {
		return err
	}
	*t = id
	return nil
}

// Value implements driver.Valuer; the bare digit form is what gets stored.
func (t TaxID) Value() (driver.Value, error) {
	if t.digits == "" {
		return nil, nil
	}
	return t.digits, nil
}

// Scan implements sql.Scanner for database retrieval.
func (t *TaxID) Scan(value interface{}) error {
	if value == nil {
		*t = TaxID{}
		return nil
	}

	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TaxID", value)
	}

	if str == "" {
		*t = TaxID{}
		return nil
	}

	id, err := NewTaxID(str)
	if err != nil {
		return err
	}
	*t = id
	return nil
}
