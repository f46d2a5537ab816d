package values

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// Money represents a monetary amount with exact decimal arithmetic. Amounts
// are currency-less here; the ledger operates in a single national currency.
// Sign is not restricted by the type, range rules are the caller's concern
// via validation.AmountInBounds.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money from a decimal amount.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// NewMoneyFromString parses a user-entered amount. Both the dot-decimal form
// ("1234.56") and the national comma-decimal form ("1.234,56") are accepted.
func NewMoneyFromString(raw string) (Money, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Money{}, validation.Reject(validation.KindRequired, "amount is required")
	}

	// Comma-decimal inputs use dots as thousand separators.
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	dec, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, validation.Reject(validation.KindMalformed, "invalid amount %q", raw)
	}
	return Money{amount: dec}, nil
}

// MustNewMoneyFromString creates Money and panics on error (for
// constants/tests).
func MustNewMoneyFromString(raw string) Money {
	m, err := NewMoneyFromString(raw)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// String returns the amount with two decimal places, dot-separated.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// IsZero checks if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive checks if the amount is strictly positive.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative checks if the amount is strictly negative.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Equal checks if two Money values are equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Cmp returns -1, 0, or 1 comparing m against other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m minus other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Neg returns the amount with its sign flipped.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// MarshalJSON implements JSON marshaling as a fixed two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements JSON unmarshaling with parsing.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	money, err := NewMoneyFromString(raw)
	if err != nil {
		return err
	}
	*m = money
	return nil
}

// Value implements driver.Valuer for database storage.
func (m Money) Value() (driver.Value, error) {
	return m.amount.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (m *Money) Scan(value interface{}) error {
	if value == nil {
		*m = Money{}
		return nil
	}

	switch v := value.(type) {
	case string:
		dec, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("invalid money format: %w", err)
		}
		*m = Money{amount: dec}
	case []byte:
		dec, err := decimal.NewFromString(string(v))
		if err != nil {
			return fmt.Errorf("invalid money format: %w", err)
		}
		*m = Money{amount: dec}
	case int64:
		*m = Money{amount: decimal.NewFromInt(v)}
	case float64:
		*m = Money{amount: decimal.NewFromFloat(v)}
	default:
		return fmt.Errorf("cannot scan %T into Money", value)
	}
	return nil
}
