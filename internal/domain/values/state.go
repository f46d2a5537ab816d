package values

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

// State represents a validated two-letter federative-unit code.
type State struct {
	code string
}

var stateCodes = map[string]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true,
	"DF": true, "ES": true, "GO": true, "MA": true, "MT": true, "MS": true,
	"MG": true, "PA": true, "PB": true, "PR": true, "PE": true, "PI": true,
	"RJ": true, "RN": true, "RS": true, "RO": true, "RR": true, "SC": true,
	"SP": true, "SE": true, "TO": true,
}

// NewState validates raw as a federative-unit code, case-insensitively.
func NewState(raw string) (State, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return State{}, validation.Reject(validation.KindRequired, "state is required")
	}
	if !stateCodes[code] {
		return State{}, validation.Reject(validation.KindMalformed, "unknown state code %q", raw)
	}
	return State{code: code}, nil
}

// MustNewState creates a State and panics on error (for constants/tests).
func MustNewState(raw string) State {
	s, err := NewState(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the uppercase two-letter code.
func (s State) String() string {
	return s.code
}

// IsEmpty checks if the state is empty.
func (s State) IsEmpty() bool {
	return s.code == ""
}

// Equal checks if two State values are equal.
func (s State) Equal(other State) bool {
	return s.code == other.code
}

// MarshalJSON implements JSON marshaling.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.code)
}

// UnmarshalJSON implements JSON unmarshaling with validation.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	state, err := NewState(raw)
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// Value implements driver.Valuer for database storage.
func (s State) Value() (driver.Value, error) {
	if s.code == "" {
		return nil, nil
	}
	return s.code, nil
}

// Scan implements sql.Scanner for database retrieval.
func (s *State) Scan(value interface{}) error {
	if value == nil {
		*s = State{}
		return nil
	}

	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into State", value)
	}

	if str == "" {
		*s = State{}
		return nil
	}

	state, err := NewState(str)
	if err != nil {
		return err
	}
	*s = state
	return nil
}
