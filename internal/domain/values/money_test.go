package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

func TestNewMoneyFromString(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantKind validation.Kind
	}{
		{
			name:     "dot decimal",
			raw:      "1234.56",
			expected: "1234.56",
		},
		{
			name:     "comma decimal with thousand separators",
			raw:      "1.234,56",
			expected: "1234.56",
		},
		{
			name:     "comma decimal without separators",
			raw:      "1500,00",
			expected: "1500.00",
		},
		{
			name:     "integer",
			raw:      "250",
			expected: "250.00",
		},
		{
			name:     "negative",
			raw:      "-10.50",
			expected: "-10.50",
		},
		{
			name:     "empty",
			raw:      "",
			wantKind: validation.KindRequired,
		},
		{
			name:     "not a number",
			raw:      "abc",
			wantKind: validation.KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.raw)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, validation.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.String())
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := MustNewMoneyFromString("100.50")
	b := MustNewMoneyFromString("50.25")

	assert.Equal(t, "150.75", a.Add(b).String())
	assert.Equal(t, "50.25", a.Sub(b).String())
	assert.Equal(t, "-100.50", a.Neg().String())
	assert.Equal(t, 1, a.Cmp(b))
	assert.True(t, a.IsPositive())
	assert.True(t, a.Neg().IsNegative())
	assert.True(t, ZeroMoney().IsZero())
}

func TestMoneyJSON(t *testing.T) {
	m := MustNewMoneyFromString("999.9")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `"999.90"`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equal(decoded))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("123.45"))
	assert.Equal(t, "123.45", m.String())

	require.NoError(t, m.Scan(int64(7)))
	assert.Equal(t, "7.00", m.String())

	assert.Error(t, m.Scan(struct{}{}))
}
