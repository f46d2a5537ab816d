package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

func TestNewPhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantKind validation.Kind
	}{
		{
			name:     "bare mobile number",
			raw:      "11987654321",
			expected: "(11) 98765-4321",
		},
		{
			name:     "bare landline number",
			raw:      "1198765432",
			expected: "(11) 9876-5432",
		},
		{
			name:     "already formatted mobile",
			raw:      "(11) 98765-4321",
			expected: "(11) 98765-4321",
		},
		{
			name:     "dots and spaces",
			raw:      "11 9876.5432",
			expected: "(11) 9876-5432",
		},
		{
			name:     "empty string",
			raw:      "",
			wantKind: validation.KindTooShort,
		},
		{
			name:     "too short",
			raw:      "123",
			wantKind: validation.KindTooShort,
		},
		{
			name:     "nine digits",
			raw:      "987654321",
			wantKind: validation.KindTooShort,
		},
		{
			name:     "twelve digits is rejected not truncated",
			raw:      "119876543210",
			wantKind: validation.KindInvalidLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phone, err := NewPhoneNumber(tt.raw)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, validation.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, phone.String())
		})
	}
}

func TestPhoneNumberParts(t *testing.T) {
	mobile := MustNewPhoneNumber("11987654321")
	assert.Equal(t, "11", mobile.AreaCode())
	assert.Equal(t, "987654321", mobile.Subscriber())
	assert.True(t, mobile.IsMobile())

	landline := MustNewPhoneNumber("1133334444")
	assert.Equal(t, "11", landline.AreaCode())
	assert.Equal(t, "33334444", landline.Subscriber())
	assert.False(t, landline.IsMobile())
}

func TestPhoneNumberIdempotent(t *testing.T) {
	first := MustNewPhoneNumber("11987654321")
	second, err := NewPhoneNumber(first.String())
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestPhoneNumberJSON(t *testing.T) {
	phone := MustNewPhoneNumber("1133334444")

	data, err := json.Marshal(phone)
	require.NoError(t, err)
	assert.JSONEq(t, `"(11) 3333-4444"`, string(data))

	var decoded PhoneNumber
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, phone.Equal(decoded))
}

func TestPhoneNumberScanValue(t *testing.T) {
	var phone PhoneNumber
	require.NoError(t, phone.Scan([]byte("11987654321")))
	assert.Equal(t, "(11) 98765-4321", phone.String())

	v, err := phone.Value()
	require.NoError(t, err)
	assert.Equal(t, "11987654321", v)

	require.NoError(t, phone.Scan(nil))
	assert.True(t, phone.IsEmpty())
}
