package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantKind validation.Kind
	}{
		{
			name:     "simple address",
			raw:      "user@example.com",
			expected: "user@example.com",
		},
		{
			name:     "uppercase is lowered",
			raw:      "User@Example.COM",
			expected: "user@example.com",
		},
		{
			name:     "surrounding whitespace trimmed",
			raw:      "  user@example.com  ",
			expected: "user@example.com",
		},
		{
			name:     "empty",
			raw:      "",
			wantKind: validation.KindRequired,
		},
		{
			name:     "missing domain",
			raw:      "user@",
			wantKind: validation.KindMalformed,
		},
		{
			name:     "no at sign",
			raw:      "user.example.com",
			wantKind: validation.KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := NewEmail(tt.raw)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, validation.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, email.String())
		})
	}
}

func TestEmailDomain(t *testing.T) {
	email := MustNewEmail("user@example.com")
	assert.Equal(t, "example.com", email.Domain())
	assert.Equal(t, "", Email{}.Domain())
}
