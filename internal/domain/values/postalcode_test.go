package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

func TestNewPostalCode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{
			name:     "bare digits",
			raw:      "01310100",
			expected: "01310-100",
		},
		{
			name:     "already formatted",
			raw:      "01310-100",
			expected: "01310-100",
		},
		{
			name:     "dots and spaces",
			raw:      " 01.310-100 ",
			expected: "01310-100",
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "too short",
			raw:     "123",
			wantErr: true,
		},
		{
			name:    "too long",
			raw:     "013101000",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, err := NewPostalCode(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, validation.KindInvalidLength, validation.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, pc.String())
		})
	}
}

func TestPostalCodeIdempotent(t *testing.T) {
	first := MustNewPostalCode("01310100")
	second, err := NewPostalCode(first.String())
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestPostalCodeScanValue(t *testing.T) {
	var pc PostalCode
	require.NoError(t, pc.Scan("01310100"))
	assert.Equal(t, "01310-100", pc.String())

	v, err := pc.Value()
	require.NoError(t, err)
	assert.Equal(t, "01310100", v)
}
