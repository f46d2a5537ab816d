package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juristack/lawoffice-backend/internal/domain/validation"
)

func TestNewTaxID(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantKind validation.Kind
	}{
		{
			name:     "valid bare CPF",
			raw:      "11144477735",
			expected: "111.444.777-35",
		},
		{
			name:     "valid punctuated CPF",
			raw:      "111.444.777-35",
			expected: "111.444.777-35",
		},
		{
			name:     "another valid CPF",
			raw:      "529.982.247-25",
			expected: "529.982.247-25",
		},
		{
			name:     "valid bare CNPJ",
			raw:      "11222333000181",
			expected: "11.222.333/0001-81",
		},
		{
			name:     "valid punctuated CNPJ",
			raw:      "11.222.333/0001-81",
			expected: "11.222.333/0001-81",
		},
		{
			name:     "CPF with stray spaces and hyphens",
			raw:      " 111 444 777-35 ",
			expected: "111.444.777-35",
		},
		{
			name:     "empty string",
			raw:      "",
			wantKind: validation.KindWrongLength,
		},
		{
			name:     "punctuation only",
			raw:      "..//--",
			wantKind: validation.KindWrongLength,
		},
		{
			name:     "too few digits",
			raw:      "123456789",
			wantKind: validation.KindWrongLength,
		},
		{
			name:     "length between CPF and CNPJ",
			raw:      "123456789012",
			wantKind: validation.KindWrongLength,
		},
		{
			name:     "too many digits",
			raw:      "123456789012345",
			wantKind: validation.KindWrongLength,
		},
		{
			name:     "repeated digit CPF",
			raw:      "11111111111",
			wantKind: validation.KindTrivialSequence,
		},
		{
			name:     "repeated zero CPF",
			raw:      "00000000000",
			wantKind: validation.KindTrivialSequence,
		},
		{
			name:     "repeated digit CNPJ",
			raw:      "99999999999999",
			wantKind: validation.KindTrivialSequence,
		},
		{
			name:     "CPF with wrong first check digit",
			raw:      "11144477745",
			wantKind: validation.KindInvalidCheckDigit,
		},
		{
			name:     "CPF with wrong second check digit",
			raw:      "11144477734",
			wantKind: validation.KindInvalidCheckDigit,
		},
		{
			name:     "CNPJ with wrong check digit",
			raw:      "11222333000182",
			wantKind: validation.KindInvalidCheckDigit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewTaxID(tt.raw)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, validation.KindOf(err))
				assert.True(t, id.IsEmpty())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, id.String())
		})
	}
}

func TestTaxIDIdempotent(t *testing.T) {
	first, err := NewTaxID("11144477735")
	require.NoError(t, err)

	// Re-validating the canonical form yields the same value.
	second, err := NewTaxID(first.String())
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.Equal(t, first.String(), second.String())
}

func TestTaxIDKind(t *testing.T) {
	cpf := MustNewTaxID("11144477735")
	assert.Equal(t, TaxIDIndividual, cpf.Kind())
	assert.True(t, cpf.IsIndividual())
	assert.False(t, cpf.IsCompany())

	cnpj := MustNewTaxID("11222333000181")
	assert.Equal(t, TaxIDCompany, cnpj.Kind())
	assert.True(t, cnpj.IsCompany())
	assert.False(t, cnpj.IsIndividual())

	assert.Equal(t, TaxIDUnknown, TaxID{}.Kind())
}

func TestTaxIDJSON(t *testing.T) {
	id := MustNewTaxID("11222333000181")

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.JSONEq(t, `"11.222.333/0001-81"`, string(data))

	var decoded TaxID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, id.Equal(decoded))

	var bad TaxID
	assert.Error(t, json.Unmarshal([]byte(`"123"`), &bad))
}

func TestTaxIDScan(t *testing.T) {
	var id TaxID
	require.NoError(t, id.Scan("11144477735"))
	assert.Equal(t, "111.444.777-35", id.String())

	require.NoError(t, id.Scan(nil))
	assert.True(t, id.IsEmpty())

	assert.Error(t, id.Scan(42))
}

func TestTaxIDValue(t *testing.T) {
	id := MustNewTaxID("111.444.777-35")
	v, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, "11144477735", v)

	v, err = TaxID{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
