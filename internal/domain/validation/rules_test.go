package validation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireOneOf(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	assert.NoError(t, RequireOneOf(&a, nil))
	assert.NoError(t, RequireOneOf(nil, &b))
	assert.NoError(t, RequireOneOf(&a, &b))

	err := RequireOneOf(nil, nil)
	require.Error(t, err)
	assert.Equal(t, KindMissingRequiredAssociation, KindOf(err))
}

func TestRequireConsistentLink(t *testing.T) {
	owner := uuid.New()
	same := owner
	other := uuid.New()

	assert.NoError(t, RequireConsistentLink(nil, &other))
	assert.NoError(t, RequireConsistentLink(&owner, nil))
	assert.NoError(t, RequireConsistentLink(&owner, &same))

	err := RequireConsistentLink(&owner, &other)
	require.Error(t, err)
	assert.Equal(t, KindInconsistentLink, KindOf(err))
}

func TestDateRangeValid(t *testing.T) {
	start := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start, end time.Time
		strict     bool
		wantErr    bool
	}{
		{name: "ordered strict", start: start, end: end, strict: true},
		{name: "ordered non-strict", start: start, end: end},
		{name: "reversed strict", start: end, end: start, strict: true, wantErr: true},
		{name: "reversed non-strict", start: end, end: start, wantErr: true},
		{name: "equal strict", start: start, end: start, strict: true, wantErr: true},
		{name: "equal non-strict", start: start, end: start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DateRangeValid(tt.start, tt.end, tt.strict)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, KindDateOutOfOrder, KindOf(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDateNotPastNotFuture(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.NoError(t, DateNotPast(future, now))
	assert.NoError(t, DateNotPast(now, now))
	assert.Equal(t, KindDateInPast, KindOf(DateNotPast(past, now)))

	assert.NoError(t, DateNotFuture(past, now))
	assert.NoError(t, DateNotFuture(now, now))
	assert.Equal(t, KindDateInFuture, KindOf(DateNotFuture(future, now)))
}

func TestDateTolerances(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	tolerance := 5 * 365 * 24 * time.Hour

	assert.NoError(t, DateWithinPast(now.AddDate(-4, 0, 0), now, tolerance))
	assert.Equal(t, KindDateInPast, KindOf(DateWithinPast(now.AddDate(-6, 0, 0), now, tolerance)))

	horizon := 2 * 365 * 24 * time.Hour
	assert.NoError(t, DateWithinFuture(now.AddDate(1, 0, 0), now, horizon))
	assert.Equal(t, KindDateInFuture, KindOf(DateWithinFuture(now.AddDate(3, 0, 0), now, horizon)))
}

func TestAmountInBounds(t *testing.T) {
	min := decimal.Zero
	max := decimal.RequireFromString("999999999.99")

	assert.NoError(t, AmountInBounds(decimal.RequireFromString("100.00"), min, max))
	assert.NoError(t, AmountInBounds(min, min, max))
	assert.NoError(t, AmountInBounds(max, min, max))

	err := AmountInBounds(decimal.NewFromInt(-1), min, max)
	require.Error(t, err)
	assert.Equal(t, KindAmountTooLow, KindOf(err))

	err = AmountInBounds(decimal.NewFromInt(1000000000), min, max)
	require.Error(t, err)
	assert.Equal(t, KindAmountTooHigh, KindOf(err))
}

func TestFileConstraints(t *testing.T) {
	allowed := []string{"application/pdf", "image/png"}
	maxSize := int64(10 << 20)

	assert.NoError(t, FileConstraints(1024, "application/pdf", maxSize, allowed))
	assert.NoError(t, FileConstraints(1024, "Application/PDF", maxSize, allowed))
	assert.NoError(t, FileConstraints(1024, "image/png; charset=binary", maxSize, allowed))

	err := FileConstraints(maxSize+1, "application/pdf", maxSize, allowed)
	require.Error(t, err)
	assert.Equal(t, KindFileTooLarge, KindOf(err))

	err = FileConstraints(1024, "application/zip", maxSize, allowed)
	require.Error(t, err)
	assert.Equal(t, KindUnsupportedFileType, KindOf(err))
}

func TestRequiredText(t *testing.T) {
	s, err := RequiredText("  João da Silva  ", 2, 200)
	require.NoError(t, err)
	assert.Equal(t, "João da Silva", s)

	_, err = RequiredText("   ", 2, 200)
	assert.Equal(t, KindRequired, KindOf(err))

	_, err = RequiredText("a", 2, 200)
	assert.Equal(t, KindTooShort, KindOf(err))

	_, err = RequiredText("abc", 1, 2)
	assert.Equal(t, KindTooLong, KindOf(err))

	// Rune counting, not bytes.
	_, err = RequiredText("ãé", 2, 0)
	assert.NoError(t, err)
}
