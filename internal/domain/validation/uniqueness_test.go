package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckUnique(t *testing.T) {
	ctx := context.Background()

	free := ExistsFunc(func(ctx context.Context, field, value string, excludeID uuid.UUID) (bool, error) {
		return false, nil
	})
	assert.NoError(t, CheckUnique(ctx, free, "email", "user@example.com", uuid.Nil))

	taken := ExistsFunc(func(ctx context.Context, field, value string, excludeID uuid.UUID) (bool, error) {
		return true, nil
	})
	err := CheckUnique(ctx, taken, "tax_id", "11144477735", uuid.Nil)
	require.Error(t, err)
	assert.Equal(t, KindDuplicateValue, KindOf(err))

	boom := errors.New("connection refused")
	failing := ExistsFunc(func(ctx context.Context, field, value string, excludeID uuid.UUID) (bool, error) {
		return false, boom
	})
	err = CheckUnique(ctx, failing, "tax_id", "11144477735", uuid.Nil)
	require.Error(t, err)
	// Infrastructure failures are not rejections.
	assert.Equal(t, Kind(""), KindOf(err))
	assert.ErrorIs(t, err, boom)
}
