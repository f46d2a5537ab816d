package validation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ExistsFunc is the uniqueness collaborator supplied by the persistence
// layer. It reports whether any live record other than excludeID already
// holds value in the named field. Pass uuid.Nil as excludeID when creating a
// new record.
type ExistsFunc func(ctx context.Context, field, value string, excludeID uuid.UUID) (bool, error)

// CheckUnique consults the collaborator after a field-level acceptance and
// turns a hit into a DuplicateValue rejection. Collaborator failures are
// returned as-is so callers can distinguish infrastructure errors from
// rejections.
func CheckUnique(ctx context.Context, exists ExistsFunc, field, value string, excludeID uuid.UUID) error {
	taken, err := exists(ctx, field, value, excludeID)
	if err != nil {
		return fmt.Errorf("uniqueness check for %s: %w", field, err)
	}
	if taken {
		return Reject(KindDuplicateValue, "value already registered")
	}
	return nil
}
