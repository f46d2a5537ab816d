package validation

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cross-field rules shared by every entity input boundary. All functions are
// pure and total: they never panic and report rejections as *Error values.

// RequireOneOf rejects when neither of two optional associations is present.
// Used for records that must be linked to a case or a client.
func RequireOneOf(a, b *uuid.UUID) error {
	if a == nil && b == nil {
		return Reject(KindMissingRequiredAssociation, "at least one association must be provided")
	}
	return nil
}

// RequireConsistentLink rejects when both an aggregate's own association and a
// direct association are supplied but disagree. aggregateOwner is the entity
// the aggregate already points at (nil when the aggregate is absent), direct
// is the association supplied alongside it.
func RequireConsistentLink(aggregateOwner, direct *uuid.UUID) error {
	if aggregateOwner == nil || direct == nil {
		return nil
	}
	if *aggregateOwner != *direct {
		return Reject(KindInconsistentLink, "linked aggregate belongs to a different association")
	}
	return nil
}

// DateRangeValid rejects ranges where end precedes start. With strict set,
// end must be strictly after start.
func DateRangeValid(start, end time.Time, strict bool) error {
	if strict {
		if !end.After(start) {
			return Reject(KindDateOutOfOrder, "end must be after start")
		}
		return nil
	}
	if end.Before(start) {
		return Reject(KindDateOutOfOrder, "end must not precede start")
	}
	return nil
}

// DateNotPast rejects dates strictly before now.
func DateNotPast(d, now time.Time) error {
	if d.Before(now) {
		return Reject(KindDateInPast, "date must not be in the past")
	}
	return nil
}

// DateNotFuture rejects dates strictly after now.
func DateNotFuture(d, now time.Time) error {
	if d.After(now) {
		return Reject(KindDateInFuture, "date must not be in the future")
	}
	return nil
}

// DateWithinPast rejects dates more than tolerance before now.
func DateWithinPast(d, now time.Time, tolerance time.Duration) error {
	if d.Before(now.Add(-tolerance)) {
		return Reject(KindDateInPast, "date is too far in the past")
	}
	return nil
}

// DateWithinFuture rejects dates more than horizon after now.
func DateWithinFuture(d, now time.Time, horizon time.Duration) error {
	if d.After(now.Add(horizon)) {
		return Reject(KindDateInFuture, "date is too far in the future")
	}
	return nil
}

// AmountInBounds checks value against an inclusive [min, max] range,
// reporting which bound was violated.
func AmountInBounds(value, min, max decimal.Decimal) error {
	if value.LessThan(min) {
		return Reject(KindAmountTooLow, "amount below minimum of %s", min.String())
	}
	if value.GreaterThan(max) {
		return Reject(KindAmountTooHigh, "amount above maximum of %s", max.String())
	}
	return nil
}

// FileConstraints checks uploaded-file metadata against a size cap and an
// allowed content-type list. Content types compare case-insensitively and
// ignore parameters after ";".
func FileConstraints(sizeBytes int64, contentType string, maxSize int64, allowedTypes []string) error {
	if sizeBytes > maxSize {
		return Reject(KindFileTooLarge, "file of %d bytes exceeds limit of %d bytes", sizeBytes, maxSize)
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	for _, allowed := range allowedTypes {
		if ct == strings.ToLower(allowed) {
			return nil
		}
	}
	return Reject(KindUnsupportedFileType, "content type %q is not accepted", contentType)
}

// RequiredText trims raw and checks it against a [min, max] rune length.
// A max of zero disables the upper bound.
func RequiredText(raw string, min, max int) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", Reject(KindRequired, "value is required")
	}
	n := len([]rune(s))
	if n < min {
		return "", Reject(KindTooShort, "must have at least %d characters", min)
	}
	if max > 0 && n > max {
		return "", Reject(KindTooLong, "must have at most %d characters", max)
	}
	return s, nil
}
