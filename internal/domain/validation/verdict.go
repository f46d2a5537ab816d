package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies why a field value was rejected. Every validator in this
// package and in domain/values reports rejections through one of these kinds
// so callers can map them to user-facing messages without string matching.
type Kind string

const (
	KindWrongLength                Kind = "wrong_length"
	KindInvalidCheckDigit          Kind = "invalid_check_digit"
	KindTrivialSequence            Kind = "trivial_sequence"
	KindTooShort                   Kind = "too_short"
	KindTooLong                    Kind = "too_long"
	KindInvalidLength              Kind = "invalid_length"
	KindMalformed                  Kind = "malformed"
	KindRequired                   Kind = "required"
	KindMissingRequiredAssociation Kind = "missing_required_association"
	KindInconsistentLink           Kind = "inconsistent_link"
	KindDateOutOfOrder             Kind = "date_out_of_order"
	KindDateInPast                 Kind = "date_in_past"
	KindDateInFuture               Kind = "date_in_future"
	KindAmountTooLow               Kind = "amount_too_low"
	KindAmountTooHigh              Kind = "amount_too_high"
	KindFileTooLarge               Kind = "file_too_large"
	KindUnsupportedFileType        Kind = "unsupported_file_type"
	KindDuplicateValue             Kind = "duplicate_value"
)

// Error is a single field-level rejection. Validators return it with Field
// unset; FieldErrors.Add fills the field name in when aggregating.
type Error struct {
	Field   string
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Field, e.Kind, e.Message)
}

// Reject creates a field-level rejection with the given kind.
func Reject(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the rejection kind carried by err, or "" if err is not a
// validation rejection.
func KindOf(err error) Kind {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Kind
	}
	return ""
}

// IsKind reports whether err is a rejection of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// FieldErrors aggregates every rejection from a single submission so the
// caller can present them together instead of stopping at the first failure.
type FieldErrors struct {
	errs []*Error
}

// Add records err against the named field. Non-rejection errors are wrapped
// as malformed so aggregation never drops a failure. Adding nil is a no-op.
func (f *FieldErrors) Add(field string, err error) {
	if err == nil {
		return
	}
	var verr *Error
	if !errors.As(err, &verr) {
		verr = &Error{Kind: KindMalformed, Message: err.Error()}
	}
	f.errs = append(f.errs, &Error{Field: field, Kind: verr.Kind, Message: verr.Message})
}

// Reject records a rejection of the given kind against the named field.
func (f *FieldErrors) Reject(field string, kind Kind, format string, args ...any) {
	f.errs = append(f.errs, &Error{Field: field, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Empty reports whether no rejections were recorded.
func (f *FieldErrors) Empty() bool {
	return len(f.errs) == 0
}

// All returns the recorded rejections in submission order.
func (f *FieldErrors) All() []*Error {
	return f.errs
}

// ByField groups rejections by field name.
func (f *FieldErrors) ByField() map[string][]*Error {
	out := make(map[string][]*Error, len(f.errs))
	for _, e := range f.errs {
		out[e.Field] = append(out[e.Field], e)
	}
	return out
}

// Err returns the aggregate as an error, or nil when nothing was rejected.
func (f *FieldErrors) Err() error {
	if f.Empty() {
		return nil
	}
	return f
}

func (f *FieldErrors) Error() string {
	parts := make([]string, len(f.errs))
	for i, e := range f.errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}
