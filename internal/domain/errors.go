package domain

import (
	"errors"
	"fmt"
)

var (
	// Registry errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrGroupNotFound        = errors.New("group not found")
	ErrDuplicateAccountName = errors.New("account name already exists")
	ErrDuplicateGroupName   = errors.New("group name already exists")

	// Posting errors
	ErrSameAccount             = errors.New("cannot post to the same account on both sides")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrVoucherNotFound         = errors.New("voucher not found")
	ErrUnbalancedPair          = errors.New("debit and credit entries do not balance")
	ErrSingleSidedEntry        = errors.New("entry must carry exactly one of debit or credit")
	ErrIdempotencyConflict     = errors.New("idempotency key reused with different posting")
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already recorded")
	ErrAlreadyReversed         = errors.New("voucher has already been reversed")
	ErrReverseReversal         = errors.New("a reversal voucher cannot be reversed")

	// Reporting errors
	ErrInvalidDateRange = errors.New("from date is after to date")
)

// ValidationError reports input that breaks a domain rule. Nothing is
// persisted when it is returned.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Err.Error()
	}
	return fmt.Sprintf("validation failed on %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError wraps err as a ValidationError for field.
func NewValidationError(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// PersistenceError reports a storage failure. A posting that fails with it
// has left no entries behind.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsPersistence reports whether err is a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
