package usecase

import (
	"errors"

	"github.com/iho/restledger/internal/domain"
)

// classify turns a repository error into one of the domain error classes.
// Errors that already carry a class pass through unchanged.
func classify(op, id string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsValidation(err) || domain.IsNotFound(err) || domain.IsPersistence(err) {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return &domain.NotFoundError{Resource: "account", ID: id, Err: err}
	case errors.Is(err, domain.ErrGroupNotFound):
		return &domain.NotFoundError{Resource: "group", ID: id, Err: err}
	case errors.Is(err, domain.ErrVoucherNotFound):
		return &domain.NotFoundError{Resource: "voucher", ID: id, Err: err}
	case errors.Is(err, domain.ErrDuplicateAccountName):
		return domain.NewValidationError("name", err)
	case errors.Is(err, domain.ErrDuplicateGroupName):
		return domain.NewValidationError("name", err)
	case errors.Is(err, domain.ErrAlreadyReversed):
		return domain.NewValidationError("voucher_no", err)
	default:
		return &domain.PersistenceError{Op: op, Err: err}
	}
}

// errorReason is a short label for metrics.
func errorReason(err error) string {
	switch {
	case domain.IsValidation(err):
		return "validation"
	case domain.IsNotFound(err):
		return "not_found"
	case domain.IsPersistence(err):
		return "persistence"
	default:
		return "unknown"
	}
}
