package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/restledger/internal/domain"
)

// PostgreSQL error codes.
const (
	pgErrUniqueViolation      = "23505"
	pgErrForeignKeyViolation  = "23503"
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

// constraintErrors maps named constraints to the domain error they enforce.
var constraintErrors = map[string]error{
	"main_groups_name_key":             domain.ErrDuplicateGroupName,
	"accounts_name_key":                domain.ErrDuplicateAccountName,
	"accounts_group_id_fkey":           domain.ErrGroupNotFound,
	"vouchers_idempotency_key_key":     domain.ErrDuplicateIdempotencyKey,
	"vouchers_reverses_voucher_no_key": domain.ErrAlreadyReversed,
	"entries_ledger_id_fkey":           domain.ErrAccountNotFound,
	"entries_particulars_id_fkey":      domain.ErrAccountNotFound,
}

// translate turns constraint violations into domain errors and leaves
// everything else untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation, pgErrForeignKeyViolation:
			if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
				return mapped
			}
		}
	}

	return err
}

func notFound(err, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return err
}

// IsRetryable reports whether a PostgreSQL error should trigger a retry.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure:
			return true
		}
	}
	return false
}
