package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/iho/restledger/internal/domain"
)

// uniqueErrors maps the column named in a UNIQUE failure message to the
// domain error it enforces.
var uniqueErrors = map[string]error{
	"main_groups.name":             domain.ErrDuplicateGroupName,
	"accounts.name":                domain.ErrDuplicateAccountName,
	"vouchers.idempotency_key":     domain.ErrDuplicateIdempotencyKey,
	"vouchers.reverses_voucher_no": domain.ErrAlreadyReversed,
}

// translate turns constraint violations into domain errors. SQLite does
// not name the violated foreign key, so the caller supplies fkErr.
func translate(err, fkErr error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		msg := sqliteErr.Error()
		for column, mapped := range uniqueErrors {
			if strings.Contains(msg, column) {
				return mapped
			}
		}
	case sqlite3.ErrConstraintForeignKey:
		if fkErr != nil {
			return fkErr
		}
	}

	return err
}

func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

// IsRetryable reports whether a SQLite error should trigger a retry.
func IsRetryable(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}
