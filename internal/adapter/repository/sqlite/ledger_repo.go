package sqlite

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	db querier
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// CheckConsistency totals both entry columns and counts malformed vouchers.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, int64, error) {
	var debits, credits int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(debit_amount), 0), COALESCE(SUM(credit_amount), 0) FROM entries`,
	).Scan(&debits, &credits)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}

	var unbalanced int64
	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM (
			SELECT v.voucher_no
			FROM vouchers v
			LEFT JOIN entries e ON e.voucher_no = v.voucher_no
			GROUP BY v.voucher_no, v.amount
			HAVING COUNT(e.id) <> 2
				OR SUM(CASE WHEN e.debit_amount > 0 THEN 1 ELSE 0 END) <> 1
				OR COALESCE(SUM(e.debit_amount), 0) <> v.amount
				OR COALESCE(SUM(e.credit_amount), 0) <> v.amount
		)`,
	).Scan(&unbalanced)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}

	return fromCents(debits), fromCents(credits), unbalanced, nil
}
