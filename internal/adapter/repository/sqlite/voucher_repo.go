package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/usecase"
)

const voucherColumns = `voucher_no, voucher_date, kind, amount, remarks, ref_no, idempotency_key, reverses_voucher_no, created_at`

// VoucherRepository implements usecase.VoucherRepository.
type VoucherRepository struct {
	db querier
}

// NewVoucherRepository creates a new VoucherRepository.
func NewVoucherRepository(db *sql.DB) *VoucherRepository {
	return &VoucherRepository{db: db}
}

// Create writes the voucher header.
func (r *VoucherRepository) Create(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error {
	_, err := sqlTx(tx).ExecContext(ctx,
		`INSERT INTO vouchers (`+voucherColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		voucher.VoucherNo,
		formatDate(voucher.Date),
		string(voucher.Kind),
		toCents(voucher.Amount),
		voucher.Remarks,
		voucher.RefNo,
		nullString(voucher.IdempotencyKey),
		nullString(voucher.ReversesVoucherNo),
		formatTime(voucher.CreatedAt),
	)
	return translate(err, domain.ErrVoucherNotFound)
}

// GetByNo retrieves a voucher with both entries.
func (r *VoucherRepository) GetByNo(ctx context.Context, voucherNo string) (*domain.Voucher, error) {
	return loadVoucher(ctx, r.db, `voucher_no = ?`, voucherNo)
}

// GetByNoTx retrieves a voucher with both entries inside a transaction.
func (r *VoucherRepository) GetByNoTx(ctx context.Context, tx usecase.Transaction, voucherNo string) (*domain.Voucher, error) {
	return loadVoucher(ctx, sqlTx(tx), `voucher_no = ?`, voucherNo)
}

// GetByIdempotencyKey retrieves the voucher recorded under key.
func (r *VoucherRepository) GetByIdempotencyKey(ctx context.Context, tx usecase.Transaction, key string) (*domain.Voucher, error) {
	return loadVoucher(ctx, sqlTx(tx), `idempotency_key = ?`, key)
}

func loadVoucher(ctx context.Context, q querier, where string, arg string) (*domain.Voucher, error) {
	row := q.QueryRowContext(ctx, `SELECT `+voucherColumns+` FROM vouchers WHERE `+where, arg)

	var (
		header            domain.Voucher
		date, createdAt   string
		kind              string
		amount            int64
		idempotencyKey    sql.NullString
		reversesVoucherNo sql.NullString
	)
	err := row.Scan(
		&header.VoucherNo,
		&date,
		&kind,
		&amount,
		&header.Remarks,
		&header.RefNo,
		&idempotencyKey,
		&reversesVoucherNo,
		&createdAt,
	)
	if err != nil {
		return nil, notFound(err, domain.ErrVoucherNotFound)
	}

	if header.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	header.Kind = domain.Kind(kind)
	header.Amount = fromCents(amount)
	header.IdempotencyKey = idempotencyKey.String
	header.ReversesVoucherNo = reversesVoucherNo.String
	header.CreatedAt = parseTime(createdAt)

	entries, err := entriesByVoucher(ctx, q, header.VoucherNo)
	if err != nil {
		return nil, err
	}

	voucher, err := domain.VoucherFromEntries(header, entries)
	if err != nil {
		return nil, fmt.Errorf("voucher %s: %w", header.VoucherNo, err)
	}
	return voucher, nil
}
