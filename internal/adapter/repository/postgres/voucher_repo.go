package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/infrastructure/postgres/generated"
	"github.com/iho/restledger/internal/usecase"
)

// VoucherRepository implements usecase.VoucherRepository.
type VoucherRepository struct {
	queries *generated.Queries
}

// NewVoucherRepository creates a new VoucherRepository.
func NewVoucherRepository(pool *pgxpool.Pool) *VoucherRepository {
	return newVoucherRepositoryWithDB(pool)
}

func newVoucherRepositoryWithDB(db generated.DBTX) *VoucherRepository {
	return &VoucherRepository{queries: generated.New(db)}
}

// Create writes the voucher header. Its entries are written separately in
// the same transaction.
func (r *VoucherRepository) Create(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	err := queries.CreateVoucher(ctx, generated.CreateVoucherParams{
		VoucherNo:         voucher.VoucherNo,
		VoucherDate:       timeToPgDate(voucher.Date),
		Kind:              string(voucher.Kind),
		Amount:            decimalToNumeric(voucher.Amount),
		Remarks:           voucher.Remarks,
		RefNo:             voucher.RefNo,
		IdempotencyKey:    textOrNull(voucher.IdempotencyKey),
		ReversesVoucherNo: textOrNull(voucher.ReversesVoucherNo),
		CreatedAt:         timeToPgTimestamptz(voucher.CreatedAt),
	})

	return translate(err)
}

// GetByNo retrieves a voucher with both entries.
func (r *VoucherRepository) GetByNo(ctx context.Context, voucherNo string) (*domain.Voucher, error) {
	return loadVoucher(ctx, r.queries, voucherNo)
}

// GetByNoTx retrieves a voucher with both entries inside a transaction.
func (r *VoucherRepository) GetByNoTx(ctx context.Context, tx usecase.Transaction, voucherNo string) (*domain.Voucher, error) {
	return loadVoucher(ctx, generated.New(tx.(*Tx).PgxTx()), voucherNo)
}

// GetByIdempotencyKey retrieves the voucher recorded under key.
func (r *VoucherRepository) GetByIdempotencyKey(ctx context.Context, tx usecase.Transaction, key string) (*domain.Voucher, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	row, err := queries.GetVoucherByIdempotencyKey(ctx, textOrNull(key))
	if err != nil {
		return nil, notFound(err, domain.ErrVoucherNotFound)
	}

	return assembleVoucher(ctx, queries, row)
}

func loadVoucher(ctx context.Context, queries *generated.Queries, voucherNo string) (*domain.Voucher, error) {
	row, err := queries.GetVoucherByNo(ctx, voucherNo)
	if err != nil {
		return nil, notFound(err, domain.ErrVoucherNotFound)
	}

	return assembleVoucher(ctx, queries, row)
}

func assembleVoucher(ctx context.Context, queries *generated.Queries, row generated.Voucher) (*domain.Voucher, error) {
	rows, err := queries.GetEntriesByVoucher(ctx, row.VoucherNo)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for _, e := range rows {
		entries = append(entries, rowToEntry(e))
	}

	voucher, err := domain.VoucherFromEntries(rowToVoucherHeader(row), entries)
	if err != nil {
		return nil, fmt.Errorf("voucher %s: %w", row.VoucherNo, err)
	}

	return voucher, nil
}

func rowToVoucherHeader(row generated.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherNo:         row.VoucherNo,
		Date:              pgDateToTime(row.VoucherDate),
		Kind:              domain.Kind(row.Kind),
		Amount:            numericToDecimal(row.Amount),
		Remarks:           row.Remarks,
		RefNo:             row.RefNo,
		IdempotencyKey:    row.IdempotencyKey.String,
		ReversesVoucherNo: row.ReversesVoucherNo.String,
		CreatedAt:         row.CreatedAt.Time,
	}
}
