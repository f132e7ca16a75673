package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/infrastructure/postgres/generated"
	"github.com/iho/restledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return newEntryRepositoryWithDB(pool)
}

func newEntryRepositoryWithDB(db generated.DBTX) *EntryRepository {
	return &EntryRepository{queries: generated.New(db)}
}

// Create writes an entry and records the sequence number the database
// assigned to it.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	seq, err := queries.CreateEntry(ctx, generated.CreateEntryParams{
		ID:            entry.ID,
		VoucherNo:     entry.VoucherNo,
		LedgerID:      entry.LedgerID,
		ParticularsID: entry.ParticularsID,
		EntryDate:     timeToPgDate(entry.Date),
		DebitAmount:   decimalToNumeric(entry.DebitAmount),
		CreditAmount:  decimalToNumeric(entry.CreditAmount),
		Kind:          string(entry.Kind),
		Remarks:       entry.Remarks,
		RefNo:         entry.RefNo,
		CreatedAt:     timeToPgTimestamptz(entry.CreatedAt),
	})
	if err != nil {
		return translate(err)
	}

	entry.Seq = seq
	return nil
}

// ListByAccount lists an account's entries dated within [from, to],
// ordered by date then sequence.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]*domain.Entry, error) {
	rows, err := r.queries.ListEntriesByAccount(ctx, generated.ListEntriesByAccountParams{
		LedgerID: accountID,
		FromDate: optionalDate(from),
		ToDate:   optionalDate(to),
	})
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// List lists entries in sequence order.
func (r *EntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	rows, err := r.queries.ListEntries(ctx, generated.ListEntriesParams{
		AfterSeq:  filter.AfterSeq,
		Kind:      string(filter.Kind),
		AccountID: filter.AccountID,
		Limit:     int32(filter.Limit),
	})
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

func rowsToEntries(rows []generated.Entry) []*domain.Entry {
	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}
	return entries
}

func rowToEntry(row generated.Entry) *domain.Entry {
	return &domain.Entry{
		ID:            row.ID,
		VoucherNo:     row.VoucherNo,
		LedgerID:      row.LedgerID,
		ParticularsID: row.ParticularsID,
		Date:          pgDateToTime(row.EntryDate),
		DebitAmount:   numericToDecimal(row.DebitAmount),
		CreditAmount:  numericToDecimal(row.CreditAmount),
		Kind:          domain.Kind(row.Kind),
		Remarks:       row.Remarks,
		RefNo:         row.RefNo,
		Seq:           row.Seq,
		CreatedAt:     row.CreatedAt.Time,
	}
}
