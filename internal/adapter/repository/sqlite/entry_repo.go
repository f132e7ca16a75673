package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/usecase"
)

const entryColumns = `seq, id, voucher_no, ledger_id, particulars_id, entry_date, debit_amount, credit_amount, kind, remarks, ref_no, created_at`

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	db querier
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create writes an entry and records its sequence number.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	res, err := sqlTx(tx).ExecContext(ctx,
		`INSERT INTO entries (id, voucher_no, ledger_id, particulars_id, entry_date, debit_amount, credit_amount, kind, remarks, ref_no, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.VoucherNo,
		entry.LedgerID,
		entry.ParticularsID,
		formatDate(entry.Date),
		toCents(entry.DebitAmount),
		toCents(entry.CreditAmount),
		string(entry.Kind),
		entry.Remarks,
		entry.RefNo,
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return translate(err, domain.ErrAccountNotFound)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.Seq = seq
	return nil
}

// ListByAccount lists an account's entries dated within [from, to],
// ordered by date then sequence.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]*domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries
		 WHERE ledger_id = ?
		   AND (? IS NULL OR entry_date >= ?)
		   AND (? IS NULL OR entry_date <= ?)
		 ORDER BY entry_date, seq`,
		accountID, optionalDate(from), optionalDate(from), optionalDate(to), optionalDate(to),
	)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// List lists entries in sequence order.
func (r *EntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	var (
		where = []string{"seq > ?"}
		args  = []any{filter.AfterSeq}
	)
	if filter.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.AccountID != "" {
		where = append(where, "ledger_id = ?")
		args = append(args, filter.AccountID)
	}
	args = append(args, filter.Limit)

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE `+strings.Join(where, " AND ")+` ORDER BY seq LIMIT ?`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func entriesByVoucher(ctx context.Context, q querier, voucherNo string) ([]*domain.Entry, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE voucher_no = ? ORDER BY seq`,
		voucherNo,
	)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]*domain.Entry, error) {
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(s scanner) (*domain.Entry, error) {
	var (
		entry           domain.Entry
		date, createdAt string
		debit, credit   int64
		kind            string
	)
	err := s.Scan(
		&entry.Seq,
		&entry.ID,
		&entry.VoucherNo,
		&entry.LedgerID,
		&entry.ParticularsID,
		&date,
		&debit,
		&credit,
		&kind,
		&entry.Remarks,
		&entry.RefNo,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if entry.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	entry.DebitAmount = fromCents(debit)
	entry.CreditAmount = fromCents(credit)
	entry.Kind = domain.Kind(kind)
	entry.CreatedAt = parseTime(createdAt)
	return &entry, nil
}
