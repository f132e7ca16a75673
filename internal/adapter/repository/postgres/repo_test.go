package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/domain"
)

var entryColumns = []string{
	"seq", "id", "voucher_no", "ledger_id", "particulars_id", "entry_date",
	"debit_amount", "credit_amount", "kind", "remarks", "ref_no", "created_at",
}

var voucherColumns = []string{
	"voucher_no", "voucher_date", "kind", "amount", "remarks", "ref_no",
	"idempotency_key", "reverses_voucher_no", "created_at",
}

func num(s string) pgtype.Numeric {
	return decimalToNumeric(decimal.RequireFromString(s))
}

func date(y int, m time.Month, d int) pgtype.Date {
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func TestGroupRepositoryCreateMapsDuplicateName(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec("INSERT INTO main_groups").
		WithArgs("g-1", "Cash", "ASSET", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "main_groups_name_key"})

	repo := newGroupRepositoryWithDB(mock)
	err := repo.Create(context.Background(), &domain.MainGroup{ID: "g-1", Name: "Cash", Nature: domain.NatureAsset})
	if !errors.Is(err, domain.ErrDuplicateGroupName) {
		t.Fatalf("expected duplicate group name, got %v", err)
	}

	assertExpectations(t, mock)
}

func TestAccountRepositoryGetByID(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mock := newMockPool(t)
	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE id").
		WithArgs("a-1").
		WillReturnRows(mock.NewRows([]string{
			"id", "name", "mobile_no", "group_id", "opening_balance", "normal_side", "created_at", "updated_at",
		}).AddRow(
			"a-1", "Cash", "", "g-1", num("500.00"), "DEBIT",
			pgtype.Timestamptz{Time: now, Valid: true}, pgtype.Timestamptz{Time: now, Valid: true},
		))

	repo := newAccountRepositoryWithDB(mock)
	account, err := repo.GetByID(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Name != "Cash" || account.NormalSide != domain.Debit {
		t.Fatalf("unexpected account %+v", account)
	}
	if !account.OpeningBalance.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("expected opening 500, got %s", account.OpeningBalance)
	}

	assertExpectations(t, mock)
}

func TestAccountRepositoryGetByIDNotFound(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := newAccountRepositoryWithDB(mock)
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
}

func TestAccountRepositoryUpdateMissingRow(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec("UPDATE accounts").
		WithArgs("a-9", "Till", "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := newAccountRepositoryWithDB(mock)
	err := repo.Update(context.Background(), &domain.Account{ID: "a-9", Name: "Till"})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}

	assertExpectations(t, mock)
}

func TestAccountRepositoryCreateUnknownGroup(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec("INSERT INTO accounts").
		WithArgs("a-1", "Cash", "", "nope", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrForeignKeyViolation, ConstraintName: "accounts_group_id_fkey"})

	repo := newAccountRepositoryWithDB(mock)
	err := repo.Create(context.Background(), &domain.Account{ID: "a-1", Name: "Cash", GroupID: "nope", NormalSide: domain.Debit})
	if !errors.Is(err, domain.ErrGroupNotFound) {
		t.Fatalf("expected group not found, got %v", err)
	}

	assertExpectations(t, mock)
}

func TestEntryRepositoryCreateRecordsSeq(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO entries").
		WithArgs("e-1", "V-1", "a-1", "a-2", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"seq"}).AddRow(int64(42)))
	mock.ExpectCommit()

	tx, err := newTxManagerWithPool(mock).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	entry := &domain.Entry{
		ID:            "e-1",
		VoucherNo:     "V-1",
		LedgerID:      "a-1",
		ParticularsID: "a-2",
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DebitAmount:   decimal.RequireFromString("25.50"),
		CreditAmount:  decimal.Zero,
		Kind:          domain.KindPayIn,
	}

	repo := newEntryRepositoryWithDB(mock)
	if err := repo.Create(context.Background(), tx, entry); err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.Seq != 42 {
		t.Fatalf("expected seq 42, got %d", entry.Seq)
	}
	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}

	assertExpectations(t, mock)
}

func TestEntryRepositoryListByAccount(t *testing.T) {
	now := pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
	mock := newMockPool(t)
	mock.ExpectQuery("SELECT (.+) FROM entries").
		WithArgs("a-1", pgtype.Date{}, date(2024, 3, 31)).
		WillReturnRows(mock.NewRows(entryColumns).
			AddRow(int64(1), "e-1", "V-1", "a-1", "a-2", date(2024, 3, 1), num("10"), num("0"), "payin", "", "", now).
			AddRow(int64(4), "e-4", "V-2", "a-1", "a-3", date(2024, 3, 2), num("0"), num("4"), "payout", "", "", now))

	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	repo := newEntryRepositoryWithDB(mock)
	entries, err := repo.ListByAccount(context.Background(), "a-1", nil, &to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Side() != domain.Credit || entries[1].Seq != 4 {
		t.Fatalf("unexpected second entry %+v", entries[1])
	}

	assertExpectations(t, mock)
}

func TestVoucherRepositoryGetByNoAssemblesPair(t *testing.T) {
	now := pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
	mock := newMockPool(t)
	mock.ExpectQuery("SELECT (.+) FROM vouchers WHERE voucher_no").
		WithArgs("V-1").
		WillReturnRows(mock.NewRows(voucherColumns).
			AddRow("V-1", date(2024, 3, 1), "payin", num("10"), "lunch", "", pgtype.Text{}, pgtype.Text{}, now))
	mock.ExpectQuery("SELECT (.+) FROM entries").
		WithArgs("V-1").
		WillReturnRows(mock.NewRows(entryColumns).
			AddRow(int64(1), "e-1", "V-1", "a-1", "a-2", date(2024, 3, 1), num("10"), num("0"), "payin", "lunch", "", now).
			AddRow(int64(2), "e-2", "V-1", "a-2", "a-1", date(2024, 3, 1), num("0"), num("10"), "payin", "lunch", "", now))

	repo := newVoucherRepositoryWithDB(mock)
	voucher, err := repo.GetByNo(context.Background(), "V-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if voucher.FromAccountID() != "a-1" || voucher.ToAccountID() != "a-2" {
		t.Fatalf("unexpected pair %s -> %s", voucher.FromAccountID(), voucher.ToAccountID())
	}
	if voucher.IdempotencyKey != "" {
		t.Fatalf("expected empty idempotency key, got %q", voucher.IdempotencyKey)
	}

	assertExpectations(t, mock)
}

func TestVoucherRepositoryGetByNoRejectsHalfPair(t *testing.T) {
	now := pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
	mock := newMockPool(t)
	mock.ExpectQuery("SELECT (.+) FROM vouchers WHERE voucher_no").
		WithArgs("V-1").
		WillReturnRows(mock.NewRows(voucherColumns).
			AddRow("V-1", date(2024, 3, 1), "payin", num("10"), "", "", pgtype.Text{}, pgtype.Text{}, now))
	mock.ExpectQuery("SELECT (.+) FROM entries").
		WithArgs("V-1").
		WillReturnRows(mock.NewRows(entryColumns).
			AddRow(int64(1), "e-1", "V-1", "a-1", "a-2", date(2024, 3, 1), num("10"), num("0"), "payin", "", "", now))

	repo := newVoucherRepositoryWithDB(mock)
	if _, err := repo.GetByNo(context.Background(), "V-1"); !errors.Is(err, domain.ErrUnbalancedPair) {
		t.Fatalf("expected unbalanced pair, got %v", err)
	}
}

func TestVoucherRepositoryCreateMapsAlreadyReversed(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO vouchers").
		WithArgs("V-2", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "vouchers_reverses_voucher_no_key"})
	mock.ExpectRollback()

	tx, err := newTxManagerWithPool(mock).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	repo := newVoucherRepositoryWithDB(mock)
	err = repo.Create(context.Background(), tx, &domain.Voucher{
		VoucherNo:         "V-2",
		Kind:              domain.KindReversal,
		Amount:            decimal.RequireFromString("10"),
		ReversesVoucherNo: "V-1",
	})
	if !errors.Is(err, domain.ErrAlreadyReversed) {
		t.Fatalf("expected already reversed, got %v", err)
	}
	_ = tx.Rollback(context.Background())

	assertExpectations(t, mock)
}

func TestLedgerRepositoryCheckConsistency(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery("SELECT").
		WillReturnRows(mock.NewRows([]string{"total_debits", "total_credits"}).AddRow(num("120.50"), num("120.50")))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(0)))

	repo := newLedgerRepositoryWithDB(mock)
	debits, credits, unbalanced, err := repo.CheckConsistency(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !debits.Equal(credits) || unbalanced != 0 {
		t.Fatalf("expected balanced ledger, got %s/%s/%d", debits, credits, unbalanced)
	}

	assertExpectations(t, mock)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"deadlock", &pgconn.PgError{Code: pgErrDeadlock}, true},
		{"serialization", &pgconn.PgError{Code: pgErrSerializationFailure}, true},
		{"unique violation", &pgconn.PgError{Code: pgErrUniqueViolation}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Fatalf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "0.01", "1234.50", "99999999.99"} {
		d := decimal.RequireFromString(s)
		if got := numericToDecimal(decimalToNumeric(d)); !got.Equal(d) {
			t.Fatalf("%s came back as %s", s, got)
		}
	}
}
