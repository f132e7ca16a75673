package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func draft() VoucherDraft {
	return VoucherDraft{
		VoucherNo:     "V-1",
		DebitEntryID:  "e-1",
		CreditEntryID: "e-2",
		FromAccountID: "cash",
		ToAccountID:   "sales",
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:        d("50"),
		Kind:          KindPayIn,
		Remarks:       "table 4",
		RefNo:         "R-9",
	}
}

func TestNewVoucher(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*VoucherDraft)
		wantErr error
	}{
		{name: "valid pair"},
		{name: "same account", mutate: func(v *VoucherDraft) { v.ToAccountID = v.FromAccountID }, wantErr: ErrSameAccount},
		{name: "zero amount", mutate: func(v *VoucherDraft) { v.Amount = decimal.Zero }, wantErr: ErrInvalidAmount},
		{name: "negative amount", mutate: func(v *VoucherDraft) { v.Amount = d("-1") }, wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := draft()
			if tt.mutate != nil {
				tt.mutate(&in)
			}

			v, err := NewVoucher(in, time.Now())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if v.Debit.LedgerID != "cash" || v.Debit.ParticularsID != "sales" {
				t.Fatalf("debit entry should sit on the from-account, got %+v", v.Debit)
			}
			if v.Credit.LedgerID != "sales" || v.Credit.ParticularsID != "cash" {
				t.Fatalf("credit entry should sit on the to-account, got %+v", v.Credit)
			}
			if !v.Debit.DebitAmount.Equal(v.Credit.CreditAmount) {
				t.Fatalf("pair is not balanced")
			}
			if v.Debit.Side() != Debit || v.Credit.Side() != Credit {
				t.Fatalf("derived sides are wrong: %s/%s", v.Debit.Side(), v.Credit.Side())
			}
			if v.Debit.RefNo != v.Credit.RefNo || v.Debit.Remarks != v.Credit.Remarks || !v.Debit.Date.Equal(v.Credit.Date) {
				t.Fatalf("shared fields differ between entries")
			}
		})
	}
}

func TestEntryValidate(t *testing.T) {
	both := &Entry{DebitAmount: d("1"), CreditAmount: d("1")}
	neither := &Entry{DebitAmount: decimal.Zero, CreditAmount: decimal.Zero}
	negative := &Entry{DebitAmount: d("-1"), CreditAmount: decimal.Zero}

	for _, e := range []*Entry{both, neither, negative} {
		if err := e.Validate(); !errors.Is(err, ErrSingleSidedEntry) {
			t.Fatalf("expected ErrSingleSidedEntry for %+v, got %v", e, err)
		}
	}
}

func TestVoucherSamePosting(t *testing.T) {
	in := draft()
	v, err := NewVoucher(in, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !v.SamePosting(in) {
		t.Fatalf("expected identical draft to match")
	}

	in.Amount = d("51")
	if v.SamePosting(in) {
		t.Fatalf("expected different amount not to match")
	}
}

func TestVoucherReversalDraft(t *testing.T) {
	v, err := NewVoucher(draft(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rev := v.ReversalDraft(v.Date, "")
	if rev.FromAccountID != "sales" || rev.ToAccountID != "cash" {
		t.Fatalf("expected accounts swapped, got %s -> %s", rev.FromAccountID, rev.ToAccountID)
	}
	if rev.Kind != KindReversal || rev.ReversesVoucherNo != "V-1" {
		t.Fatalf("unexpected reversal draft %+v", rev)
	}
	if rev.Remarks != "Reversal of V-1" {
		t.Fatalf("unexpected default remarks %q", rev.Remarks)
	}
}

func TestVoucherFromEntriesRejectsUnbalanced(t *testing.T) {
	v, err := NewVoucher(draft(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	credit := *v.Credit
	credit.CreditAmount = d("49")

	if _, err := VoucherFromEntries(Voucher{VoucherNo: "V-1"}, []*Entry{v.Debit, &credit}); !errors.Is(err, ErrUnbalancedPair) {
		t.Fatalf("expected ErrUnbalancedPair, got %v", err)
	}

	got, err := VoucherFromEntries(Voucher{VoucherNo: "V-1"}, []*Entry{v.Credit, v.Debit})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FromAccountID() != "cash" || got.ToAccountID() != "sales" {
		t.Fatalf("unexpected reassembled voucher %+v", got)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(""); err != nil || k != KindJournal {
		t.Fatalf("expected empty kind to default to journal, got %s err=%v", k, err)
	}
	if k, err := ParseKind("PayIn"); err != nil || k != KindPayIn {
		t.Fatalf("expected payin, got %s err=%v", k, err)
	}
	if _, err := ParseKind("reversal"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected reversal to be rejected as a direct kind, got %v", err)
	}
}

func TestErrorClasses(t *testing.T) {
	ve := NewValidationError("amount", ErrInvalidAmount)
	if !IsValidation(ve) || !errors.Is(ve, ErrInvalidAmount) {
		t.Fatalf("validation error should unwrap to its cause")
	}

	nf := &NotFoundError{Resource: "account", ID: "x", Err: ErrAccountNotFound}
	if !IsNotFound(nf) || !errors.Is(nf, ErrAccountNotFound) || IsValidation(nf) {
		t.Fatalf("not found error classified incorrectly")
	}

	pe := &PersistenceError{Op: "insert entry", Err: errors.New("disk full")}
	if !IsPersistence(pe) || pe.Error() != "insert entry: disk full" {
		t.Fatalf("unexpected persistence error %v", pe)
	}
}
