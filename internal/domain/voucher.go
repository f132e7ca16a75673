package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is a balanced pair of entries posted together.
type Voucher struct {
	VoucherNo         string
	Date              time.Time
	Kind              Kind
	Amount            decimal.Decimal
	Remarks           string
	RefNo             string
	IdempotencyKey    string
	ReversesVoucherNo string
	Debit             *Entry
	Credit            *Entry
	CreatedAt         time.Time
}

// VoucherDraft describes a posting before ids are assigned.
type VoucherDraft struct {
	VoucherNo         string
	DebitEntryID      string
	CreditEntryID     string
	FromAccountID     string
	ToAccountID       string
	Date              time.Time
	Amount            decimal.Decimal
	Kind              Kind
	Remarks           string
	RefNo             string
	IdempotencyKey    string
	ReversesVoucherNo string
}

// NewVoucher builds the pair: the from-account is debited with the
// to-account as particulars, the to-account is credited with the
// from-account as particulars. Both share date, remarks and reference.
func NewVoucher(d VoucherDraft, now time.Time) (*Voucher, error) {
	if !d.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if d.FromAccountID == d.ToAccountID {
		return nil, ErrSameAccount
	}

	debit := &Entry{
		ID:            d.DebitEntryID,
		VoucherNo:     d.VoucherNo,
		LedgerID:      d.FromAccountID,
		ParticularsID: d.ToAccountID,
		Date:          d.Date,
		DebitAmount:   d.Amount,
		CreditAmount:  decimal.Zero,
		Kind:          d.Kind,
		Remarks:       d.Remarks,
		RefNo:         d.RefNo,
		CreatedAt:     now,
	}
	credit := &Entry{
		ID:            d.CreditEntryID,
		VoucherNo:     d.VoucherNo,
		LedgerID:      d.ToAccountID,
		ParticularsID: d.FromAccountID,
		Date:          d.Date,
		DebitAmount:   decimal.Zero,
		CreditAmount:  d.Amount,
		Kind:          d.Kind,
		Remarks:       d.Remarks,
		RefNo:         d.RefNo,
		CreatedAt:     now,
	}

	v := &Voucher{
		VoucherNo:         d.VoucherNo,
		Date:              d.Date,
		Kind:              d.Kind,
		Amount:            d.Amount,
		Remarks:           d.Remarks,
		RefNo:             d.RefNo,
		IdempotencyKey:    d.IdempotencyKey,
		ReversesVoucherNo: d.ReversesVoucherNo,
		Debit:             debit,
		Credit:            credit,
		CreatedAt:         now,
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks that the pair is balanced and each entry is single-sided.
func (v *Voucher) Validate() error {
	if v.Debit == nil || v.Credit == nil {
		return ErrUnbalancedPair
	}
	if err := v.Debit.Validate(); err != nil {
		return err
	}
	if err := v.Credit.Validate(); err != nil {
		return err
	}
	if v.Debit.Side() != Debit || v.Credit.Side() != Credit {
		return ErrUnbalancedPair
	}
	if !v.Debit.DebitAmount.Equal(v.Credit.CreditAmount) {
		return ErrUnbalancedPair
	}
	if v.Debit.LedgerID != v.Credit.ParticularsID || v.Credit.LedgerID != v.Debit.ParticularsID {
		return ErrUnbalancedPair
	}
	return nil
}

// FromAccountID is the debited account.
func (v *Voucher) FromAccountID() string { return v.Debit.LedgerID }

// ToAccountID is the credited account.
func (v *Voucher) ToAccountID() string { return v.Credit.LedgerID }

// SamePosting reports whether d would have produced v. Used to tell an
// idempotent replay from a conflicting reuse of the same key.
func (v *Voucher) SamePosting(d VoucherDraft) bool {
	return v.FromAccountID() == d.FromAccountID &&
		v.ToAccountID() == d.ToAccountID &&
		v.Amount.Equal(d.Amount) &&
		v.Date.Equal(d.Date) &&
		v.Kind == d.Kind &&
		v.Remarks == d.Remarks &&
		v.RefNo == d.RefNo
}

// ReversalDraft returns the mirror posting of v.
func (v *Voucher) ReversalDraft(date time.Time, remarks string) VoucherDraft {
	if remarks == "" {
		remarks = "Reversal of " + v.VoucherNo
	}
	return VoucherDraft{
		FromAccountID:     v.ToAccountID(),
		ToAccountID:       v.FromAccountID(),
		Date:              date,
		Amount:            v.Amount,
		Kind:              KindReversal,
		Remarks:           remarks,
		RefNo:             v.RefNo,
		ReversesVoucherNo: v.VoucherNo,
	}
}

// VoucherFromEntries reassembles a voucher from its stored entries.
func VoucherFromEntries(header Voucher, entries []*Entry) (*Voucher, error) {
	v := header
	for _, e := range entries {
		switch e.Side() {
		case Debit:
			v.Debit = e
		case Credit:
			v.Credit = e
		}
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}
