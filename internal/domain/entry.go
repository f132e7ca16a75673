package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidKind is returned for an unknown transaction kind.
var ErrInvalidKind = errors.New("kind must be one of payin, payout, journal")

// Kind classifies a voucher the way the cash book screens do.
type Kind string

const (
	KindPayIn    Kind = "payin"
	KindPayOut   Kind = "payout"
	KindJournal  Kind = "journal"
	KindReversal Kind = "reversal"
)

// ParseKind accepts the kinds a caller may post directly. Reversal vouchers
// are only created by reversing an existing voucher.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindPayIn, KindPayOut, KindJournal:
		return k, nil
	case "":
		return KindJournal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Entry is one side of a voucher. Exactly one of DebitAmount and
// CreditAmount is positive; the other is zero.
type Entry struct {
	ID            string
	VoucherNo     string
	LedgerID      string
	ParticularsID string
	Date          time.Time
	DebitAmount   decimal.Decimal
	CreditAmount  decimal.Decimal
	Kind          Kind
	Remarks       string
	RefNo         string
	Seq           int64
	CreatedAt     time.Time
}

// Side is derived from which amount is non-zero.
func (e *Entry) Side() Side {
	if e.DebitAmount.IsPositive() {
		return Debit
	}
	return Credit
}

// Amount is the non-zero amount of the entry.
func (e *Entry) Amount() decimal.Decimal {
	if e.DebitAmount.IsPositive() {
		return e.DebitAmount
	}
	return e.CreditAmount
}

// Validate checks the single-sided rule.
func (e *Entry) Validate() error {
	if e.DebitAmount.IsNegative() || e.CreditAmount.IsNegative() {
		return ErrSingleSidedEntry
	}
	if e.DebitAmount.IsPositive() == e.CreditAmount.IsPositive() {
		return ErrSingleSidedEntry
	}
	return nil
}

// EntryFilter selects entries for paginated listing.
type EntryFilter struct {
	Kind      Kind
	AccountID string
	AfterSeq  int64
	Limit     int
}
