package domain

import (
	"github.com/shopspring/decimal"
)

// Balance is a non-negative amount with the side it sits on.
type Balance struct {
	Amount decimal.Decimal
	Side   Side
}

// DebitSigned returns the balance as a signed number, debit positive.
func (b Balance) DebitSigned() decimal.Decimal {
	if b.Side == Credit {
		return b.Amount.Neg()
	}
	return b.Amount
}

// Equal compares amount and side. Zero balances on either side are equal.
func (b Balance) Equal(o Balance) bool {
	if b.Amount.IsZero() && o.Amount.IsZero() {
		return true
	}
	return b.Side == o.Side && b.Amount.Equal(o.Amount)
}

// Tally folds entries into a running balance oriented to a normal side.
// Debits add and credits subtract for DEBIT-normal accounts, mirrored for
// CREDIT-normal accounts.
type Tally struct {
	normal Side
	value  decimal.Decimal
}

// NewTally starts a tally at the account's opening balance.
func NewTally(a *Account) *Tally {
	return &Tally{normal: a.NormalSide, value: a.OpeningBalance}
}

// TallyFrom starts a tally at an already folded balance.
func TallyFrom(normal Side, start Balance) *Tally {
	value := start.Amount
	if start.Side != normal {
		value = value.Neg()
	}
	return &Tally{normal: normal, value: value}
}

// Apply adds one entry to the running balance.
func (t *Tally) Apply(e *Entry) {
	delta := e.DebitAmount.Sub(e.CreditAmount)
	if t.normal == Credit {
		delta = delta.Neg()
	}
	t.value = t.value.Add(delta)
}

// Balance returns the current running balance. A negative running value is
// reported on the opposite side with its absolute amount.
func (t *Tally) Balance() Balance {
	if t.value.IsNegative() {
		return Balance{Amount: t.value.Abs(), Side: t.normal.Opposite()}
	}
	return Balance{Amount: t.value, Side: t.normal}
}

// Fold computes an account's balance from its opening balance and entries,
// which must already be ordered by date then insertion sequence.
func Fold(a *Account, entries []*Entry) Balance {
	t := NewTally(a)
	for _, e := range entries {
		t.Apply(e)
	}
	return t.Balance()
}

// AccountSummary is an account's totals and balance as of a date.
type AccountSummary struct {
	Account     *Account
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balance     Balance
}

// Summarize folds entries and accumulates debit and credit totals.
func Summarize(a *Account, entries []*Entry) *AccountSummary {
	t := NewTally(a)
	s := &AccountSummary{Account: a, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, e := range entries {
		t.Apply(e)
		s.TotalDebit = s.TotalDebit.Add(e.DebitAmount)
		s.TotalCredit = s.TotalCredit.Add(e.CreditAmount)
	}
	s.Balance = t.Balance()
	return s
}
