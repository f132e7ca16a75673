package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a ledger in the chart of accounts. Its balance is never stored;
// it is folded from the opening balance and the account's entries.
type Account struct {
	ID             string
	Name           string
	MobileNo       string
	GroupID        string
	OpeningBalance decimal.Decimal
	NormalSide     Side
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OpeningBalanceAsBalance returns the opening balance on the account's normal side.
func (a *Account) OpeningBalanceAsBalance() Balance {
	return Balance{Amount: a.OpeningBalance, Side: a.NormalSide}
}

// Rename applies the editable descriptive fields. Nil leaves a field as is.
func (a *Account) Rename(name, mobileNo *string, at time.Time) {
	if name != nil {
		a.Name = *name
	}
	if mobileNo != nil {
		a.MobileNo = *mobileNo
	}
	a.UpdatedAt = at
}
