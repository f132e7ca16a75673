package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidNature is returned for an unknown nature group.
var ErrInvalidNature = errors.New("nature must be one of ASSET, LIABILITY, EQUITY, INCOME, EXPENSE")

// Nature is the root classification of the chart of accounts.
type Nature string

const (
	NatureAsset     Nature = "ASSET"
	NatureLiability Nature = "LIABILITY"
	NatureEquity    Nature = "EQUITY"
	NatureIncome    Nature = "INCOME"
	NatureExpense   Nature = "EXPENSE"
)

// Natures lists every nature in reporting order.
var Natures = []Nature{NatureAsset, NatureLiability, NatureEquity, NatureIncome, NatureExpense}

// ParseNature accepts a nature name in any case.
func ParseNature(s string) (Nature, error) {
	n := Nature(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Natures {
		if n == known {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidNature, s)
}

// NormalSide is the side on which balances of this nature normally sit.
func (n Nature) NormalSide() Side {
	switch n {
	case NatureAsset, NatureExpense:
		return Debit
	default:
		return Credit
	}
}

// MainGroup is a named bucket of accounts under a nature.
type MainGroup struct {
	ID        string
	Name      string
	Nature    Nature
	CreatedAt time.Time
}
