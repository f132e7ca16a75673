package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRow is one entry of a ledger report with the balance after it.
type LedgerRow struct {
	Date            time.Time
	VoucherNo       string
	ParticularsID   string
	ParticularsName string
	Kind            Kind
	Remarks         string
	RefNo           string
	Debit           decimal.Decimal
	Credit          decimal.Decimal
	Balance         Balance
}

// LedgerReport lists an account's entries in a date range. Opening is the
// balance at the end of the day before From; Closing is the balance at To.
type LedgerReport struct {
	Account     *Account
	From        time.Time
	To          time.Time
	Opening     Balance
	Rows        []LedgerRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Closing     Balance
}

// AccountLine is an account's contribution to an aggregate report.
type AccountLine struct {
	AccountID   string
	AccountName string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balance     Balance
	// Amount is the balance signed in the orientation of the report section.
	Amount decimal.Decimal
}

// GroupLine aggregates the accounts of one main group.
type GroupLine struct {
	GroupID   string
	GroupName string
	Nature    Nature
	Total     decimal.Decimal
	Accounts  []AccountLine
}

// NatureSection is every group of one nature with its total.
type NatureSection struct {
	Nature Nature
	Groups []GroupLine
	Total  decimal.Decimal
}

// IncomeStatement summarises income and expense up to AsOf.
type IncomeStatement struct {
	AsOf         time.Time
	Income       NatureSection
	Expense      NatureSection
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetIncome    decimal.Decimal
}

// BalanceSheet summarises assets against liabilities and equity at AsOf.
// Net income to date and any imbalance in opening balances are carried on
// the liabilities side so that a ledger of balanced pairs always reconciles.
type BalanceSheet struct {
	AsOf                      time.Time
	Assets                    NatureSection
	Liabilities               NatureSection
	Equity                    NatureSection
	TotalAssets               decimal.Decimal
	TotalLiabilities          decimal.Decimal
	TotalEquity               decimal.Decimal
	NetIncome                 decimal.Decimal
	OpeningDifference         decimal.Decimal
	TotalLiabilitiesAndEquity decimal.Decimal
	Reconciled                bool
}

// TrialBalanceLine is one account's closing balance split into columns.
type TrialBalanceLine struct {
	AccountID   string
	AccountName string
	GroupName   string
	Nature      Nature
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// TrialBalance lists every account's balance at AsOf.
type TrialBalance struct {
	AsOf        time.Time
	Lines       []TrialBalanceLine
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}
