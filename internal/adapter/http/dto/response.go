package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/usecase"
)

// Money renders an amount with two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(domain.AmountScale)
}

// Date renders a calendar day.
func Date(t time.Time) string {
	return domain.FormatDate(t)
}

// GroupResponse represents a main group in API responses.
type GroupResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Nature     string    `json:"nature"`
	NormalSide string    `json:"normal_side"`
	CreatedAt  time.Time `json:"created_at"`
}

// GroupFromDomain converts a domain group to a response.
func GroupFromDomain(g *domain.MainGroup) *GroupResponse {
	return &GroupResponse{
		ID:         g.ID,
		Name:       g.Name,
		Nature:     string(g.Nature),
		NormalSide: string(g.Nature.NormalSide()),
		CreatedAt:  g.CreatedAt,
	}
}

// ListGroupsResponse is one page of groups.
type ListGroupsResponse struct {
	Groups []*GroupResponse `json:"groups"`
	Next   string           `json:"next,omitempty"`
}

// GroupsFromPage converts a page of groups.
func GroupsFromPage(page *domain.Page[*domain.MainGroup]) *ListGroupsResponse {
	resp := &ListGroupsResponse{Groups: make([]*GroupResponse, len(page.Items)), Next: page.Next}
	for i, g := range page.Items {
		resp.Groups[i] = GroupFromDomain(g)
	}
	return resp
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	MobileNo       string    `json:"mobile_no,omitempty"`
	GroupID        string    `json:"group_id"`
	OpeningBalance string    `json:"opening_balance"`
	NormalSide     string    `json:"normal_side"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		MobileNo:       a.MobileNo,
		GroupID:        a.GroupID,
		OpeningBalance: Money(a.OpeningBalance),
		NormalSide:     string(a.NormalSide),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// ListAccountsResponse is one page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Next     string             `json:"next,omitempty"`
}

// AccountsFromPage converts a page of accounts.
func AccountsFromPage(page *domain.Page[*domain.Account]) *ListAccountsResponse {
	resp := &ListAccountsResponse{Accounts: make([]*AccountResponse, len(page.Items)), Next: page.Next}
	for i, a := range page.Items {
		resp.Accounts[i] = AccountFromDomain(a)
	}
	return resp
}

// BalanceResponse is a balance with its side.
type BalanceResponse struct {
	Amount string `json:"amount"`
	Side   string `json:"side"`
}

// BalanceFromDomain converts a domain balance.
func BalanceFromDomain(b domain.Balance) BalanceResponse {
	return BalanceResponse{Amount: Money(b.Amount), Side: string(b.Side)}
}

// AccountBalanceResponse is an account's running balance.
type AccountBalanceResponse struct {
	AccountID string          `json:"account_id"`
	AsOf      string          `json:"as_of,omitempty"`
	Balance   BalanceResponse `json:"balance"`
}

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID            string `json:"id"`
	Seq           int64  `json:"seq"`
	VoucherNo     string `json:"voucher_no"`
	LedgerID      string `json:"ledger_id"`
	ParticularsID string `json:"particulars_id"`
	Date          string `json:"date"`
	DebitAmount   string `json:"debit_amount"`
	CreditAmount  string `json:"credit_amount"`
	Kind          string `json:"kind"`
	Remarks       string `json:"remarks,omitempty"`
	RefNo         string `json:"ref_no,omitempty"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		Seq:           e.Seq,
		VoucherNo:     e.VoucherNo,
		LedgerID:      e.LedgerID,
		ParticularsID: e.ParticularsID,
		Date:          Date(e.Date),
		DebitAmount:   Money(e.DebitAmount),
		CreditAmount:  Money(e.CreditAmount),
		Kind:          string(e.Kind),
		Remarks:       e.Remarks,
		RefNo:         e.RefNo,
	}
}

// ListEntriesResponse is one page of entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Next    string           `json:"next,omitempty"`
}

// EntriesFromPage converts a page of entries.
func EntriesFromPage(page *domain.Page[*domain.Entry]) *ListEntriesResponse {
	resp := &ListEntriesResponse{Entries: make([]*EntryResponse, len(page.Items)), Next: page.Next}
	for i, e := range page.Items {
		resp.Entries[i] = EntryFromDomain(e)
	}
	return resp
}

// VoucherResponse represents a posted voucher.
type VoucherResponse struct {
	VoucherNo         string         `json:"voucher_no"`
	Date              string         `json:"date"`
	Kind              string         `json:"kind"`
	Amount            string         `json:"amount"`
	FromAccountID     string         `json:"from_account_id"`
	ToAccountID       string         `json:"to_account_id"`
	Remarks           string         `json:"remarks,omitempty"`
	RefNo             string         `json:"ref_no,omitempty"`
	ReversesVoucherNo string         `json:"reverses_voucher_no,omitempty"`
	Debit             *EntryResponse `json:"debit"`
	Credit            *EntryResponse `json:"credit"`
	CreatedAt         time.Time      `json:"created_at"`
}

// VoucherFromDomain converts a domain voucher to a response.
func VoucherFromDomain(v *domain.Voucher) *VoucherResponse {
	return &VoucherResponse{
		VoucherNo:         v.VoucherNo,
		Date:              Date(v.Date),
		Kind:              string(v.Kind),
		Amount:            Money(v.Amount),
		FromAccountID:     v.FromAccountID(),
		ToAccountID:       v.ToAccountID(),
		Remarks:           v.Remarks,
		RefNo:             v.RefNo,
		ReversesVoucherNo: v.ReversesVoucherNo,
		Debit:             EntryFromDomain(v.Debit),
		Credit:            EntryFromDomain(v.Credit),
		CreatedAt:         v.CreatedAt,
	}
}

// LedgerRowResponse is one line of a ledger report.
type LedgerRowResponse struct {
	Date            string          `json:"date"`
	VoucherNo       string          `json:"voucher_no"`
	ParticularsID   string          `json:"particulars_id"`
	ParticularsName string          `json:"particulars_name"`
	Kind            string          `json:"kind"`
	Remarks         string          `json:"remarks,omitempty"`
	RefNo           string          `json:"ref_no,omitempty"`
	Debit           string          `json:"debit"`
	Credit          string          `json:"credit"`
	Balance         BalanceResponse `json:"balance"`
}

// LedgerReportResponse is an account statement over a date range.
type LedgerReportResponse struct {
	Account     *AccountResponse    `json:"account"`
	From        string              `json:"from"`
	To          string              `json:"to"`
	Opening     BalanceResponse     `json:"opening"`
	Rows        []LedgerRowResponse `json:"rows"`
	TotalDebit  string              `json:"total_debit"`
	TotalCredit string              `json:"total_credit"`
	Closing     BalanceResponse     `json:"closing"`
}

// LedgerReportFromDomain converts a ledger report.
func LedgerReportFromDomain(r *domain.LedgerReport) *LedgerReportResponse {
	resp := &LedgerReportResponse{
		Account:     AccountFromDomain(r.Account),
		From:        Date(r.From),
		To:          Date(r.To),
		Opening:     BalanceFromDomain(r.Opening),
		Rows:        make([]LedgerRowResponse, len(r.Rows)),
		TotalDebit:  Money(r.TotalDebit),
		TotalCredit: Money(r.TotalCredit),
		Closing:     BalanceFromDomain(r.Closing),
	}
	for i, row := range r.Rows {
		resp.Rows[i] = LedgerRowResponse{
			Date:            Date(row.Date),
			VoucherNo:       row.VoucherNo,
			ParticularsID:   row.ParticularsID,
			ParticularsName: row.ParticularsName,
			Kind:            string(row.Kind),
			Remarks:         row.Remarks,
			RefNo:           row.RefNo,
			Debit:           Money(row.Debit),
			Credit:          Money(row.Credit),
			Balance:         BalanceFromDomain(row.Balance),
		}
	}
	return resp
}

// AccountLineResponse is one account in an aggregate report.
type AccountLineResponse struct {
	AccountID   string          `json:"account_id"`
	AccountName string          `json:"account_name"`
	TotalDebit  string          `json:"total_debit"`
	TotalCredit string          `json:"total_credit"`
	Balance     BalanceResponse `json:"balance"`
	Amount      string          `json:"amount"`
}

// GroupLineResponse is one main group in an aggregate report.
type GroupLineResponse struct {
	GroupID   string                `json:"group_id"`
	GroupName string                `json:"group_name"`
	Total     string                `json:"total"`
	Accounts  []AccountLineResponse `json:"accounts"`
}

// NatureSectionResponse is every group of one nature.
type NatureSectionResponse struct {
	Nature string              `json:"nature"`
	Groups []GroupLineResponse `json:"groups"`
	Total  string              `json:"total"`
}

// NatureSectionFromDomain converts a nature section.
func NatureSectionFromDomain(s domain.NatureSection) NatureSectionResponse {
	resp := NatureSectionResponse{
		Nature: string(s.Nature),
		Groups: make([]GroupLineResponse, len(s.Groups)),
		Total:  Money(s.Total),
	}
	for i, g := range s.Groups {
		line := GroupLineResponse{
			GroupID:   g.GroupID,
			GroupName: g.GroupName,
			Total:     Money(g.Total),
			Accounts:  make([]AccountLineResponse, len(g.Accounts)),
		}
		for j, a := range g.Accounts {
			line.Accounts[j] = AccountLineResponse{
				AccountID:   a.AccountID,
				AccountName: a.AccountName,
				TotalDebit:  Money(a.TotalDebit),
				TotalCredit: Money(a.TotalCredit),
				Balance:     BalanceFromDomain(a.Balance),
				Amount:      Money(a.Amount),
			}
		}
		resp.Groups[i] = line
	}
	return resp
}

// IncomeStatementResponse is income against expense up to a date.
type IncomeStatementResponse struct {
	AsOf         string                `json:"as_of"`
	Income       NatureSectionResponse `json:"income"`
	Expense      NatureSectionResponse `json:"expense"`
	TotalIncome  string                `json:"total_income"`
	TotalExpense string                `json:"total_expense"`
	NetIncome    string                `json:"net_income"`
}

// IncomeStatementFromDomain converts an income statement.
func IncomeStatementFromDomain(s *domain.IncomeStatement) *IncomeStatementResponse {
	return &IncomeStatementResponse{
		AsOf:         Date(s.AsOf),
		Income:       NatureSectionFromDomain(s.Income),
		Expense:      NatureSectionFromDomain(s.Expense),
		TotalIncome:  Money(s.TotalIncome),
		TotalExpense: Money(s.TotalExpense),
		NetIncome:    Money(s.NetIncome),
	}
}

// BalanceSheetResponse is assets against liabilities and equity.
type BalanceSheetResponse struct {
	AsOf                      string                `json:"as_of"`
	Assets                    NatureSectionResponse `json:"assets"`
	Liabilities               NatureSectionResponse `json:"liabilities"`
	Equity                    NatureSectionResponse `json:"equity"`
	TotalAssets               string                `json:"total_assets"`
	TotalLiabilities          string                `json:"total_liabilities"`
	TotalEquity               string                `json:"total_equity"`
	NetIncome                 string                `json:"net_income"`
	OpeningDifference         string                `json:"opening_difference"`
	TotalLiabilitiesAndEquity string                `json:"total_liabilities_and_equity"`
	Reconciled                bool                  `json:"reconciled"`
}

// BalanceSheetFromDomain converts a balance sheet.
func BalanceSheetFromDomain(s *domain.BalanceSheet) *BalanceSheetResponse {
	return &BalanceSheetResponse{
		AsOf:                      Date(s.AsOf),
		Assets:                    NatureSectionFromDomain(s.Assets),
		Liabilities:               NatureSectionFromDomain(s.Liabilities),
		Equity:                    NatureSectionFromDomain(s.Equity),
		TotalAssets:               Money(s.TotalAssets),
		TotalLiabilities:          Money(s.TotalLiabilities),
		TotalEquity:               Money(s.TotalEquity),
		NetIncome:                 Money(s.NetIncome),
		OpeningDifference:         Money(s.OpeningDifference),
		TotalLiabilitiesAndEquity: Money(s.TotalLiabilitiesAndEquity),
		Reconciled:                s.Reconciled,
	}
}

// TrialBalanceLineResponse is one account's closing balance in columns.
type TrialBalanceLineResponse struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
	GroupName   string `json:"group_name"`
	Nature      string `json:"nature"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

// TrialBalanceResponse lists every account's balance at a date.
type TrialBalanceResponse struct {
	AsOf        string                     `json:"as_of"`
	Lines       []TrialBalanceLineResponse `json:"lines"`
	TotalDebit  string                     `json:"total_debit"`
	TotalCredit string                     `json:"total_credit"`
}

// TrialBalanceFromDomain converts a trial balance.
func TrialBalanceFromDomain(tb *domain.TrialBalance) *TrialBalanceResponse {
	resp := &TrialBalanceResponse{
		AsOf:        Date(tb.AsOf),
		Lines:       make([]TrialBalanceLineResponse, len(tb.Lines)),
		TotalDebit:  Money(tb.TotalDebit),
		TotalCredit: Money(tb.TotalCredit),
	}
	for i, l := range tb.Lines {
		resp.Lines[i] = TrialBalanceLineResponse{
			AccountID:   l.AccountID,
			AccountName: l.AccountName,
			GroupName:   l.GroupName,
			Nature:      string(l.Nature),
			Debit:       Money(l.Debit),
			Credit:      Money(l.Credit),
		}
	}
	return resp
}

// ConsistencyResponse is the outcome of a ledger-wide check.
type ConsistencyResponse struct {
	Consistent         bool   `json:"consistent"`
	TotalDebits        string `json:"total_debits"`
	TotalCredits       string `json:"total_credits"`
	UnbalancedVouchers int64  `json:"unbalanced_vouchers"`
}

// ConsistencyFromUseCase converts a consistency report.
func ConsistencyFromUseCase(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		Consistent:         r.Consistent,
		TotalDebits:        Money(r.TotalDebits),
		TotalCredits:       Money(r.TotalCredits),
		UnbalancedVouchers: r.UnbalancedVouchers,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}
