package usecase

import (
	"context"
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/domain"
)

// AccountCatalog lazily lists the chart of accounts.
type AccountCatalog interface {
	Accounts(ctx context.Context) iter.Seq2[*domain.Account, error]
	Groups(ctx context.Context) iter.Seq2[*domain.MainGroup, error]
}

// AccountSummarizer folds one account's entries up to a date.
type AccountSummarizer interface {
	Summarize(ctx context.Context, account *domain.Account, asOf *time.Time) (*domain.AccountSummary, error)
}

// ReportUseCase aggregates account balances by nature and main group.
type ReportUseCase struct {
	catalog  AccountCatalog
	balances AccountSummarizer
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(catalog AccountCatalog, balances AccountSummarizer) *ReportUseCase {
	return &ReportUseCase{
		catalog:  catalog,
		balances: balances,
	}
}

// snapshot is every account folded at one date, bucketed by nature.
type snapshot struct {
	sections          map[domain.Nature]*domain.NatureSection
	openingDifference decimal.Decimal
	summaries         []accountRow
}

type accountRow struct {
	group   *domain.MainGroup
	summary *domain.AccountSummary
}

func (uc *ReportUseCase) snapshot(ctx context.Context, asOf time.Time) (*snapshot, error) {
	if asOf.IsZero() {
		return nil, domain.NewValidationError("as_of", domain.ErrInvalidDate)
	}
	asOf = domain.Day(asOf)

	groups, err := Collect(uc.catalog.Groups(ctx))
	if err != nil {
		return nil, classify("list groups", "", err)
	}

	accounts, err := Collect(uc.catalog.Accounts(ctx))
	if err != nil {
		return nil, classify("list accounts", "", err)
	}

	snap := &snapshot{
		sections:          make(map[domain.Nature]*domain.NatureSection, len(domain.Natures)),
		openingDifference: decimal.Zero,
	}
	for _, n := range domain.Natures {
		snap.sections[n] = &domain.NatureSection{Nature: n, Total: decimal.Zero}
	}

	groupIndex := make(map[string]*domain.MainGroup, len(groups))
	lineIndex := make(map[string]int, len(groups))
	for _, g := range groups {
		groupIndex[g.ID] = g
		section := snap.sections[g.Nature]
		lineIndex[g.ID] = len(section.Groups)
		section.Groups = append(section.Groups, domain.GroupLine{
			GroupID:   g.ID,
			GroupName: g.Name,
			Nature:    g.Nature,
			Total:     decimal.Zero,
		})
	}

	for _, account := range accounts {
		group, ok := groupIndex[account.GroupID]
		if !ok {
			return nil, &domain.PersistenceError{
				Op:  "resolve group of account " + account.ID,
				Err: domain.ErrGroupNotFound,
			}
		}

		summary, err := uc.balances.Summarize(ctx, account, &asOf)
		if err != nil {
			return nil, err
		}

		amount := summary.Balance.DebitSigned()
		if group.Nature.NormalSide() == domain.Credit {
			amount = amount.Neg()
		}

		section := snap.sections[group.Nature]
		line := &section.Groups[lineIndex[group.ID]]
		line.Accounts = append(line.Accounts, domain.AccountLine{
			AccountID:   account.ID,
			AccountName: account.Name,
			TotalDebit:  summary.TotalDebit,
			TotalCredit: summary.TotalCredit,
			Balance:     summary.Balance,
			Amount:      amount,
		})
		line.Total = line.Total.Add(amount)
		section.Total = section.Total.Add(amount)

		snap.openingDifference = snap.openingDifference.Add(account.OpeningBalanceAsBalance().DebitSigned())
		snap.summaries = append(snap.summaries, accountRow{group: group, summary: summary})
	}

	return snap, nil
}

// NatureReport lists the main groups of one nature with per-account debit
// and credit totals and balances as of asOf.
func (uc *ReportUseCase) NatureReport(ctx context.Context, nature string, asOf time.Time) (*domain.NatureSection, error) {
	n, err := domain.ParseNature(nature)
	if err != nil {
		return nil, domain.NewValidationError("nature", err)
	}

	snap, err := uc.snapshot(ctx, asOf)
	if err != nil {
		return nil, err
	}

	return snap.sections[n], nil
}

// IncomeStatement totals income and expense accounts as of asOf.
func (uc *ReportUseCase) IncomeStatement(ctx context.Context, asOf time.Time) (*domain.IncomeStatement, error) {
	snap, err := uc.snapshot(ctx, asOf)
	if err != nil {
		return nil, err
	}

	income := snap.sections[domain.NatureIncome]
	expense := snap.sections[domain.NatureExpense]

	return &domain.IncomeStatement{
		AsOf:         domain.Day(asOf),
		Income:       *income,
		Expense:      *expense,
		TotalIncome:  income.Total,
		TotalExpense: expense.Total,
		NetIncome:    income.Total.Sub(expense.Total),
	}, nil
}

// BalanceSheet totals assets against liabilities, equity, net income to
// date and the difference in opening balances, as of asOf.
func (uc *ReportUseCase) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	snap, err := uc.snapshot(ctx, asOf)
	if err != nil {
		return nil, err
	}

	assets := snap.sections[domain.NatureAsset]
	liabilities := snap.sections[domain.NatureLiability]
	equity := snap.sections[domain.NatureEquity]
	netIncome := snap.sections[domain.NatureIncome].Total.Sub(snap.sections[domain.NatureExpense].Total)

	total := liabilities.Total.
		Add(equity.Total).
		Add(netIncome).
		Add(snap.openingDifference)

	return &domain.BalanceSheet{
		AsOf:                      domain.Day(asOf),
		Assets:                    *assets,
		Liabilities:               *liabilities,
		Equity:                    *equity,
		TotalAssets:               assets.Total,
		TotalLiabilities:          liabilities.Total,
		TotalEquity:               equity.Total,
		NetIncome:                 netIncome,
		OpeningDifference:         snap.openingDifference,
		TotalLiabilitiesAndEquity: total,
		Reconciled:                assets.Total.Equal(total),
	}, nil
}

// TrialBalance lists every account's closing balance in debit and credit
// columns as of asOf.
func (uc *ReportUseCase) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	snap, err := uc.snapshot(ctx, asOf)
	if err != nil {
		return nil, err
	}

	tb := &domain.TrialBalance{
		AsOf:        domain.Day(asOf),
		Lines:       make([]domain.TrialBalanceLine, 0, len(snap.summaries)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, row := range snap.summaries {
		line := domain.TrialBalanceLine{
			AccountID:   row.summary.Account.ID,
			AccountName: row.summary.Account.Name,
			GroupName:   row.group.Name,
			Nature:      row.group.Nature,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if row.summary.Balance.Side == domain.Debit {
			line.Debit = row.summary.Balance.Amount
		} else {
			line.Credit = row.summary.Balance.Amount
		}

		tb.Lines = append(tb.Lines, line)
		tb.TotalDebit = tb.TotalDebit.Add(line.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(line.Credit)
	}

	return tb, nil
}
