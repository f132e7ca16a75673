package usecase_test

import (
	"context"
	"errors"
	"iter"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/usecase"
)

// restaurantChart builds a small chart with one account per nature.
func restaurantChart(t *testing.T, l *testLedger) map[string]*domain.Account {
	t.Helper()
	return map[string]*domain.Account{
		"cash":     l.account(t, "Cash", l.group(t, "Current Assets", domain.NatureAsset), "500"),
		"bank":     l.account(t, "Bank", l.group(t, "Bank Accounts", domain.NatureAsset), "1200"),
		"supplier": l.account(t, "Fish Supplier", l.group(t, "Creditors", domain.NatureLiability), "300"),
		"capital":  l.account(t, "Owner Capital", l.group(t, "Capital", domain.NatureEquity), "1000"),
		"sales":    l.account(t, "Food Sales", l.group(t, "Sales", domain.NatureIncome), "0"),
		"wages":    l.account(t, "Wages", l.group(t, "Staff Costs", domain.NatureExpense), "0"),
	}
}

func TestReportUseCase_IncomeStatement(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	acc := restaurantChart(t, l)

	l.post(t, acc["cash"], acc["sales"], "800", "2024-01-10")
	l.post(t, acc["wages"], acc["cash"], "250", "2024-01-15")
	l.post(t, acc["cash"], acc["sales"], "60", "2024-02-01")

	stmt, err := l.reports.IncomeStatement(ctx, day(t, "2024-01-31"))
	require.NoError(t, err)

	assert.True(t, stmt.TotalIncome.Equal(decimal.NewFromInt(800)), "income %s", stmt.TotalIncome)
	assert.True(t, stmt.TotalExpense.Equal(decimal.NewFromInt(250)), "expense %s", stmt.TotalExpense)
	assert.True(t, stmt.NetIncome.Equal(decimal.NewFromInt(550)), "net %s", stmt.NetIncome)

	require.Len(t, stmt.Income.Groups, 1)
	require.Len(t, stmt.Income.Groups[0].Accounts, 1)
	line := stmt.Income.Groups[0].Accounts[0]
	assert.Equal(t, "Food Sales", line.AccountName)
	assert.True(t, line.TotalCredit.Equal(decimal.NewFromInt(800)))
	assert.True(t, line.Balance.Equal(bal("800", domain.Credit)))
}

func TestReportUseCase_BalanceSheetReconciles(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	acc := restaurantChart(t, l)

	names := []string{"cash", "bank", "supplier", "capital", "sales", "wages"}
	rng := rand.New(rand.NewSource(7))
	start := day(t, "2024-01-01")

	for i := 0; i < 60; i++ {
		from := acc[names[rng.Intn(len(names))]]
		to := acc[names[rng.Intn(len(names))]]
		if from.ID == to.ID {
			continue
		}
		amount := decimal.New(int64(rng.Intn(50000)+1), -2)
		date := start.AddDate(0, 0, rng.Intn(60))
		l.post(t, from, to, amount.StringFixed(2), domain.FormatDate(date))

		if i%10 == 0 {
			sheet, err := l.reports.BalanceSheet(ctx, date)
			require.NoError(t, err)
			require.True(t, sheet.Reconciled, "assets %s vs %s", sheet.TotalAssets, sheet.TotalLiabilitiesAndEquity)
		}
	}

	for _, s := range []string{"2023-12-31", "2024-01-20", "2024-03-31"} {
		sheet, err := l.reports.BalanceSheet(ctx, day(t, s))
		require.NoError(t, err)
		assert.True(t, sheet.TotalAssets.Equal(sheet.TotalLiabilitiesAndEquity),
			"as of %s: assets %s, liabilities and equity %s", s, sheet.TotalAssets, sheet.TotalLiabilitiesAndEquity)
		assert.True(t, sheet.Reconciled)
	}
}

func TestReportUseCase_BalanceSheetOpeningDifference(t *testing.T) {
	l := newTestLedger(t)
	restaurantChart(t, l)

	sheet, err := l.reports.BalanceSheet(context.Background(), day(t, "2024-01-01"))
	require.NoError(t, err)

	// 500 + 1200 debit against 300 + 1000 credit.
	assert.True(t, sheet.OpeningDifference.Equal(decimal.NewFromInt(400)), "difference %s", sheet.OpeningDifference)
	assert.True(t, sheet.TotalAssets.Equal(decimal.NewFromInt(1700)))
	assert.True(t, sheet.TotalLiabilities.Equal(decimal.NewFromInt(300)))
	assert.True(t, sheet.TotalEquity.Equal(decimal.NewFromInt(1000)))
	assert.True(t, sheet.Reconciled)
}

func TestReportUseCase_TrialBalance(t *testing.T) {
	l := newTestLedger(t)
	acc := restaurantChart(t, l)

	l.post(t, acc["cash"], acc["sales"], "120", "2024-01-10")
	l.post(t, acc["supplier"], acc["bank"], "300", "2024-01-11")

	tb, err := l.reports.TrialBalance(context.Background(), day(t, "2024-01-31"))
	require.NoError(t, err)
	require.Len(t, tb.Lines, 6)

	// Postings are balanced, so the columns differ only by the openings.
	assert.True(t, tb.TotalDebit.Sub(tb.TotalCredit).Equal(decimal.NewFromInt(400)),
		"debit %s credit %s", tb.TotalDebit, tb.TotalCredit)

	for _, line := range tb.Lines {
		if line.AccountID == acc["supplier"].ID {
			assert.True(t, line.Debit.IsZero() && line.Credit.IsZero(), "supplier settled: %+v", line)
		}
		if line.AccountID == acc["sales"].ID {
			assert.True(t, line.Credit.Equal(decimal.NewFromInt(120)))
			assert.Equal(t, "Sales", line.GroupName)
		}
	}
}

func TestReportUseCase_NatureReport(t *testing.T) {
	l := newTestLedger(t)
	acc := restaurantChart(t, l)
	l.post(t, acc["cash"], acc["bank"], "100", "2024-01-10")

	section, err := l.reports.NatureReport(context.Background(), "asset", day(t, "2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, domain.NatureAsset, section.Nature)
	assert.Len(t, section.Groups, 2)
	assert.True(t, section.Total.Equal(decimal.NewFromInt(1700)))

	_, err = l.reports.NatureReport(context.Background(), "revenue", day(t, "2024-01-31"))
	assert.True(t, domain.IsValidation(err))

	_, err = l.reports.IncomeStatement(context.Background(), time.Time{})
	assert.True(t, domain.IsValidation(err))
}

type stubCatalog struct {
	groups   []*domain.MainGroup
	accounts []*domain.Account
	err      error
}

func (s *stubCatalog) Groups(ctx context.Context) iter.Seq2[*domain.MainGroup, error] {
	return func(yield func(*domain.MainGroup, error) bool) {
		for _, g := range s.groups {
			if !yield(g, nil) {
				return
			}
		}
	}
}

func (s *stubCatalog) Accounts(ctx context.Context) iter.Seq2[*domain.Account, error] {
	return func(yield func(*domain.Account, error) bool) {
		for _, a := range s.accounts {
			if !yield(a, nil) {
				return
			}
		}
		if s.err != nil {
			yield(nil, s.err)
		}
	}
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(ctx context.Context, a *domain.Account, asOf *time.Time) (*domain.AccountSummary, error) {
	return domain.Summarize(a, nil), nil
}

func TestReportUseCase_CatalogFailures(t *testing.T) {
	group := &domain.MainGroup{ID: "g1", Name: "Cash", Nature: domain.NatureAsset}
	asOf := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		catalog *stubCatalog
		check   func(error) bool
	}{
		{
			name: "listing fails midway",
			catalog: &stubCatalog{
				groups:   []*domain.MainGroup{group},
				accounts: []*domain.Account{{ID: "a1", GroupID: "g1", NormalSide: domain.Debit}},
				err:      errors.New("page 2 timed out"),
			},
			check: domain.IsPersistence,
		},
		{
			name: "account references missing group",
			catalog: &stubCatalog{
				groups:   []*domain.MainGroup{group},
				accounts: []*domain.Account{{ID: "a1", GroupID: "gone", NormalSide: domain.Debit}},
			},
			check: domain.IsPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewReportUseCase(tt.catalog, stubSummarizer{})
			sheet, err := uc.BalanceSheet(context.Background(), asOf)
			if sheet != nil || err == nil || !tt.check(err) {
				t.Fatalf("BalanceSheet() = %v, %v", sheet, err)
			}
		})
	}
}
