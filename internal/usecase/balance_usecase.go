package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/domain"
)

// BalanceUseCase derives balances and ledger reports from stored entries.
// Nothing it returns is cached; every call folds the entries again.
type BalanceUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(accountRepo AccountRepository, entryRepo EntryRepository) *BalanceUseCase {
	return &BalanceUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// RunningBalance returns the balance of an account including every entry
// dated on or before asOf. A nil asOf includes all entries.
func (uc *BalanceUseCase) RunningBalance(ctx context.Context, accountID string, asOf *time.Time) (domain.Balance, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return domain.Balance{}, classify("get account", accountID, err)
	}

	summary, err := uc.Summarize(ctx, account, asOf)
	if err != nil {
		return domain.Balance{}, err
	}

	return summary.Balance, nil
}

// Summarize folds an already loaded account's entries up to asOf.
func (uc *BalanceUseCase) Summarize(ctx context.Context, account *domain.Account, asOf *time.Time) (*domain.AccountSummary, error) {
	entries, err := uc.entryRepo.ListByAccount(ctx, account.ID, nil, dayPtr(asOf))
	if err != nil {
		return nil, classify("list entries", account.ID, err)
	}

	return domain.Summarize(account, entries), nil
}

// LedgerReportInput selects an account and an inclusive date range.
type LedgerReportInput struct {
	AccountID string
	From      time.Time
	To        time.Time
}

// LedgerReport lists an account's entries between From and To with the
// running balance after each one. The opening balance is the running
// balance at the end of the day before From, so the closing balance always
// equals RunningBalance at To.
func (uc *BalanceUseCase) LedgerReport(ctx context.Context, input LedgerReportInput) (*domain.LedgerReport, error) {
	from := domain.Day(input.From)
	to := domain.Day(input.To)

	if input.From.IsZero() || input.To.IsZero() {
		return nil, domain.NewValidationError("from", domain.ErrInvalidDate)
	}
	if from.After(to) {
		return nil, domain.NewValidationError("from", domain.ErrInvalidDateRange)
	}

	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, classify("get account", input.AccountID, err)
	}

	dayBefore := from.AddDate(0, 0, -1)
	earlier, err := uc.entryRepo.ListByAccount(ctx, account.ID, nil, &dayBefore)
	if err != nil {
		return nil, classify("list entries", account.ID, err)
	}

	inRange, err := uc.entryRepo.ListByAccount(ctx, account.ID, &from, &to)
	if err != nil {
		return nil, classify("list entries", account.ID, err)
	}

	opening := domain.Fold(account, earlier)
	tally := domain.TallyFrom(account.NormalSide, opening)

	report := &domain.LedgerReport{
		Account:     account,
		From:        from,
		To:          to,
		Opening:     opening,
		Rows:        make([]domain.LedgerRow, 0, len(inRange)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	names := map[string]string{}
	for _, e := range inRange {
		tally.Apply(e)

		name, err := uc.particularsName(ctx, names, e.ParticularsID)
		if err != nil {
			return nil, err
		}

		report.Rows = append(report.Rows, domain.LedgerRow{
			Date:            e.Date,
			VoucherNo:       e.VoucherNo,
			ParticularsID:   e.ParticularsID,
			ParticularsName: name,
			Kind:            e.Kind,
			Remarks:         e.Remarks,
			RefNo:           e.RefNo,
			Debit:           e.DebitAmount,
			Credit:          e.CreditAmount,
			Balance:         tally.Balance(),
		})
		report.TotalDebit = report.TotalDebit.Add(e.DebitAmount)
		report.TotalCredit = report.TotalCredit.Add(e.CreditAmount)
	}

	report.Closing = tally.Balance()
	return report, nil
}

func (uc *BalanceUseCase) particularsName(ctx context.Context, names map[string]string, id string) (string, error) {
	if name, ok := names[id]; ok {
		return name, nil
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return "", classify("get account", id, err)
	}

	names[id] = account.Name
	return account.Name, nil
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := domain.Day(*t)
	return &day
}
