package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// ConsistencyReport is the outcome of a ledger-wide check.
type ConsistencyReport struct {
	TotalDebits        decimal.Decimal
	TotalCredits       decimal.Decimal
	UnbalancedVouchers int64
	Consistent         bool
}

// Report gathers the ledger totals. The ledger is consistent when both
// columns agree and every voucher holds one debit and one credit of equal
// amount.
func (uc *LedgerUseCase) Report(ctx context.Context) (*ConsistencyReport, error) {
	totalDebits, totalCredits, unbalanced, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return nil, classify("check consistency", "", err)
	}

	return &ConsistencyReport{
		TotalDebits:        totalDebits,
		TotalCredits:       totalCredits,
		UnbalancedVouchers: unbalanced,
		Consistent:         totalDebits.Equal(totalCredits) && unbalanced == 0,
	}, nil
}
