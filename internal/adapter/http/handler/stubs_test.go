package handler

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/usecase"
)

type groupServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateGroupInput) (*domain.MainGroup, error)
	getFn    func(ctx context.Context, id string) (*domain.MainGroup, error)
	listFn   func(ctx context.Context, input usecase.PageInput) (*domain.Page[*domain.MainGroup], error)
}

func (s *groupServiceStub) CreateGroup(ctx context.Context, input usecase.CreateGroupInput) (*domain.MainGroup, error) {
	return s.createFn(ctx, input)
}

func (s *groupServiceStub) GetGroup(ctx context.Context, id string) (*domain.MainGroup, error) {
	return s.getFn(ctx, id)
}

func (s *groupServiceStub) ListGroups(ctx context.Context, input usecase.PageInput) (*domain.Page[*domain.MainGroup], error) {
	return s.listFn(ctx, input)
}

type accountServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn    func(ctx context.Context, id string) (*domain.Account, error)
	updateFn func(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error)
	listFn   func(ctx context.Context, input usecase.PageInput) (*domain.Page[*domain.Account], error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) UpdateAccount(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, input)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.PageInput) (*domain.Page[*domain.Account], error) {
	return s.listFn(ctx, input)
}

type balanceServiceStub struct {
	balanceFn func(ctx context.Context, accountID string, asOf *time.Time) (domain.Balance, error)
	ledgerFn  func(ctx context.Context, input usecase.LedgerReportInput) (*domain.LedgerReport, error)
}

func (s *balanceServiceStub) RunningBalance(ctx context.Context, accountID string, asOf *time.Time) (domain.Balance, error) {
	return s.balanceFn(ctx, accountID, asOf)
}

func (s *balanceServiceStub) LedgerReport(ctx context.Context, input usecase.LedgerReportInput) (*domain.LedgerReport, error) {
	return s.ledgerFn(ctx, input)
}

type postingServiceStub struct {
	postFn    func(ctx context.Context, input usecase.PostInput) (*domain.Voucher, error)
	reverseFn func(ctx context.Context, input usecase.ReverseInput) (*domain.Voucher, error)
	getFn     func(ctx context.Context, voucherNo string) (*domain.Voucher, error)
	listFn    func(ctx context.Context, input usecase.ListEntriesInput) (*domain.Page[*domain.Entry], error)
}

func (s *postingServiceStub) Post(ctx context.Context, input usecase.PostInput) (*domain.Voucher, error) {
	return s.postFn(ctx, input)
}

func (s *postingServiceStub) Reverse(ctx context.Context, input usecase.ReverseInput) (*domain.Voucher, error) {
	return s.reverseFn(ctx, input)
}

func (s *postingServiceStub) GetVoucher(ctx context.Context, voucherNo string) (*domain.Voucher, error) {
	return s.getFn(ctx, voucherNo)
}

func (s *postingServiceStub) ListEntries(ctx context.Context, input usecase.ListEntriesInput) (*domain.Page[*domain.Entry], error) {
	return s.listFn(ctx, input)
}

func testDate() time.Time {
	return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
}

func testVoucher(voucherNo string) *domain.Voucher {
	v, err := domain.NewVoucher(domain.VoucherDraft{
		VoucherNo:     voucherNo,
		DebitEntryID:  voucherNo + "-d",
		CreditEntryID: voucherNo + "-c",
		FromAccountID: "cash",
		ToAccountID:   "sales",
		Date:          testDate(),
		Amount:        decimal.RequireFromString("42.50"),
		Kind:          domain.KindPayIn,
	}, testDate())
	if err != nil {
		panic(err)
	}
	return v
}
