package usecase

import (
	"context"
	"encoding/json"
	"iter"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/domain"
)

// AccountUseCase is the account registry: the chart of main groups and the
// accounts under them.
type AccountUseCase struct {
	groupRepo    GroupRepository
	accountRepo  AccountRepository
	idGen        IDGenerator
	cache        Cache
	cacheTTL     time.Duration
	mobileRegion string
	pageSize     int
	logger       zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(groupRepo GroupRepository, accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		groupRepo:    groupRepo,
		accountRepo:  accountRepo,
		idGen:        idGen,
		cacheTTL:     DefaultAccountCacheTTL,
		mobileRegion: domain.DefaultRegion,
		pageSize:     domain.DefaultPageSize,
		logger:       zerolog.Nop(),
	}
}

// WithCache enables read-through caching of single account lookups.
func (uc *AccountUseCase) WithCache(cache Cache, ttl time.Duration) *AccountUseCase {
	uc.cache = cache
	if ttl > 0 {
		uc.cacheTTL = ttl
	}
	return uc
}

// WithMobileRegion sets the region used to parse mobile numbers without a
// country prefix.
func (uc *AccountUseCase) WithMobileRegion(region string) *AccountUseCase {
	if region != "" {
		uc.mobileRegion = region
	}
	return uc
}

// WithPageSize sets the page size used by the lazy sequences.
func (uc *AccountUseCase) WithPageSize(n int) *AccountUseCase {
	uc.pageSize = domain.NormalizeLimit(n)
	return uc
}

// WithLogger sets the logger.
func (uc *AccountUseCase) WithLogger(logger zerolog.Logger) *AccountUseCase {
	uc.logger = logger
	return uc
}

// CreateGroupInput represents input for creating a main group.
type CreateGroupInput struct {
	Name   string
	Nature string
}

// CreateGroup creates a new main group.
func (uc *AccountUseCase) CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.MainGroup, error) {
	if err := domain.ValidateName(input.Name, domain.ErrInvalidGroupName); err != nil {
		return nil, domain.NewValidationError("name", err)
	}

	nature, err := domain.ParseNature(input.Nature)
	if err != nil {
		return nil, domain.NewValidationError("nature", err)
	}

	group := &domain.MainGroup{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Nature:    nature,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.groupRepo.Create(ctx, group); err != nil {
		return nil, classify("create group", group.ID, err)
	}

	return group, nil
}

// GetGroup retrieves a main group by ID.
func (uc *AccountUseCase) GetGroup(ctx context.Context, id string) (*domain.MainGroup, error) {
	group, err := uc.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, classify("get group", id, err)
	}
	return group, nil
}

// ListGroups returns one page of main groups.
func (uc *AccountUseCase) ListGroups(ctx context.Context, input PageInput) (*domain.Page[*domain.MainGroup], error) {
	limit := domain.NormalizeLimit(input.Limit)

	rows, err := uc.groupRepo.List(ctx, input.Cursor, limit+1)
	if err != nil {
		return nil, classify("list groups", "", err)
	}

	return pageOf(rows, limit, func(g *domain.MainGroup) string { return g.ID }), nil
}

// Groups lazily yields every main group.
func (uc *AccountUseCase) Groups(ctx context.Context) iter.Seq2[*domain.MainGroup, error] {
	return walk(ctx, uc.pageSize, uc.ListGroups)
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name           string
	MobileNo       string
	GroupID        string
	OpeningBalance decimal.Decimal
	// NormalSide defaults to the group's nature side when empty.
	NormalSide string
}

// CreateAccount creates a new account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, domain.NewValidationError("name", err)
	}

	mobile, err := domain.ValidateMobileNo(input.MobileNo, uc.mobileRegion)
	if err != nil {
		return nil, domain.NewValidationError("mobile_no", err)
	}

	if err := domain.ValidateOpeningBalance(input.OpeningBalance); err != nil {
		return nil, domain.NewValidationError("opening_balance", err)
	}

	group, err := uc.groupRepo.GetByID(ctx, input.GroupID)
	if err != nil {
		err = classify("get group", input.GroupID, err)
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("group_id", err)
		}
		return nil, err
	}

	side := group.Nature.NormalSide()
	if input.NormalSide != "" {
		side, err = domain.ParseSide(input.NormalSide)
		if err != nil {
			return nil, domain.NewValidationError("debit_credit", err)
		}
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		Name:           input.Name,
		MobileNo:       mobile,
		GroupID:        group.ID,
		OpeningBalance: input.OpeningBalance,
		NormalSide:     side,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, classify("create account", account.ID, err)
	}

	uc.logger.Info().
		Str("account_id", account.ID).
		Str("group_id", account.GroupID).
		Str("opening_balance", account.OpeningBalance.StringFixed(domain.AmountScale)).
		Msg("account created")

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if cached := uc.cachedAccount(ctx, id); cached != nil {
		return cached, nil
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, classify("get account", id, err)
	}

	uc.storeAccount(ctx, account)
	return account, nil
}

// UpdateAccountInput changes an account's descriptive fields. Nil fields are
// left unchanged.
type UpdateAccountInput struct {
	ID       string
	Name     *string
	MobileNo *string
}

// UpdateAccount edits the name or mobile number of an account. Group,
// opening balance and normal side cannot change once entries may exist.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*domain.Account, error) {
	if input.Name != nil {
		if err := domain.ValidateAccountName(*input.Name); err != nil {
			return nil, domain.NewValidationError("name", err)
		}
	}

	if input.MobileNo != nil {
		mobile, err := domain.ValidateMobileNo(*input.MobileNo, uc.mobileRegion)
		if err != nil {
			return nil, domain.NewValidationError("mobile_no", err)
		}
		input.MobileNo = &mobile
	}

	account, err := uc.accountRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, classify("get account", input.ID, err)
	}

	account.Rename(input.Name, input.MobileNo, time.Now().UTC())

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, classify("update account", input.ID, err)
	}

	uc.evictAccount(ctx, account.ID)
	return account, nil
}

// ListAccounts returns one page of accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input PageInput) (*domain.Page[*domain.Account], error) {
	limit := domain.NormalizeLimit(input.Limit)

	rows, err := uc.accountRepo.List(ctx, input.Cursor, limit+1)
	if err != nil {
		return nil, classify("list accounts", "", err)
	}

	return pageOf(rows, limit, func(a *domain.Account) string { return a.ID }), nil
}

// Accounts lazily yields every account, one page at a time.
func (uc *AccountUseCase) Accounts(ctx context.Context) iter.Seq2[*domain.Account, error] {
	return walk(ctx, uc.pageSize, uc.ListAccounts)
}

func (uc *AccountUseCase) cachedAccount(ctx context.Context, id string) *domain.Account {
	if uc.cache == nil {
		return nil
	}

	raw, err := uc.cache.Get(ctx, accountCachePrefix+id)
	if err != nil || raw == nil {
		return nil
	}

	var account domain.Account
	if err := json.Unmarshal(raw, &account); err != nil {
		uc.logger.Warn().Err(err).Str("account_id", id).Msg("discarding undecodable cached account")
		return nil
	}

	return &account
}

func (uc *AccountUseCase) storeAccount(ctx context.Context, account *domain.Account) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(account)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, accountCachePrefix+account.ID, raw, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("account_id", account.ID).Msg("account cache write failed")
	}
}

func (uc *AccountUseCase) evictAccount(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Delete(ctx, accountCachePrefix+id); err != nil {
		uc.logger.Warn().Err(err).Str("account_id", id).Msg("account cache eviction failed")
	}
}
