package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/domain"
)

// GroupRepository defines data access for main groups.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.MainGroup) error
	GetByID(ctx context.Context, id string) (*domain.MainGroup, error)
	// List returns up to limit groups with id greater than after, ordered by id.
	List(ctx context.Context, after string, limit int) ([]*domain.MainGroup, error)
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDTx(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	// List returns up to limit accounts with id greater than after, ordered by id.
	List(ctx context.Context, after string, limit int) ([]*domain.Account, error)
}

// VoucherRepository defines data access for vouchers.
type VoucherRepository interface {
	Create(ctx context.Context, tx Transaction, voucher *domain.Voucher) error
	// GetByNo loads the voucher with both entries.
	GetByNo(ctx context.Context, voucherNo string) (*domain.Voucher, error)
	GetByNoTx(ctx context.Context, tx Transaction, voucherNo string) (*domain.Voucher, error)
	GetByIdempotencyKey(ctx context.Context, tx Transaction, key string) (*domain.Voucher, error)
}

// EntryRepository defines data access for entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	// ListByAccount returns the account's entries dated within [from, to],
	// either bound optional, ordered by date then insertion sequence.
	ListByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]*domain.Entry, error)
	// List returns entries matching filter with seq greater than AfterSeq, ordered by seq.
	List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	CheckConsistency(ctx context.Context) (totalDebits, totalCredits decimal.Decimal, unbalancedVouchers int64, err error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Locker serializes work on a key across processes.
type Locker interface {
	// Acquire blocks until the lock is held or ctx ends. The returned
	// function releases it.
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request failed so that it can be retried.
	Release(ctx context.Context, key string) error
}

// PostingMetrics records posting outcomes.
type PostingMetrics interface {
	VoucherPosted(kind domain.Kind, amount decimal.Decimal, took time.Duration)
	PostingFailed(reason string)
}
