package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/infrastructure/postgres/generated"
	"github.com/iho/restledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepositoryWithDB(pool)
}

func newAccountRepositoryWithDB(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	err := r.queries.CreateAccount(ctx, generated.CreateAccountParams{
		ID:             account.ID,
		Name:           account.Name,
		MobileNo:       account.MobileNo,
		GroupID:        account.GroupID,
		OpeningBalance: decimalToNumeric(account.OpeningBalance),
		NormalSide:     string(account.NormalSide),
		CreatedAt:      timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(account.UpdatedAt),
	})

	return translate(err)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrAccountNotFound)
	}

	return rowToAccount(row), nil
}

// GetByIDTx retrieves an account inside a transaction with a FOR SHARE
// lock, so the account cannot be removed while entries referencing it are
// written.
func (r *AccountRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetAccountByIDForShare(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrAccountNotFound)
	}

	return rowToAccount(row), nil
}

// Update stores the account's name and mobile number.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	n, err := r.queries.UpdateAccount(ctx, generated.UpdateAccountParams{
		ID:        account.ID,
		Name:      account.Name,
		MobileNo:  account.MobileNo,
		UpdatedAt: timeToPgTimestamptz(account.UpdatedAt),
	})
	if err != nil {
		return translate(err)
	}

	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List lists accounts after a cursor, ordered by id.
func (r *AccountRepository) List(ctx context.Context, after string, limit int) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccounts(ctx, generated.ListAccountsParams{
		After: after,
		Limit: int32(limit),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:             row.ID,
		Name:           row.Name,
		MobileNo:       row.MobileNo,
		GroupID:        row.GroupID,
		OpeningBalance: numericToDecimal(row.OpeningBalance),
		NormalSide:     domain.Side(row.NormalSide),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
