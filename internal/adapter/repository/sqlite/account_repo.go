package sqlite

import (
	"context"
	"database/sql"

	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/usecase"
)

const accountColumns = `id, name, mobile_no, group_id, opening_balance, normal_side, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	db querier
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID,
		account.Name,
		account.MobileNo,
		account.GroupID,
		toCents(account.OpeningBalance),
		string(account.NormalSide),
		formatTime(account.CreatedAt),
		formatTime(account.UpdatedAt),
	)
	return translate(err, domain.ErrGroupNotFound)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return getAccount(ctx, r.db, id)
}

// GetByIDTx retrieves an account inside a transaction. SQLite serializes
// writers, so no row lock is needed.
func (r *AccountRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return getAccount(ctx, sqlTx(tx), id)
}

func getAccount(ctx context.Context, q querier, id string) (*domain.Account, error) {
	row := q.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)

	account, err := scanAccount(row)
	if err != nil {
		return nil, notFound(err, domain.ErrAccountNotFound)
	}
	return account, nil
}

// Update stores the account's name and mobile number.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET name = ?, mobile_no = ?, updated_at = ? WHERE id = ?`,
		account.Name, account.MobileNo, formatTime(account.UpdatedAt), account.ID,
	)
	if err != nil {
		return translate(err, nil)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// List lists accounts after a cursor, ordered by id.
func (r *AccountRepository) List(ctx context.Context, after string, limit int) ([]*domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id > ? ORDER BY id LIMIT ?`,
		after, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func scanAccount(s scanner) (*domain.Account, error) {
	var (
		account              domain.Account
		opening              int64
		side                 string
		createdAt, updatedAt string
	)
	err := s.Scan(
		&account.ID,
		&account.Name,
		&account.MobileNo,
		&account.GroupID,
		&opening,
		&side,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.OpeningBalance = fromCents(opening)
	account.NormalSide = domain.Side(side)
	account.CreatedAt = parseTime(createdAt)
	account.UpdatedAt = parseTime(updatedAt)
	return &account, nil
}
