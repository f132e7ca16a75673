// Package memory is a process-local storage driver. It keeps the same
// contracts as the SQL drivers, including transactional all-or-nothing
// voucher writes, and is used for local runs and tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/usecase"
)

// ErrForeignTx is returned when a transaction from another driver is passed in.
var ErrForeignTx = errors.New("memory: transaction does not belong to this store")

// Store holds every table in memory.
type Store struct {
	mu       sync.RWMutex
	groups   map[string]*domain.MainGroup
	accounts map[string]*domain.Account
	vouchers map[string]*domain.Voucher
	entries  []*domain.Entry
	byKey    map[string]string
	reversed map[string]string
	nextSeq  int64

	// FailEntryWrite, when set, is consulted before each entry insert.
	FailEntryWrite func(entry *domain.Entry) error
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		groups:   map[string]*domain.MainGroup{},
		accounts: map[string]*domain.Account{},
		vouchers: map[string]*domain.Voucher{},
		byKey:    map[string]string{},
		reversed: map[string]string{},
	}
}

// Groups returns the group repository.
func (s *Store) Groups() *GroupRepository { return &GroupRepository{s: s} }

// Accounts returns the account repository.
func (s *Store) Accounts() *AccountRepository { return &AccountRepository{s: s} }

// Vouchers returns the voucher repository.
func (s *Store) Vouchers() *VoucherRepository { return &VoucherRepository{s: s} }

// Entries returns the entry repository.
func (s *Store) Entries() *EntryRepository { return &EntryRepository{s: s} }

// Ledger returns the ledger repository.
func (s *Store) Ledger() *LedgerRepository { return &LedgerRepository{s: s} }

// TxManager returns the transaction manager.
func (s *Store) TxManager() *TxManager { return &TxManager{s: s} }

// EntryCount returns the number of committed entries.
func (s *Store) EntryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// TxManager implements usecase.TransactionManager.
type TxManager struct {
	s *Store
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Tx{s: m.s}, nil
}

// Tx stages voucher and entry writes until Commit.
type Tx struct {
	s        *Store
	vouchers []*domain.Voucher
	entries  []*domain.Entry
	done     bool
}

// Commit applies staged writes atomically.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("memory: transaction already closed")
	}
	t.done = true

	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range t.vouchers {
		if err := s.checkVoucherLocked(v); err != nil {
			return err
		}
	}

	for _, v := range t.vouchers {
		stored := *v
		s.vouchers[v.VoucherNo] = &stored
		if v.IdempotencyKey != "" {
			s.byKey[v.IdempotencyKey] = v.VoucherNo
		}
		if v.ReversesVoucherNo != "" {
			s.reversed[v.ReversesVoucherNo] = v.VoucherNo
		}
	}

	for _, e := range t.entries {
		s.nextSeq++
		e.Seq = s.nextSeq
		stored := *e
		s.entries = append(s.entries, &stored)
	}

	return nil
}

// Rollback discards staged writes. It is a no-op after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	t.done = true
	t.vouchers = nil
	t.entries = nil
	return nil
}

func (s *Store) checkVoucherLocked(v *domain.Voucher) error {
	if _, ok := s.vouchers[v.VoucherNo]; ok {
		return errors.New("memory: duplicate voucher number " + v.VoucherNo)
	}
	if v.IdempotencyKey != "" {
		if _, ok := s.byKey[v.IdempotencyKey]; ok {
			return domain.ErrDuplicateIdempotencyKey
		}
	}
	if v.ReversesVoucherNo != "" {
		if _, ok := s.reversed[v.ReversesVoucherNo]; ok {
			return domain.ErrAlreadyReversed
		}
	}
	return nil
}

func asTx(tx usecase.Transaction) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok {
		return nil, ErrForeignTx
	}
	if t.done {
		return nil, errors.New("memory: transaction already closed")
	}
	return t, nil
}

// GroupRepository implements usecase.GroupRepository.
type GroupRepository struct {
	s *Store
}

// Create creates a new group.
func (r *GroupRepository) Create(ctx context.Context, group *domain.MainGroup) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.groups {
		if strings.EqualFold(g.Name, group.Name) {
			return domain.ErrDuplicateGroupName
		}
	}

	stored := *group
	s.groups[group.ID] = &stored
	return nil
}

// GetByID retrieves a group by ID.
func (r *GroupRepository) GetByID(ctx context.Context, id string) (*domain.MainGroup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g, ok := r.s.groups[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	out := *g
	return &out, nil
}

// List lists groups after a cursor.
func (r *GroupRepository) List(ctx context.Context, after string, limit int) ([]*domain.MainGroup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]string, 0, len(r.s.groups))
	for id := range r.s.groups {
		if id > after {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]*domain.MainGroup, 0, len(ids))
	for _, id := range ids {
		g := *r.s.groups[id]
		out = append(out, &g)
	}
	return out, nil
}

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	s *Store
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[account.GroupID]; !ok {
		return domain.ErrGroupNotFound
	}
	if s.nameTakenLocked(account.ID, account.Name) {
		return domain.ErrDuplicateAccountName
	}

	stored := *account
	s.accounts[account.ID] = &stored
	return nil
}

func (s *Store) nameTakenLocked(id, name string) bool {
	for _, a := range s.accounts {
		if a.ID != id && strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	out := *a
	return &out, nil
}

// GetByIDTx retrieves an account by ID inside a transaction.
func (r *AccountRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if _, err := asTx(tx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update stores the account's descriptive fields.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.accounts[account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if s.nameTakenLocked(account.ID, account.Name) {
		return domain.ErrDuplicateAccountName
	}

	existing.Name = account.Name
	existing.MobileNo = account.MobileNo
	existing.UpdatedAt = account.UpdatedAt
	return nil
}

// List lists accounts after a cursor.
func (r *AccountRepository) List(ctx context.Context, after string, limit int) ([]*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]string, 0, len(r.s.accounts))
	for id := range r.s.accounts {
		if id > after {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		a := *r.s.accounts[id]
		out = append(out, &a)
	}
	return out, nil
}

// VoucherRepository implements usecase.VoucherRepository.
type VoucherRepository struct {
	s *Store
}

// Create stages a voucher header.
func (r *VoucherRepository) Create(ctx context.Context, tx usecase.Transaction, voucher *domain.Voucher) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}

	r.s.mu.RLock()
	err = r.s.checkVoucherLocked(voucher)
	r.s.mu.RUnlock()
	if err != nil {
		return err
	}

	for _, v := range t.vouchers {
		if v.ReversesVoucherNo != "" && v.ReversesVoucherNo == voucher.ReversesVoucherNo {
			return domain.ErrAlreadyReversed
		}
	}

	t.vouchers = append(t.vouchers, voucher)
	return nil
}

// GetByNo retrieves a voucher with its entries.
func (r *VoucherRepository) GetByNo(ctx context.Context, voucherNo string) (*domain.Voucher, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.voucherLocked(voucherNo)
}

// GetByNoTx retrieves a committed voucher inside a transaction.
func (r *VoucherRepository) GetByNoTx(ctx context.Context, tx usecase.Transaction, voucherNo string) (*domain.Voucher, error) {
	if _, err := asTx(tx); err != nil {
		return nil, err
	}
	return r.GetByNo(ctx, voucherNo)
}

// GetByIdempotencyKey retrieves the committed voucher recorded under key.
func (r *VoucherRepository) GetByIdempotencyKey(ctx context.Context, tx usecase.Transaction, key string) (*domain.Voucher, error) {
	if _, err := asTx(tx); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	no, ok := r.s.byKey[key]
	if !ok {
		return nil, domain.ErrVoucherNotFound
	}
	return r.s.voucherLocked(no)
}

func (s *Store) voucherLocked(voucherNo string) (*domain.Voucher, error) {
	header, ok := s.vouchers[voucherNo]
	if !ok {
		return nil, domain.ErrVoucherNotFound
	}

	var entries []*domain.Entry
	for _, e := range s.entries {
		if e.VoucherNo == voucherNo {
			c := *e
			entries = append(entries, &c)
		}
	}

	h := *header
	h.Debit, h.Credit = nil, nil
	return domain.VoucherFromEntries(h, entries)
}

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	s *Store
}

// Create stages an entry.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}

	if r.s.FailEntryWrite != nil {
		if err := r.s.FailEntryWrite(entry); err != nil {
			return err
		}
	}

	t.entries = append(t.entries, entry)
	return nil
}

// ListByAccount lists an account's entries within an optional date range
// ordered by date then sequence.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]*domain.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Entry
	for _, e := range r.s.entries {
		if e.LedgerID != accountID {
			continue
		}
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		c := *e
		out = append(out, &c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

// List lists entries in insertion order.
func (r *EntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Entry
	for _, e := range r.s.entries {
		if e.Seq <= filter.AfterSeq {
			continue
		}
		if filter.Kind != "" && e.Kind != filter.Kind {
			continue
		}
		if filter.AccountID != "" && e.LedgerID != filter.AccountID {
			continue
		}
		c := *e
		out = append(out, &c)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	s *Store
}

// CheckConsistency totals every entry and counts malformed vouchers.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	debits, credits := decimal.Zero, decimal.Zero
	perVoucher := map[string][]*domain.Entry{}
	for _, e := range r.s.entries {
		debits = debits.Add(e.DebitAmount)
		credits = credits.Add(e.CreditAmount)
		perVoucher[e.VoucherNo] = append(perVoucher[e.VoucherNo], e)
	}

	var unbalanced int64
	for no, entries := range perVoucher {
		if _, err := domain.VoucherFromEntries(domain.Voucher{VoucherNo: no}, entries); err != nil || len(entries) != 2 {
			unbalanced++
		}
	}

	return debits, credits, unbalanced, nil
}
