package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/adapter/repository/memory"
	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/usecase"
)

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%04d", g.n)
}

// testLedger wires every use case over one in-memory store.
type testLedger struct {
	store    *memory.Store
	accounts *usecase.AccountUseCase
	posting  *usecase.PostingUseCase
	balances *usecase.BalanceUseCase
	reports  *usecase.ReportUseCase
	ledger   *usecase.LedgerUseCase
}

func newTestLedger(t *testing.T) *testLedger {
	t.Helper()

	store := memory.NewStore()
	ids := &seqIDs{}

	accounts := usecase.NewAccountUseCase(store.Groups(), store.Accounts(), ids).WithPageSize(2)
	balances := usecase.NewBalanceUseCase(store.Accounts(), store.Entries())

	return &testLedger{
		store:    store,
		accounts: accounts,
		posting:  usecase.NewPostingUseCase(store.TxManager(), store.Accounts(), store.Vouchers(), store.Entries(), ids),
		balances: balances,
		reports:  usecase.NewReportUseCase(accounts, balances),
		ledger:   usecase.NewLedgerUseCase(store.Ledger()),
	}
}

func (l *testLedger) group(t *testing.T, name string, nature domain.Nature) *domain.MainGroup {
	t.Helper()
	g, err := l.accounts.CreateGroup(context.Background(), usecase.CreateGroupInput{Name: name, Nature: string(nature)})
	if err != nil {
		t.Fatalf("create group %s: %v", name, err)
	}
	return g
}

func (l *testLedger) account(t *testing.T, name string, group *domain.MainGroup, opening string) *domain.Account {
	t.Helper()
	a, err := l.accounts.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Name:           name,
		GroupID:        group.ID,
		OpeningBalance: decimal.RequireFromString(opening),
	})
	if err != nil {
		t.Fatalf("create account %s: %v", name, err)
	}
	return a
}

func (l *testLedger) post(t *testing.T, from, to *domain.Account, amount, date string) *domain.Voucher {
	t.Helper()
	v, err := l.posting.Post(context.Background(), usecase.PostInput{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Date:          date,
		Amount:        decimal.RequireFromString(amount),
	})
	if err != nil {
		t.Fatalf("post %s %s->%s: %v", amount, from.Name, to.Name, err)
	}
	return v
}

func bal(amount string, side domain.Side) domain.Balance {
	return domain.Balance{Amount: decimal.RequireFromString(amount), Side: side}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}
