package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func debitEntry(amount string) *Entry {
	return &Entry{DebitAmount: d(amount), CreditAmount: decimal.Zero}
}

func creditEntry(amount string) *Entry {
	return &Entry{DebitAmount: decimal.Zero, CreditAmount: d(amount)}
}

func TestFold(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		entries []*Entry
		want    Balance
	}{
		{
			name:    "no entries returns opening balance",
			account: Account{OpeningBalance: d("100"), NormalSide: Debit},
			want:    Balance{Amount: d("100"), Side: Debit},
		},
		{
			name:    "debit normal adds debits and subtracts credits",
			account: Account{OpeningBalance: d("100"), NormalSide: Debit},
			entries: []*Entry{debitEntry("50"), creditEntry("30")},
			want:    Balance{Amount: d("120"), Side: Debit},
		},
		{
			name:    "credit normal mirrors the rule",
			account: Account{OpeningBalance: d("10"), NormalSide: Credit},
			entries: []*Entry{creditEntry("40"), debitEntry("5")},
			want:    Balance{Amount: d("45"), Side: Credit},
		},
		{
			name:    "negative running value flips side",
			account: Account{OpeningBalance: d("100"), NormalSide: Debit},
			entries: []*Entry{creditEntry("150")},
			want:    Balance{Amount: d("50"), Side: Credit},
		},
		{
			name:    "zero result stays on normal side",
			account: Account{OpeningBalance: decimal.Zero, NormalSide: Credit},
			entries: []*Entry{creditEntry("25"), debitEntry("25")},
			want:    Balance{Amount: decimal.Zero, Side: Credit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fold(&tt.account, tt.entries)
			if got.Side != tt.want.Side || !got.Amount.Equal(tt.want.Amount) {
				t.Fatalf("Fold() = %s %s, want %s %s", got.Amount, got.Side, tt.want.Amount, tt.want.Side)
			}
		})
	}
}

func TestTallyFromContinuesFold(t *testing.T) {
	acc := &Account{OpeningBalance: d("100"), NormalSide: Debit}
	first := []*Entry{creditEntry("130")}
	second := []*Entry{debitEntry("10"), debitEntry("40")}

	mid := Fold(acc, first)
	tally := TallyFrom(acc.NormalSide, mid)
	for _, e := range second {
		tally.Apply(e)
	}

	want := Fold(acc, append(first, second...))
	if !tally.Balance().Equal(want) {
		t.Fatalf("continued fold %v differs from full fold %v", tally.Balance(), want)
	}
}

func TestSummarizeTotals(t *testing.T) {
	acc := &Account{OpeningBalance: d("5"), NormalSide: Credit}
	s := Summarize(acc, []*Entry{creditEntry("20"), debitEntry("7.50"), creditEntry("1.25")})

	if !s.TotalDebit.Equal(d("7.5")) || !s.TotalCredit.Equal(d("21.25")) {
		t.Fatalf("unexpected totals debit=%s credit=%s", s.TotalDebit, s.TotalCredit)
	}
	if !s.Balance.Equal(Balance{Amount: d("18.75"), Side: Credit}) {
		t.Fatalf("unexpected balance %v", s.Balance)
	}
}

func TestBalanceDebitSigned(t *testing.T) {
	if got := (Balance{Amount: d("3"), Side: Credit}).DebitSigned(); !got.Equal(d("-3")) {
		t.Fatalf("expected -3, got %s", got)
	}
	if got := (Balance{Amount: d("3"), Side: Debit}).DebitSigned(); !got.Equal(d("3")) {
		t.Fatalf("expected 3, got %s", got)
	}
}

func TestNatureNormalSide(t *testing.T) {
	want := map[Nature]Side{
		NatureAsset:     Debit,
		NatureExpense:   Debit,
		NatureLiability: Credit,
		NatureEquity:    Credit,
		NatureIncome:    Credit,
	}
	for n, side := range want {
		if n.NormalSide() != side {
			t.Fatalf("%s: expected %s, got %s", n, side, n.NormalSide())
		}
	}

	if _, err := ParseNature("revenue"); err == nil {
		t.Fatalf("expected unknown nature to be rejected")
	}
	if n, err := ParseNature("income"); err != nil || n != NatureIncome {
		t.Fatalf("expected INCOME, got %s err=%v", n, err)
	}
}

func TestAccountRename(t *testing.T) {
	acc := &Account{Name: "Old", MobileNo: "+1", GroupID: "g1"}
	name := "New"
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	acc.Rename(&name, nil, at)

	if acc.Name != "New" || acc.MobileNo != "+1" || acc.GroupID != "g1" || !acc.UpdatedAt.Equal(at) {
		t.Fatalf("unexpected account after rename: %+v", acc)
	}
}
