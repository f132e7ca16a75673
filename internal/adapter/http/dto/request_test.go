package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateTransactionRequest_PairShape(t *testing.T) {
	body := `{
		"transaction1": {"ledger_id": "cash", "particulars_id": "sales", "date": "2024-05-01",
			"debit_amount": 120.5, "credit_amount": 0, "remarks": "lunch", "debit_credit": "debit", "transaction_type": "payin"},
		"transaction2": {"ledger_id": "sales", "particulars_id": "cash", "date": "2024-05-01",
			"debit_amount": 0, "credit_amount": 120.5, "remarks": "lunch", "debit_credit": "credit", "transaction_type": "payin"}
	}`

	var req CreateTransactionRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := Validate(&req); err != nil {
		t.Fatalf("validate: %v", err)
	}

	got, err := req.ToUseCaseInput("k-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.FromAccountID != "cash" || got.ToAccountID != "sales" {
		t.Fatalf("unexpected accounts %s -> %s", got.FromAccountID, got.ToAccountID)
	}
	if !got.Amount.Equal(decimal.RequireFromString("120.5")) {
		t.Fatalf("unexpected amount %s", got.Amount)
	}
	if got.Kind != "payin" || got.Remarks != "lunch" || got.IdempotencyKey != "k-1" {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestCreateTransactionRequest_PairOrderDoesNotMatter(t *testing.T) {
	req := &CreateTransactionRequest{
		Transaction1: &EntryRequest{LedgerID: "sales", ParticularsID: "cash", Date: "2024-05-01", CreditAmount: decimal.NewFromInt(5)},
		Transaction2: &EntryRequest{LedgerID: "cash", ParticularsID: "sales", Date: "2024-05-01", DebitAmount: decimal.NewFromInt(5)},
	}

	got, err := req.ToUseCaseInput("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FromAccountID != "cash" || got.ToAccountID != "sales" {
		t.Fatalf("unexpected accounts %s -> %s", got.FromAccountID, got.ToAccountID)
	}
}

func TestCreateTransactionRequest_MalformedPairs(t *testing.T) {
	debit := func() *EntryRequest {
		return &EntryRequest{LedgerID: "cash", ParticularsID: "sales", Date: "2024-05-01", DebitAmount: decimal.NewFromInt(10), TransactionType: "payin"}
	}
	credit := func() *EntryRequest {
		return &EntryRequest{LedgerID: "sales", ParticularsID: "cash", Date: "2024-05-01", CreditAmount: decimal.NewFromInt(10), TransactionType: "payin"}
	}

	tests := []struct {
		name   string
		mutate func(d, c *EntryRequest)
	}{
		{"amounts differ", func(d, c *EntryRequest) { c.CreditAmount = decimal.NewFromInt(9) }},
		{"both debit", func(d, c *EntryRequest) { c.DebitAmount = decimal.NewFromInt(10); c.CreditAmount = decimal.Zero }},
		{"two-sided entry", func(d, c *EntryRequest) { d.CreditAmount = decimal.NewFromInt(1) }},
		{"particulars do not mirror", func(d, c *EntryRequest) { c.ParticularsID = "bank" }},
		{"dates differ", func(d, c *EntryRequest) { c.Date = "2024-05-02" }},
		{"kinds differ", func(d, c *EntryRequest) { c.TransactionType = "payout" }},
		{"debit half tagged credit", func(d, c *EntryRequest) { d.DebitCredit = "credit" }},
		{"credit half tagged debit", func(d, c *EntryRequest) { c.DebitCredit = "DEBIT" }},
		{"tags swapped", func(d, c *EntryRequest) { d.DebitCredit = "credit"; c.DebitCredit = "debit" }},
		{"remarks differ", func(d, c *EntryRequest) { d.Remarks = "lunch"; c.Remarks = "dinner" }},
		{"ref numbers differ", func(d, c *EntryRequest) { d.RefNo = "R-1"; c.RefNo = "R-2" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, c := debit(), credit()
			tt.mutate(d, c)

			req := &CreateTransactionRequest{Transaction1: d, Transaction2: c}
			if _, err := req.ToUseCaseInput(""); !errors.Is(err, ErrMalformedPair) {
				t.Fatalf("expected malformed pair, got %v", err)
			}
		})
	}
}

func TestCreateTransactionRequest_TagsAreCaseInsensitive(t *testing.T) {
	req := &CreateTransactionRequest{
		Transaction1: &EntryRequest{LedgerID: "cash", ParticularsID: "sales", Date: "2024-05-01", DebitAmount: decimal.NewFromInt(5), DebitCredit: "DEBIT", RefNo: "R-9"},
		Transaction2: &EntryRequest{LedgerID: "sales", ParticularsID: "cash", Date: "2024-05-01", CreditAmount: decimal.NewFromInt(5), DebitCredit: "Credit", RefNo: "R-9"},
	}

	got, err := req.ToUseCaseInput("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RefNo != "R-9" {
		t.Fatalf("unexpected ref no %q", got.RefNo)
	}
}

func TestCreateTransactionRequest_Validation(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateTransactionRequest
		wantField string
	}{
		{
			name:      "flat shape needs accounts",
			req:       CreateTransactionRequest{Date: "2024-05-01"},
			wantField: "CreateTransactionRequest.FromAccountID",
		},
		{
			name:      "pair shape needs both halves",
			req:       CreateTransactionRequest{Transaction1: &EntryRequest{LedgerID: "a", ParticularsID: "b", Date: "2024-05-01"}},
			wantField: "CreateTransactionRequest.Transaction2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.req)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			details := ValidationDetails(err)
			if _, ok := details[tt.wantField]; !ok {
				t.Fatalf("expected %s in %v", tt.wantField, details)
			}
		})
	}
}

func TestCreateAccountRequest_Validation(t *testing.T) {
	req := CreateAccountRequest{Name: "Cash", GroupID: "g-1", NormalSide: "sideways"}

	details := ValidationDetails(Validate(&req))
	if details["CreateAccountRequest.NormalSide"] != "oneof" {
		t.Fatalf("expected oneof failure, got %v", details)
	}

	req.NormalSide = "CREDIT"
	if err := Validate(&req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateAccountRequest_ToUseCaseInput(t *testing.T) {
	name := "Front till"
	req := &UpdateAccountRequest{Name: &name}

	got := req.ToUseCaseInput("a-1")
	if got.ID != "a-1" || got.Name == nil || *got.Name != name || got.MobileNo != nil {
		t.Fatalf("unexpected input %+v", got)
	}
}
