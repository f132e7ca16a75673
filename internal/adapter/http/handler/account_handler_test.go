package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/adapter/http/dto"
	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/infrastructure/export"
	"github.com/iho/restledger/internal/usecase"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAccountHandler_Create_Success(t *testing.T) {
	account := &domain.Account{
		ID:             "acc-1",
		Name:           "Cash in hand",
		GroupID:        "g1",
		OpeningBalance: decimal.RequireFromString("100"),
		NormalSide:     domain.Debit,
	}

	var captured usecase.CreateAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	}, &balanceServiceStub{})

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Name:           "Cash in hand",
		GroupID:        "g1",
		OpeningBalance: decimal.RequireFromString("100"),
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Name != "Cash in hand" || captured.GroupID != "g1" || !captured.OpeningBalance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" {
		t.Fatalf("expected account ID acc-1, got %s", resp.ID)
	}
}

func TestAccountHandler_Create_InvalidBody(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{}, &balanceServiceStub{})

	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_UnknownGroup(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return nil, &domain.NotFoundError{Resource: "group", ID: input.GroupID, Err: domain.ErrGroupNotFound}
		},
	}, &balanceServiceStub{})

	body, _ := json.Marshal(dto.CreateAccountRequest{Name: "Cash", GroupID: "nope"})
	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_Update(t *testing.T) {
	var captured usecase.UpdateAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error) {
			captured = input
			return &domain.Account{ID: input.ID, Name: *input.Name, NormalSide: domain.Debit}, nil
		},
	}, &balanceServiceStub{})

	req := httptest.NewRequest(http.MethodPatch, "/accounts/acc-1", bytes.NewBufferString(`{"name":"Petty cash"}`))
	req = withURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.ID != "acc-1" || captured.Name == nil || *captured.Name != "Petty cash" || captured.MobileNo != nil {
		t.Fatalf("unexpected update input %+v", captured)
	}
}

func TestAccountHandler_Balance(t *testing.T) {
	var gotAsOf *time.Time
	handler := NewAccountHandler(&accountServiceStub{}, &balanceServiceStub{
		balanceFn: func(ctx context.Context, accountID string, asOf *time.Time) (domain.Balance, error) {
			gotAsOf = asOf
			return domain.Balance{Amount: decimal.RequireFromString("150"), Side: domain.Debit}, nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/a/balance?as_of=2024-05-31", nil), "id", "a")
	rec := httptest.NewRecorder()
	handler.Balance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotAsOf == nil || domain.FormatDate(*gotAsOf) != "2024-05-31" {
		t.Fatalf("expected as_of to be passed through, got %v", gotAsOf)
	}

	var resp dto.AccountBalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Balance.Amount != "150.00" || resp.Balance.Side != "DEBIT" || resp.AsOf != "2024-05-31" {
		t.Fatalf("unexpected balance %+v", resp)
	}
}

func TestAccountHandler_BalanceRejectsBadDate(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{}, &balanceServiceStub{})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/a/balance?as_of=yesterday", nil), "id", "a")
	rec := httptest.NewRecorder()
	handler.Balance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func ledgerStub(t *testing.T) *balanceServiceStub {
	return &balanceServiceStub{
		ledgerFn: func(ctx context.Context, input usecase.LedgerReportInput) (*domain.LedgerReport, error) {
			if input.AccountID != "cash" || domain.FormatDate(input.From) != "2024-05-01" || domain.FormatDate(input.To) != "2024-05-31" {
				t.Fatalf("unexpected ledger input %+v", input)
			}
			opening := domain.Balance{Amount: decimal.RequireFromString("10"), Side: domain.Debit}
			return &domain.LedgerReport{
				Account:     &domain.Account{ID: "cash", Name: "Cash", NormalSide: domain.Debit},
				From:        input.From,
				To:          input.To,
				Opening:     opening,
				TotalDebit:  decimal.Zero,
				TotalCredit: decimal.Zero,
				Closing:     opening,
			}, nil
		},
	}
}

func TestAccountHandler_LedgerJSON(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{}, ledgerStub(t))

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/cash/ledger?from=2024-05-01&to=2024-05-31", nil), "id", "cash")
	rec := httptest.NewRecorder()
	handler.Ledger(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.LedgerReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Opening.Amount != "10.00" || resp.Closing.Amount != "10.00" {
		t.Fatalf("unexpected report %+v", resp)
	}
}

func TestAccountHandler_LedgerXLSX(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{}, ledgerStub(t))

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/cash/ledger?from=2024-05-01&to=2024-05-31&format=xlsx", nil), "id", "cash")
	rec := httptest.NewRecorder()
	handler.Ledger(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != export.XLSXContentType {
		t.Fatalf("unexpected content type %s", ct)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected workbook bytes")
	}
}
