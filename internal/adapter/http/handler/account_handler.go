package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/iho/restledger/internal/adapter/http/dto"
	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/infrastructure/export"
	"github.com/iho/restledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.PageInput) (*domain.Page[*domain.Account], error)
}

// BalanceService defines the balance queries needed by AccountHandler.
type BalanceService interface {
	RunningBalance(ctx context.Context, accountID string, asOf *time.Time) (domain.Balance, error)
	LedgerReport(ctx context.Context, input usecase.LedgerReportInput) (*domain.LedgerReport, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	balanceUC BalanceService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, balanceUC BalanceService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, balanceUC: balanceUC}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Update edits an account's name or mobile number.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.accountUC.UpdateAccount(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, "failed to update account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.accountUC.ListAccounts(r.Context(), usecase.PageInput{
		Cursor: r.URL.Query().Get("cursor"),
		Limit:  parseIntQuery(r, "limit", domain.DefaultPageSize),
	})
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromPage(page))
}

// Balance returns an account's running balance, optionally as of a date.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	asOf, err := parseDateQuery(r, "as_of")
	if err != nil {
		writeDomainError(w, "invalid as_of", err)
		return
	}

	balance, err := h.balanceUC.RunningBalance(r.Context(), id, asOf)
	if err != nil {
		writeDomainError(w, "failed to get balance", err)
		return
	}

	resp := dto.AccountBalanceResponse{AccountID: id, Balance: dto.BalanceFromDomain(balance)}
	if asOf != nil {
		resp.AsOf = dto.Date(*asOf)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Ledger returns the account statement between from and to. With
// format=xlsx the report is sent as a workbook.
func (h *AccountHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateQuery(r, "from")
	if err != nil {
		writeDomainError(w, "invalid from", err)
		return
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		writeDomainError(w, "invalid to", err)
		return
	}

	input := usecase.LedgerReportInput{AccountID: chi.URLParam(r, "id")}
	if from != nil {
		input.From = *from
	}
	if to != nil {
		input.To = *to
	}

	report, err := h.balanceUC.LedgerReport(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to build ledger report", err)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type", export.XLSXContentType)
		w.Header().Set("Content-Disposition", "attachment; filename="+export.LedgerFilename(report))
		if err := export.WriteLedgerReport(w, report); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Str("account_id", input.AccountID).Msg("ledger export failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerReportFromDomain(report))
}
