package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/restledger/internal/adapter/http/dto"
	"github.com/iho/restledger/internal/adapter/http/middleware"
	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/usecase"
)

// PostingService defines the behavior needed by TransactionHandler.
type PostingService interface {
	Post(ctx context.Context, input usecase.PostInput) (*domain.Voucher, error)
	Reverse(ctx context.Context, input usecase.ReverseInput) (*domain.Voucher, error)
	GetVoucher(ctx context.Context, voucherNo string) (*domain.Voucher, error)
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) (*domain.Page[*domain.Entry], error)
}

// TransactionHandler handles posting HTTP requests.
type TransactionHandler struct {
	postingUC PostingService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(postingUC PostingService) *TransactionHandler {
	return &TransactionHandler{postingUC: postingUC}
}

// Create posts a voucher.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(r.Header.Get(middleware.IdempotencyKeyHeader))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction pair", err.Error())
		return
	}

	voucher, err := h.postingUC.Post(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to post transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.VoucherFromDomain(voucher))
}

// Get retrieves a voucher by number.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	voucher, err := h.postingUC.GetVoucher(r.Context(), chi.URLParam(r, "voucher"))
	if err != nil {
		writeDomainError(w, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.VoucherFromDomain(voucher))
}

// Reverse posts the mirror of an existing voucher.
func (h *TransactionHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	var req dto.ReverseTransactionRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}

	voucher, err := h.postingUC.Reverse(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "voucher")))
	if err != nil {
		writeDomainError(w, "failed to reverse transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.VoucherFromDomain(voucher))
}

// List lists entries, optionally filtered by type and account.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := h.postingUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		Kind:      q.Get("type"),
		AccountID: q.Get("account"),
		Cursor:    q.Get("cursor"),
		Limit:     parseIntQuery(r, "limit", domain.DefaultPageSize),
	})
	if err != nil {
		writeDomainError(w, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromPage(page))
}
