package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/restledger/internal/adapter/http/dto"
	"github.com/iho/restledger/internal/domain"
)

// ReportService defines the aggregate reports served by ReportHandler.
type ReportService interface {
	IncomeStatement(ctx context.Context, asOf time.Time) (*domain.IncomeStatement, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)
	NatureReport(ctx context.Context, nature string, asOf time.Time) (*domain.NatureSection, error)
}

// ReportHandler handles report HTTP requests. Every report takes an
// optional as_of date that defaults to today.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// IncomeStatement serves income against expense.
func (h *ReportHandler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfQuery(r)
	if err != nil {
		writeDomainError(w, "invalid as_of", err)
		return
	}

	statement, err := h.reportUC.IncomeStatement(r.Context(), asOf)
	if err != nil {
		writeDomainError(w, "failed to build income statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomeStatementFromDomain(statement))
}

// BalanceSheet serves assets against liabilities and equity.
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfQuery(r)
	if err != nil {
		writeDomainError(w, "invalid as_of", err)
		return
	}

	sheet, err := h.reportUC.BalanceSheet(r.Context(), asOf)
	if err != nil {
		writeDomainError(w, "failed to build balance sheet", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(sheet))
}

// TrialBalance serves every account's closing balance.
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfQuery(r)
	if err != nil {
		writeDomainError(w, "invalid as_of", err)
		return
	}

	tb, err := h.reportUC.TrialBalance(r.Context(), asOf)
	if err != nil {
		writeDomainError(w, "failed to build trial balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromDomain(tb))
}

// Nature serves the groups of one nature, selected by the nature query
// parameter.
func (h *ReportHandler) Nature(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfQuery(r)
	if err != nil {
		writeDomainError(w, "invalid as_of", err)
		return
	}

	section, err := h.reportUC.NatureReport(r.Context(), r.URL.Query().Get("nature"), asOf)
	if err != nil {
		writeDomainError(w, "failed to build nature report", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NatureSectionFromDomain(*section))
}
