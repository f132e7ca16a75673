package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/restledger/internal/adapter/http/dto"
	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/usecase"
)

// GroupService defines the behavior needed by GroupHandler.
type GroupService interface {
	CreateGroup(ctx context.Context, input usecase.CreateGroupInput) (*domain.MainGroup, error)
	GetGroup(ctx context.Context, id string) (*domain.MainGroup, error)
	ListGroups(ctx context.Context, input usecase.PageInput) (*domain.Page[*domain.MainGroup], error)
}

// GroupHandler handles main group HTTP requests.
type GroupHandler struct {
	groupUC GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupUC GroupService) *GroupHandler {
	return &GroupHandler{groupUC: groupUC}
}

// Create creates a new main group.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := h.groupUC.CreateGroup(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create group", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.GroupFromDomain(group))
}

// Get retrieves a main group by ID.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	group, err := h.groupUC.GetGroup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get group", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GroupFromDomain(group))
}

// List lists main groups.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.groupUC.ListGroups(r.Context(), usecase.PageInput{
		Cursor: r.URL.Query().Get("cursor"),
		Limit:  parseIntQuery(r, "limit", domain.DefaultPageSize),
	})
	if err != nil {
		writeDomainError(w, "failed to list groups", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GroupsFromPage(page))
}
