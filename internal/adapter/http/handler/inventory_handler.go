package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/coolvent/fieldops/internal/adapter/http/dto"
	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

// ItemService is the inventory item surface the handler depends on.
type ItemService interface {
	CreateItem(ctx context.Context, input usecase.CreateItemInput) (*domain.Item, error)
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	AdjustStock(ctx context.Context, id string, delta int) (*domain.Item, error)
	ListItems(ctx context.Context, limit, offset int) ([]*domain.Item, error)
	ListLowStock(ctx context.Context) ([]*domain.Item, error)
}

// InventoryHandler handles inventory item HTTP requests.
type InventoryHandler struct {
	inventoryUC ItemService
	audit       *usecase.AuditRecorder
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryUC ItemService, audit *usecase.AuditRecorder) *InventoryHandler {
	return &InventoryHandler{
		inventoryUC: inventoryUC,
		audit:       audit,
	}
}

// CreateItem adds a part to the catalog.
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	item, err := h.inventoryUC.CreateItem(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create item", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), "item.create", "item", item.ID)
	writeJSON(w, http.StatusCreated, dto.ItemFromDomain(item))
}

// GetItem retrieves an item by ID.
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing item ID", "")
		return
	}

	item, err := h.inventoryUC.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get item", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ItemFromDomain(item))
}

// AdjustStock applies a stock delta. Stock never goes below zero.
func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing item ID", "")
		return
	}

	var req dto.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	item, err := h.inventoryUC.AdjustStock(r.Context(), id, req.Delta)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to adjust stock", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), "item.adjust", "item", item.ID)
	writeJSON(w, http.StatusOK, dto.ItemFromDomain(item))
}

// ListItems lists catalog items with pagination.
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", usecase.DefaultPageSize)
	offset := parseIntQuery(r, "offset", 0)

	items, err := h.inventoryUC.ListItems(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ItemsFromDomain(items))
}

// ListLowStock lists items at or below their reorder point.
func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventoryUC.ListLowStock(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list low stock", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ItemsFromDomain(items))
}
