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

// PurchaseOrderService is the replenishment surface the handler depends on.
type PurchaseOrderService interface {
	CreatePurchaseOrder(ctx context.Context, input usecase.CreatePurchaseOrderInput) (*domain.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	SubmitPurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	CancelPurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	ReceivePurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, input usecase.ListPurchaseOrdersInput) ([]*domain.PurchaseOrder, error)
}

// PurchaseOrderHandler handles purchase order HTTP requests.
type PurchaseOrderHandler struct {
	inventoryUC PurchaseOrderService
	audit       *usecase.AuditRecorder
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler.
func NewPurchaseOrderHandler(inventoryUC PurchaseOrderService, audit *usecase.AuditRecorder) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		inventoryUC: inventoryUC,
		audit:       audit,
	}
}

// Create opens a purchase order against a supplier.
func (h *PurchaseOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	po, err := h.inventoryUC.CreatePurchaseOrder(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create purchase order", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), "purchase_order.create", "purchase_order", po.ID)
	writeJSON(w, http.StatusCreated, dto.PurchaseOrderFromDomain(po))
}

// Get retrieves a purchase order by ID.
func (h *PurchaseOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing purchase order ID", "")
		return
	}

	po, err := h.inventoryUC.GetPurchaseOrder(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get purchase order", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PurchaseOrderFromDomain(po))
}

// Submit sends an open purchase order to the supplier.
func (h *PurchaseOrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "purchase_order.submit", h.inventoryUC.SubmitPurchaseOrder)
}

// Cancel cancels a purchase order before receipt.
func (h *PurchaseOrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "purchase_order.cancel", h.inventoryUC.CancelPurchaseOrder)
}

// Receive books received stock into inventory atomically.
func (h *PurchaseOrderHandler) Receive(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "purchase_order.receive", h.inventoryUC.ReceivePurchaseOrder)
}

func (h *PurchaseOrderHandler) transition(w http.ResponseWriter, r *http.Request, action string, op func(context.Context, string) (*domain.PurchaseOrder, error)) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing purchase order ID", "")
		return
	}

	po, err := op(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update purchase order", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), action, "purchase_order", po.ID)
	writeJSON(w, http.StatusOK, dto.PurchaseOrderFromDomain(po))
}

// List lists purchase orders, optionally by status.
func (h *PurchaseOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListPurchaseOrdersInput{
		Status: domain.PurchaseOrderStatus(r.URL.Query().Get("status")),
		Limit:  parseIntQuery(r, "limit", usecase.DefaultPageSize),
		Offset: parseIntQuery(r, "offset", 0),
	}

	orders, err := h.inventoryUC.ListPurchaseOrders(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list purchase orders", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PurchaseOrdersFromDomain(orders))
}
