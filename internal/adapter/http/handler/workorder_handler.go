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

// WorkOrderService is the work order surface the handler depends on.
type WorkOrderService interface {
	CreateWorkOrder(ctx context.Context, input usecase.CreateWorkOrderInput) (*domain.WorkOrder, error)
	GetWorkOrder(ctx context.Context, id string) (*domain.WorkOrder, error)
	Assign(ctx context.Context, input usecase.AssignInput) (*domain.WorkOrder, error)
	Start(ctx context.Context, id string) (*domain.WorkOrder, error)
	Complete(ctx context.Context, id string) (*domain.WorkOrder, error)
	Cancel(ctx context.Context, id string) (*domain.WorkOrder, error)
	ListWorkOrders(ctx context.Context, input usecase.ListWorkOrdersInput) ([]*domain.WorkOrder, error)
}

// WorkOrderHandler handles work order HTTP requests.
type WorkOrderHandler struct {
	workOrderUC WorkOrderService
	audit       *usecase.AuditRecorder
}

// NewWorkOrderHandler creates a new WorkOrderHandler.
func NewWorkOrderHandler(workOrderUC WorkOrderService, audit *usecase.AuditRecorder) *WorkOrderHandler {
	return &WorkOrderHandler{
		workOrderUC: workOrderUC,
		audit:       audit,
	}
}

// Create opens a new pending work order.
func (h *WorkOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWorkOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wo, err := h.workOrderUC.CreateWorkOrder(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create work order", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), "workorder.create", "workorder", wo.ID)
	writeJSON(w, http.StatusCreated, dto.WorkOrderFromDomain(wo))
}

// Get retrieves a work order by ID.
func (h *WorkOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing work order ID", "")
		return
	}

	wo, err := h.workOrderUC.GetWorkOrder(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get work order", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WorkOrderFromDomain(wo))
}

// Assign dispatches a technician to a work order.
func (h *WorkOrderHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing work order ID", "")
		return
	}

	var req dto.AssignWorkOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wo, err := h.workOrderUC.Assign(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to assign work order", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), "workorder.assign", "workorder", wo.ID)
	writeJSON(w, http.StatusOK, dto.WorkOrderFromDomain(wo))
}

// Start moves a scheduled work order to in progress.
func (h *WorkOrderHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "workorder.start", h.workOrderUC.Start)
}

// Complete marks a work order finished.
func (h *WorkOrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "workorder.complete", h.workOrderUC.Complete)
}

// Cancel cancels a work order from any non-terminal state.
func (h *WorkOrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "workorder.cancel", h.workOrderUC.Cancel)
}

func (h *WorkOrderHandler) transition(w http.ResponseWriter, r *http.Request, action string, op func(context.Context, string) (*domain.WorkOrder, error)) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing work order ID", "")
		return
	}

	wo, err := op(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update work order", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), action, "workorder", wo.ID)
	writeJSON(w, http.StatusOK, dto.WorkOrderFromDomain(wo))
}

// List lists work orders filtered by status, technician or customer.
func (h *WorkOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListWorkOrdersInput{
		Status:       domain.WorkOrderStatus(r.URL.Query().Get("status")),
		TechnicianID: r.URL.Query().Get("technician_id"),
		CustomerID:   r.URL.Query().Get("customer_id"),
		Limit:        parseIntQuery(r, "limit", usecase.DefaultPageSize),
		Offset:       parseIntQuery(r, "offset", 0),
	}

	orders, err := h.workOrderUC.ListWorkOrders(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list work orders", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WorkOrdersFromDomain(orders))
}
