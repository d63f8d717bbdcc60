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

// CustomerService is the customer management surface the handler depends on.
type CustomerService interface {
	CreateCustomer(ctx context.Context, input usecase.CreateCustomerInput) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, input usecase.UpdateCustomerInput) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	ListCustomers(ctx context.Context, input usecase.ListCustomersInput) ([]*domain.Customer, error)
}

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	customerUC CustomerService
	audit      *usecase.AuditRecorder
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerUC CustomerService, audit *usecase.AuditRecorder) *CustomerHandler {
	return &CustomerHandler{
		customerUC: customerUC,
		audit:      audit,
	}
}

// Create creates a new customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	customer, err := h.customerUC.CreateCustomer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create customer", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), "customer.create", "customer", customer.ID)
	writeJSON(w, http.StatusCreated, dto.CustomerFromDomain(customer))
}

// Get retrieves a customer by ID.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing customer ID", "")
		return
	}

	customer, err := h.customerUC.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get customer", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}

// Update modifies a customer record. Absent fields are left unchanged.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing customer ID", "")
		return
	}

	var req dto.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	customer, err := h.customerUC.UpdateCustomer(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update customer", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), "customer.update", "customer", customer.ID)
	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}

// Delete removes a customer record.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing customer ID", "")
		return
	}

	if err := h.customerUC.DeleteCustomer(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete customer", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), "customer.delete", "customer", id)
	w.WriteHeader(http.StatusNoContent)
}

// List lists customers, optionally filtered by a name search.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListCustomersInput{
		Query:  r.URL.Query().Get("q"),
		Limit:  parseIntQuery(r, "limit", usecase.DefaultPageSize),
		Offset: parseIntQuery(r, "offset", 0),
	}

	customers, err := h.customerUC.ListCustomers(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list customers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomersFromDomain(customers))
}
