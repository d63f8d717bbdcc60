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

// InvoiceService is the invoicing surface the handler depends on.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, input usecase.CreateInvoiceInput) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	IssueInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	PayInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	VoidInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, input usecase.ListInvoicesInput) ([]*domain.Invoice, error)
}

// InvoiceHandler handles invoice HTTP requests.
type InvoiceHandler struct {
	invoiceUC InvoiceService
	audit     *usecase.AuditRecorder
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceUC InvoiceService, audit *usecase.AuditRecorder) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUC: invoiceUC,
		audit:     audit,
	}
}

// Create drafts an invoice against a completed work order.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	invoice, err := h.invoiceUC.CreateInvoice(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create invoice", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), "invoice.create", "invoice", invoice.ID)
	writeJSON(w, http.StatusCreated, dto.InvoiceFromDomain(invoice))
}

// Get retrieves an invoice by ID.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing invoice ID", "")
		return
	}

	invoice, err := h.invoiceUC.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get invoice", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(invoice))
}

// Issue sends a draft invoice to the customer.
func (h *InvoiceHandler) Issue(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "invoice.issue", h.invoiceUC.IssueInvoice)
}

// Pay records payment of an issued invoice.
func (h *InvoiceHandler) Pay(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "invoice.pay", h.invoiceUC.PayInvoice)
}

// Void voids an unpaid invoice.
func (h *InvoiceHandler) Void(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "invoice.void", h.invoiceUC.VoidInvoice)
}

func (h *InvoiceHandler) transition(w http.ResponseWriter, r *http.Request, action string, op func(context.Context, string) (*domain.Invoice, error)) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing invoice ID", "")
		return
	}

	invoice, err := op(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update invoice", err.Error())
		return
	}

	h.audit.Record(r.Context(), actorFromRequest(r), action, "invoice", invoice.ID)
	writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(invoice))
}

// List lists invoices, optionally scoped to one customer.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListInvoicesInput{
		CustomerID: r.URL.Query().Get("customer_id"),
		Limit:      parseIntQuery(r, "limit", usecase.DefaultPageSize),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	invoices, err := h.invoiceUC.ListInvoices(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list invoices", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoicesFromDomain(invoices))
}
