package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coolvent/fieldops/internal/domain"
)

// InvoiceUseCase handles billing for completed work orders.
type InvoiceUseCase struct {
	invoiceRepo   InvoiceRepository
	workOrderRepo WorkOrderRepository
	idGen         IDGenerator
	taxRate       decimal.Decimal
}

// NewInvoiceUseCase creates a new invoice use case
func NewInvoiceUseCase(invoiceRepo InvoiceRepository, workOrderRepo WorkOrderRepository, idGen IDGenerator, taxRate decimal.Decimal) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo:   invoiceRepo,
		workOrderRepo: workOrderRepo,
		idGen:         idGen,
		taxRate:       taxRate,
	}
}

// CreateInvoiceInput represents input for drafting an invoice
type CreateInvoiceInput struct {
	WorkOrderID string
	LineItems   []domain.LineItem
}

// CreateInvoice drafts an invoice against a work order. Totals are computed
// with decimals, never floats.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	if err := domain.ValidateLineItems(input.LineItems); err != nil {
		return nil, err
	}

	wo, err := uc.workOrderRepo.GetByID(ctx, input.WorkOrderID)
	if err != nil {
		return nil, err
	}

	number, err := uc.invoiceRepo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice := &domain.Invoice{
		ID:          uc.idGen.Generate(),
		Number:      number,
		WorkOrderID: wo.ID,
		CustomerID:  wo.CustomerID,
		LineItems:   input.LineItems,
		TaxRate:     uc.taxRate,
		Status:      domain.InvoiceDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	invoice.Recalculate()

	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// GetInvoice retrieves an invoice by ID
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return uc.invoiceRepo.GetByID(ctx, id)
}

// IssueInvoice moves a draft invoice to issued.
func (uc *InvoiceUseCase) IssueInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return uc.mutate(ctx, id, func(inv *domain.Invoice, now time.Time) error {
		return inv.Issue(now)
	})
}

// PayInvoice records payment of an issued invoice.
func (uc *InvoiceUseCase) PayInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return uc.mutate(ctx, id, func(inv *domain.Invoice, now time.Time) error {
		return inv.MarkPaid(now)
	})
}

// VoidInvoice cancels any unpaid invoice.
func (uc *InvoiceUseCase) VoidInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return uc.mutate(ctx, id, func(inv *domain.Invoice, now time.Time) error {
		return inv.Void(now)
	})
}

func (uc *InvoiceUseCase) mutate(ctx context.Context, id string, op func(*domain.Invoice, time.Time) error) (*domain.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := op(invoice, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// ListInvoicesInput represents listing filters
type ListInvoicesInput struct {
	CustomerID string
	Limit      int
	Offset     int
}

// ListInvoices lists invoices, optionally scoped to one customer.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, input ListInvoicesInput) ([]*domain.Invoice, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)

	if input.CustomerID != "" {
		return uc.invoiceRepo.ListByCustomer(ctx, input.CustomerID, limit, offset)
	}
	return uc.invoiceRepo.List(ctx, limit, offset)
}
