package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

func newInvoiceFixture(t *testing.T) (*usecase.InvoiceUseCase, *stubInvoiceRepo, *stubWorkOrderRepo) {
	t.Helper()

	workOrders := newStubWorkOrderRepo()
	if err := workOrders.Create(context.Background(), &domain.WorkOrder{
		ID: "wo-1", CustomerID: "cust-1", Status: domain.WorkOrderCompleted,
	}); err != nil {
		t.Fatalf("seed work order: %v", err)
	}

	invoices := newStubInvoiceRepo()
	taxRate := decimal.RequireFromString("0.0825")
	return usecase.NewInvoiceUseCase(invoices, workOrders, &seqIDGen{}, taxRate), invoices, workOrders
}

func TestInvoiceUseCase_CreateInvoice(t *testing.T) {
	t.Parallel()

	uc, _, _ := newInvoiceFixture(t)

	inv, err := uc.CreateInvoice(context.Background(), usecase.CreateInvoiceInput{
		WorkOrderID: "wo-1",
		LineItems: []domain.LineItem{
			{Description: "Compressor", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("550.00")},
			{Description: "Labor", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("50.00")},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inv.Number != "INV-0001" {
		t.Fatalf("number = %q, want INV-0001", inv.Number)
	}
	if inv.CustomerID != "cust-1" {
		t.Fatalf("customer = %q, want inherited from work order", inv.CustomerID)
	}
	if got, want := inv.Subtotal.String(), "650"; got != want {
		t.Fatalf("subtotal = %s, want %s", got, want)
	}
	// 650 * 1.0825 = 703.625, rounded to cents.
	if got, want := inv.Total.String(), "703.63"; got != want {
		t.Fatalf("total = %s, want %s", got, want)
	}
	if inv.Status != domain.InvoiceDraft {
		t.Fatalf("status = %s, want draft", inv.Status)
	}
}

func TestInvoiceUseCase_CreateInvoice_Rejections(t *testing.T) {
	t.Parallel()

	uc, _, _ := newInvoiceFixture(t)
	line := domain.LineItem{Description: "Labor", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("95.00")}

	if _, err := uc.CreateInvoice(context.Background(), usecase.CreateInvoiceInput{
		WorkOrderID: "wo-1",
	}); err == nil {
		t.Fatal("expected error for empty line items")
	}

	_, err := uc.CreateInvoice(context.Background(), usecase.CreateInvoiceInput{
		WorkOrderID: "missing", LineItems: []domain.LineItem{line},
	})
	if !errors.Is(err, domain.ErrWorkOrderNotFound) {
		t.Fatalf("got %v, want ErrWorkOrderNotFound", err)
	}
}

func TestInvoiceUseCase_Lifecycle(t *testing.T) {
	t.Parallel()

	uc, _, _ := newInvoiceFixture(t)
	ctx := context.Background()

	inv, err := uc.CreateInvoice(ctx, usecase.CreateInvoiceInput{
		WorkOrderID: "wo-1",
		LineItems: []domain.LineItem{
			{Description: "Service call", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("120.00")},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Draft cannot be paid.
	if _, err := uc.PayInvoice(ctx, inv.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition paying a draft", err)
	}

	issued, err := uc.IssueInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if issued.IssuedAt == nil {
		t.Fatal("expected issue timestamp")
	}

	paid, err := uc.PayInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if paid.PaidAt == nil {
		t.Fatal("expected payment timestamp")
	}

	// Paid invoices cannot be voided.
	if _, err := uc.VoidInvoice(ctx, inv.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition voiding a paid invoice", err)
	}
}

func TestInvoiceUseCase_ListByCustomer(t *testing.T) {
	t.Parallel()

	uc, invoices, workOrders := newInvoiceFixture(t)
	ctx := context.Background()

	if err := workOrders.Create(ctx, &domain.WorkOrder{
		ID: "wo-2", CustomerID: "cust-2", Status: domain.WorkOrderCompleted,
	}); err != nil {
		t.Fatalf("seed work order: %v", err)
	}

	line := domain.LineItem{Description: "Filter", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("25.00")}
	for _, woID := range []string{"wo-1", "wo-1", "wo-2"} {
		if _, err := uc.CreateInvoice(ctx, usecase.CreateInvoiceInput{
			WorkOrderID: woID, LineItems: []domain.LineItem{line},
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	scoped, err := uc.ListInvoices(ctx, usecase.ListInvoicesInput{CustomerID: "cust-1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("expected 2 invoices for cust-1, got %d", len(scoped))
	}
	_ = invoices
}
