package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft  InvoiceStatus = "draft"
	InvoiceIssued InvoiceStatus = "issued"
	InvoicePaid   InvoiceStatus = "paid"
	InvoiceVoid   InvoiceStatus = "void"
)

// LineItem is one billed line on an invoice. Amounts are decimal, never
// floats.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Amount returns quantity * unit price.
func (l LineItem) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Invoice represents a bill for a completed work order.
type Invoice struct {
	ID          string
	Number      string
	WorkOrderID string
	CustomerID  string
	LineItems   []LineItem
	Subtotal    decimal.Decimal
	TaxRate     decimal.Decimal
	Total       decimal.Decimal
	Status      InvoiceStatus
	IssuedAt    *time.Time
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Recalculate recomputes subtotal and total from the line items.
func (i *Invoice) Recalculate() {
	subtotal := decimal.Zero
	for _, line := range i.LineItems {
		subtotal = subtotal.Add(line.Amount())
	}
	i.Subtotal = subtotal
	tax := subtotal.Mul(i.TaxRate)
	i.Total = subtotal.Add(tax).Round(2)
}

// Issue moves a draft invoice to issued.
func (i *Invoice) Issue(at time.Time) error {
	if i.Status != InvoiceDraft {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, i.Status, InvoiceIssued)
	}
	i.Status = InvoiceIssued
	issued := at
	i.IssuedAt = &issued
	i.UpdatedAt = at
	return nil
}

// MarkPaid records payment of an issued invoice.
func (i *Invoice) MarkPaid(at time.Time) error {
	if i.Status != InvoiceIssued {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, i.Status, InvoicePaid)
	}
	i.Status = InvoicePaid
	paid := at
	i.PaidAt = &paid
	i.UpdatedAt = at
	return nil
}

// Void cancels any unpaid invoice.
func (i *Invoice) Void(at time.Time) error {
	if i.Status == InvoicePaid || i.Status == InvoiceVoid {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, i.Status, InvoiceVoid)
	}
	i.Status = InvoiceVoid
	i.UpdatedAt = at
	return nil
}

// ValidateLineItems checks that an invoice has at least one line and that
// every line has a positive quantity and a non-negative price.
func ValidateLineItems(lines []LineItem) error {
	if len(lines) == 0 {
		return fmt.Errorf("invoice requires at least one line item")
	}
	for idx, line := range lines {
		if line.Description == "" {
			return fmt.Errorf("line %d: description is required", idx)
		}
		if !line.Quantity.IsPositive() {
			return fmt.Errorf("line %d: quantity must be positive", idx)
		}
		if line.UnitPrice.IsNegative() {
			return fmt.Errorf("line %d: unit price cannot be negative", idx)
		}
		if err := ValidateAmount(line.Amount()); err != nil {
			return fmt.Errorf("line %d: %w", idx, err)
		}
	}
	return nil
}
