package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a stocked part or material.
type Item struct {
	ID             string
	SKU            string
	Name           string
	Description    string
	QuantityOnHand int
	ReorderPoint   int
	UnitCost       decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NeedsReorder reports whether stock has fallen to the reorder point.
func (i *Item) NeedsReorder() bool {
	return i.QuantityOnHand <= i.ReorderPoint
}

// Adjust applies a stock delta. Stock never goes below zero.
func (i *Item) Adjust(delta int, at time.Time) error {
	next := i.QuantityOnHand + delta
	if next < 0 {
		return fmt.Errorf("%w: have %d, requested %d", ErrInsufficientStock, i.QuantityOnHand, -delta)
	}
	i.QuantityOnHand = next
	i.UpdatedAt = at
	return nil
}

// PurchaseOrderStatus represents the procurement state of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseOrderOpen      PurchaseOrderStatus = "open"
	PurchaseOrderSubmitted PurchaseOrderStatus = "submitted"
	PurchaseOrderReceived  PurchaseOrderStatus = "received"
	PurchaseOrderCancelled PurchaseOrderStatus = "cancelled"
)

// PurchaseOrderLine is one requested item on a purchase order.
type PurchaseOrderLine struct {
	ItemID   string
	Quantity int
	UnitCost decimal.Decimal
}

// PurchaseOrder represents a supplier order for stock replenishment.
type PurchaseOrder struct {
	ID         string
	Supplier   string
	Lines      []PurchaseOrderLine
	Status     PurchaseOrderStatus
	ReceivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Total sums line quantity * unit cost.
func (p *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range p.Lines {
		total = total.Add(line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

var purchaseOrderTransitions = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	PurchaseOrderOpen:      {PurchaseOrderSubmitted, PurchaseOrderCancelled},
	PurchaseOrderSubmitted: {PurchaseOrderReceived, PurchaseOrderCancelled},
	PurchaseOrderReceived:  {},
	PurchaseOrderCancelled: {},
}

// Transition moves the purchase order to the target status, or fails with
// ErrInvalidTransition.
func (p *PurchaseOrder) Transition(to PurchaseOrderStatus, at time.Time) error {
	for _, next := range purchaseOrderTransitions[p.Status] {
		if next == to {
			p.Status = to
			p.UpdatedAt = at
			if to == PurchaseOrderReceived {
				received := at
				p.ReceivedAt = &received
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, to)
}

// ValidatePurchaseOrder checks the fields required to open a purchase order.
func ValidatePurchaseOrder(supplier string, lines []PurchaseOrderLine) error {
	if supplier == "" {
		return fmt.Errorf("supplier is required")
	}
	if len(lines) == 0 {
		return fmt.Errorf("purchase order requires at least one line")
	}
	for idx, line := range lines {
		if line.ItemID == "" {
			return fmt.Errorf("line %d: item ID is required", idx)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("line %d: quantity must be positive", idx)
		}
		if line.UnitCost.IsNegative() {
			return fmt.Errorf("line %d: unit cost cannot be negative", idx)
		}
	}
	return nil
}
