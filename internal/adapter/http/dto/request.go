package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest represents a request to create a user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

// UpdateUserRequest represents a request to update a user. Absent fields
// are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateUserRequest) ToUseCaseInput(id string) usecase.UpdateUserInput {
	input := usecase.UpdateUserInput{
		ID:       id,
		Name:     r.Name,
		Active:   r.Active,
		Password: r.Password,
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		input.Role = &role
	}
	return input
}

// CreateCustomerRequest represents a request to create a customer.
type CreateCustomerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	ServiceAddress string `json:"service_address,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCustomerRequest) ToUseCaseInput() usecase.CreateCustomerInput {
	return usecase.CreateCustomerInput{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		ServiceAddress: r.ServiceAddress,
		Notes:          r.Notes,
	}
}

// UpdateCustomerRequest represents a request to update a customer. Absent
// fields are left unchanged.
type UpdateCustomerRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	ServiceAddress *string `json:"service_address,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateCustomerRequest) ToUseCaseInput(id string) usecase.UpdateCustomerInput {
	return usecase.UpdateCustomerInput{
		ID:             id,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		ServiceAddress: r.ServiceAddress,
		Notes:          r.Notes,
	}
}

// CreateWorkOrderRequest represents a request to open a work order.
type CreateWorkOrderRequest struct {
	CustomerID  string `json:"customer_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateWorkOrderRequest) ToUseCaseInput() usecase.CreateWorkOrderInput {
	return usecase.CreateWorkOrderInput{
		CustomerID:  r.CustomerID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    domain.WorkOrderPriority(r.Priority),
	}
}

// AssignWorkOrderRequest represents a dispatch request.
type AssignWorkOrderRequest struct {
	TechnicianID string    `json:"technician_id"`
	ScheduledAt  time.Time `json:"scheduled_at"`
}

// ToUseCaseInput converts to use case input.
func (r *AssignWorkOrderRequest) ToUseCaseInput(workOrderID string) usecase.AssignInput {
	return usecase.AssignInput{
		WorkOrderID:  workOrderID,
		TechnicianID: r.TechnicianID,
		ScheduledAt:  r.ScheduledAt,
	}
}

// LineItemRequest is one billed line on an invoice request.
type LineItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest represents a request to draft an invoice.
type CreateInvoiceRequest struct {
	WorkOrderID string            `json:"work_order_id"`
	LineItems   []LineItemRequest `json:"line_items"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateInvoiceRequest) ToUseCaseInput() usecase.CreateInvoiceInput {
	lines := make([]domain.LineItem, len(r.LineItems))
	for i, l := range r.LineItems {
		lines[i] = domain.LineItem{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
	}
	return usecase.CreateInvoiceInput{
		WorkOrderID: r.WorkOrderID,
		LineItems:   lines,
	}
}

// CreateItemRequest represents a request to create an inventory item.
type CreateItemRequest struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Quantity     int    `json:"quantity"`
	ReorderPoint int    `json:"reorder_point"`
	UnitCost     string `json:"unit_cost"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateItemRequest) ToUseCaseInput() usecase.CreateItemInput {
	return usecase.CreateItemInput{
		SKU:          r.SKU,
		Name:         r.Name,
		Description:  r.Description,
		Quantity:     r.Quantity,
		ReorderPoint: r.ReorderPoint,
		UnitCost:     r.UnitCost,
	}
}

// AdjustStockRequest represents a stock delta.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// PurchaseOrderLineRequest is one requested item on a purchase order.
type PurchaseOrderLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity int             `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest represents a request to open a purchase order.
type CreatePurchaseOrderRequest struct {
	Supplier string                     `json:"supplier"`
	Lines    []PurchaseOrderLineRequest `json:"lines"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePurchaseOrderRequest) ToUseCaseInput() usecase.CreatePurchaseOrderInput {
	lines := make([]domain.PurchaseOrderLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.PurchaseOrderLine{
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
			UnitCost: l.UnitCost,
		}
	}
	return usecase.CreatePurchaseOrderInput{
		Supplier: r.Supplier,
		Lines:    lines,
	}
}

// SetPreviewRequest represents a request to preview another role.
type SetPreviewRequest struct {
	Role string `json:"role"`
}
