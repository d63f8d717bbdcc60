package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/coolvent/fieldops/internal/domain"
)

// UserResponse represents a user in API responses. The password hash never
// leaves the server.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// UserFromDomain converts domain user to response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}
	return result
}

// SessionResponse represents the authenticated session in API responses.
type SessionResponse struct {
	IsAuthenticated bool        `json:"is_authenticated"`
	Username        string      `json:"username,omitempty"`
	Role            domain.Role `json:"role,omitempty"`
}

// SessionFromDomain converts a domain session to a response.
func SessionFromDomain(s domain.Session) SessionResponse {
	return SessionResponse{
		IsAuthenticated: s.IsAuthenticated,
		Username:        s.Username,
		Role:            s.Role,
	}
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
	User    *UserResponse   `json:"user"`
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	ServiceAddress string    `json:"service_address,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CustomerFromDomain converts domain customer to response.
func CustomerFromDomain(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		ServiceAddress: c.ServiceAddress,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// CustomersFromDomain converts domain customers to responses.
func CustomersFromDomain(customers []*domain.Customer) []*CustomerResponse {
	result := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		result[i] = CustomerFromDomain(c)
	}
	return result
}

// WorkOrderResponse represents a work order in API responses.
type WorkOrderResponse struct {
	ID             string                   `json:"id"`
	CustomerID     string                   `json:"customer_id"`
	Title          string                   `json:"title"`
	Description    string                   `json:"description,omitempty"`
	Priority       domain.WorkOrderPriority `json:"priority"`
	Status         domain.WorkOrderStatus   `json:"status"`
	AssignedTechID string                   `json:"assigned_tech_id,omitempty"`
	ScheduledAt    *time.Time               `json:"scheduled_at,omitempty"`
	CompletedAt    *time.Time               `json:"completed_at,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// WorkOrderFromDomain converts domain work order to response.
func WorkOrderFromDomain(wo *domain.WorkOrder) *WorkOrderResponse {
	return &WorkOrderResponse{
		ID:             wo.ID,
		CustomerID:     wo.CustomerID,
		Title:          wo.Title,
		Description:    wo.Description,
		Priority:       wo.Priority,
		Status:         wo.Status,
		AssignedTechID: wo.AssignedTechID,
		ScheduledAt:    wo.ScheduledAt,
		CompletedAt:    wo.CompletedAt,
		CreatedAt:      wo.CreatedAt,
		UpdatedAt:      wo.UpdatedAt,
	}
}

// WorkOrdersFromDomain converts domain work orders to responses.
func WorkOrdersFromDomain(orders []*domain.WorkOrder) []*WorkOrderResponse {
	result := make([]*WorkOrderResponse, len(orders))
	for i, wo := range orders {
		result[i] = WorkOrderFromDomain(wo)
	}
	return result
}

// LineItemResponse is one billed line on an invoice.
type LineItemResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents an invoice in API responses.
type InvoiceResponse struct {
	ID          string               `json:"id"`
	Number      string               `json:"number"`
	WorkOrderID string               `json:"work_order_id"`
	CustomerID  string               `json:"customer_id"`
	LineItems   []LineItemResponse   `json:"line_items"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
	TaxRate     decimal.Decimal      `json:"tax_rate"`
	Total       decimal.Decimal      `json:"total"`
	Status      domain.InvoiceStatus `json:"status"`
	IssuedAt    *time.Time           `json:"issued_at,omitempty"`
	PaidAt      *time.Time           `json:"paid_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// InvoiceFromDomain converts domain invoice to response.
func InvoiceFromDomain(inv *domain.Invoice) *InvoiceResponse {
	lines := make([]LineItemResponse, len(inv.LineItems))
	for i, l := range inv.LineItems {
		lines[i] = LineItemResponse{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount(),
		}
	}
	return &InvoiceResponse{
		ID:          inv.ID,
		Number:      inv.Number,
		WorkOrderID: inv.WorkOrderID,
		CustomerID:  inv.CustomerID,
		LineItems:   lines,
		Subtotal:    inv.Subtotal,
		TaxRate:     inv.TaxRate,
		Total:       inv.Total,
		Status:      inv.Status,
		IssuedAt:    inv.IssuedAt,
		PaidAt:      inv.PaidAt,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

// InvoicesFromDomain converts domain invoices to responses.
func InvoicesFromDomain(invoices []*domain.Invoice) []*InvoiceResponse {
	result := make([]*InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		result[i] = InvoiceFromDomain(inv)
	}
	return result
}

// ItemResponse represents an inventory item in API responses.
type ItemResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	QuantityOnHand int             `json:"quantity_on_hand"`
	ReorderPoint   int             `json:"reorder_point"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	NeedsReorder   bool            `json:"needs_reorder"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ItemFromDomain converts domain item to response.
func ItemFromDomain(item *domain.Item) *ItemResponse {
	return &ItemResponse{
		ID:             item.ID,
		SKU:            item.SKU,
		Name:           item.Name,
		Description:    item.Description,
		QuantityOnHand: item.QuantityOnHand,
		ReorderPoint:   item.ReorderPoint,
		UnitCost:       item.UnitCost,
		NeedsReorder:   item.NeedsReorder(),
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

// ItemsFromDomain converts domain items to responses.
func ItemsFromDomain(items []*domain.Item) []*ItemResponse {
	result := make([]*ItemResponse, len(items))
	for i, item := range items {
		result[i] = ItemFromDomain(item)
	}
	return result
}

// PurchaseOrderLineResponse is one requested item on a purchase order.
type PurchaseOrderLineResponse struct {
	ItemID   string          `json:"item_id"`
	Quantity int             `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse represents a purchase order in API responses.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	Supplier   string                      `json:"supplier"`
	Lines      []PurchaseOrderLineResponse `json:"lines"`
	Status     domain.PurchaseOrderStatus  `json:"status"`
	Total      decimal.Decimal             `json:"total"`
	ReceivedAt *time.Time                  `json:"received_at,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

// PurchaseOrderFromDomain converts domain purchase order to response.
func PurchaseOrderFromDomain(po *domain.PurchaseOrder) *PurchaseOrderResponse {
	lines := make([]PurchaseOrderLineResponse, len(po.Lines))
	for i, l := range po.Lines {
		lines[i] = PurchaseOrderLineResponse{
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
			UnitCost: l.UnitCost,
		}
	}
	return &PurchaseOrderResponse{
		ID:         po.ID,
		Supplier:   po.Supplier,
		Lines:      lines,
		Status:     po.Status,
		Total:      po.Total(),
		ReceivedAt: po.ReceivedAt,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	}
}

// PurchaseOrdersFromDomain converts domain purchase orders to responses.
func PurchaseOrdersFromDomain(orders []*domain.PurchaseOrder) []*PurchaseOrderResponse {
	result := make([]*PurchaseOrderResponse, len(orders))
	for i, po := range orders {
		result[i] = PurchaseOrderFromDomain(po)
	}
	return result
}

// AuditLogResponse represents an audit entry in API responses.
type AuditLogResponse struct {
	ID            string      `json:"id"`
	ActorID       string      `json:"actor_id"`
	ActorRole     domain.Role `json:"actor_role"`
	PreviewedRole domain.Role `json:"previewed_role,omitempty"`
	Action        string      `json:"action"`
	ResourceType  string      `json:"resource_type"`
	ResourceID    string      `json:"resource_id,omitempty"`
	RequestID     string      `json:"request_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// AuditLogFromDomain converts a domain audit log to a response.
func AuditLogFromDomain(l *domain.AuditLog) *AuditLogResponse {
	return &AuditLogResponse{
		ID:            l.ID,
		ActorID:       l.ActorID,
		ActorRole:     l.ActorRole,
		PreviewedRole: l.PreviewedRole,
		Action:        l.Action,
		ResourceType:  l.ResourceType,
		ResourceID:    l.ResourceID,
		RequestID:     l.RequestID,
		CreatedAt:     l.CreatedAt,
	}
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = AuditLogFromDomain(l)
	}
	return result
}

// PreviewResponse reports the active preview override for a session.
type PreviewResponse struct {
	Active bool        `json:"active"`
	Role   domain.Role `json:"role,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// GuardDeniedResponse explains a route guard denial. AllowedRoles is only
// populated for authenticated callers.
type GuardDeniedResponse struct {
	Error        string        `json:"error"`
	AllowedRoles []domain.Role `json:"allowed_roles,omitempty"`
	RedirectTo   string        `json:"redirect_to,omitempty"`
}
