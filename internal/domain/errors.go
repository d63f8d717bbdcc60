package domain

import "errors"

var (
	// Lookup errors
	ErrUserNotFound          = errors.New("user not found")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrWorkOrderNotFound     = errors.New("work order not found")
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrItemNotFound          = errors.New("inventory item not found")
	ErrPurchaseOrderNotFound = errors.New("purchase order not found")
	ErrSessionNotFound       = errors.New("session not found")

	// State errors
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrSKUAlreadyExists   = errors.New("item with this SKU already exists")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInsufficientStock  = errors.New("insufficient stock on hand")
	ErrNotATechnician     = errors.New("assignee is not a technician")
	ErrLoginInProgress    = errors.New("login already in progress for this identity")
)
