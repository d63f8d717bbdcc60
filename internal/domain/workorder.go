package domain

import (
	"errors"
	"fmt"
	"time"
)

// WorkOrderStatus represents the state of a work order.
type WorkOrderStatus string

const (
	WorkOrderPending    WorkOrderStatus = "pending"
	WorkOrderScheduled  WorkOrderStatus = "scheduled"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderCompleted  WorkOrderStatus = "completed"
	WorkOrderCancelled  WorkOrderStatus = "cancelled"
)

// WorkOrderPriority ranks dispatch urgency.
type WorkOrderPriority string

const (
	PriorityLow       WorkOrderPriority = "low"
	PriorityNormal    WorkOrderPriority = "normal"
	PriorityHigh      WorkOrderPriority = "high"
	PriorityEmergency WorkOrderPriority = "emergency"
)

var validPriorities = map[WorkOrderPriority]bool{
	PriorityLow:       true,
	PriorityNormal:    true,
	PriorityHigh:      true,
	PriorityEmergency: true,
}

// IsValid checks if the priority is a known value.
func (p WorkOrderPriority) IsValid() bool {
	return validPriorities[p]
}

// WorkOrder represents a service job for a customer.
type WorkOrder struct {
	ID             string
	CustomerID     string
	Title          string
	Description    string
	Priority       WorkOrderPriority
	Status         WorkOrderStatus
	AssignedTechID string
	ScheduledAt    *time.Time
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// workOrderTransitions lists the legal status transitions. Cancellation is
// allowed from any non-terminal state.
var workOrderTransitions = map[WorkOrderStatus][]WorkOrderStatus{
	WorkOrderPending:    {WorkOrderScheduled, WorkOrderCancelled},
	WorkOrderScheduled:  {WorkOrderInProgress, WorkOrderCancelled},
	WorkOrderInProgress: {WorkOrderCompleted, WorkOrderCancelled},
	WorkOrderCompleted:  {},
	WorkOrderCancelled:  {},
}

// CanTransition checks whether moving from the current status to the target
// status is legal.
func (w *WorkOrder) CanTransition(to WorkOrderStatus) bool {
	for _, next := range workOrderTransitions[w.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the work order to the target status, or fails with
// ErrInvalidTransition.
func (w *WorkOrder) Transition(to WorkOrderStatus, at time.Time) error {
	if !w.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, w.Status, to)
	}

	w.Status = to
	w.UpdatedAt = at
	if to == WorkOrderCompleted {
		completed := at
		w.CompletedAt = &completed
	}
	return nil
}

// IsTerminal reports whether the work order can no longer change state.
func (w *WorkOrder) IsTerminal() bool {
	return w.Status == WorkOrderCompleted || w.Status == WorkOrderCancelled
}

// ValidateWorkOrder checks the fields required to open a work order.
func ValidateWorkOrder(customerID, title string, priority WorkOrderPriority) error {
	if customerID == "" {
		return errors.New("customer ID is required")
	}
	if title == "" {
		return errors.New("title is required")
	}
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority %q", priority)
	}
	return nil
}
