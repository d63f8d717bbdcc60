package usecase

import (
	"context"
	"time"

	"github.com/coolvent/fieldops/internal/domain"
)

// WorkOrderUseCase handles work order intake, dispatch and lifecycle.
type WorkOrderUseCase struct {
	workOrderRepo WorkOrderRepository
	customerRepo  CustomerRepository
	userRepo      UserRepository
	idGen         IDGenerator
}

// NewWorkOrderUseCase creates a new work order use case
func NewWorkOrderUseCase(workOrderRepo WorkOrderRepository, customerRepo CustomerRepository, userRepo UserRepository, idGen IDGenerator) *WorkOrderUseCase {
	return &WorkOrderUseCase{
		workOrderRepo: workOrderRepo,
		customerRepo:  customerRepo,
		userRepo:      userRepo,
		idGen:         idGen,
	}
}

// CreateWorkOrderInput represents input for opening a work order
type CreateWorkOrderInput struct {
	CustomerID  string
	Title       string
	Description string
	Priority    domain.WorkOrderPriority
}

// CreateWorkOrder opens a new pending work order for a customer.
func (uc *WorkOrderUseCase) CreateWorkOrder(ctx context.Context, input CreateWorkOrderInput) (*domain.WorkOrder, error) {
	if input.Priority == "" {
		input.Priority = domain.PriorityNormal
	}
	if err := domain.ValidateWorkOrder(input.CustomerID, input.Title, input.Priority); err != nil {
		return nil, err
	}

	if _, err := uc.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	wo := &domain.WorkOrder{
		ID:          uc.idGen.Generate(),
		CustomerID:  input.CustomerID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      domain.WorkOrderPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.workOrderRepo.Create(ctx, wo); err != nil {
		return nil, err
	}

	return wo, nil
}

// GetWorkOrder retrieves a work order by ID
func (uc *WorkOrderUseCase) GetWorkOrder(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return uc.workOrderRepo.GetByID(ctx, id)
}

// AssignInput represents a dispatch decision: which technician, when.
type AssignInput struct {
	WorkOrderID  string
	TechnicianID string
	ScheduledAt  time.Time
}

// Assign dispatches a technician to a pending work order and schedules it.
// Only users holding the technician role can be dispatched.
func (uc *WorkOrderUseCase) Assign(ctx context.Context, input AssignInput) (*domain.WorkOrder, error) {
	wo, err := uc.workOrderRepo.GetByID(ctx, input.WorkOrderID)
	if err != nil {
		return nil, err
	}

	tech, err := uc.userRepo.GetByID(ctx, input.TechnicianID)
	if err != nil {
		return nil, err
	}
	if tech.Role != domain.RoleTechnician || !tech.Active {
		return nil, domain.ErrNotATechnician
	}

	if err := wo.Transition(domain.WorkOrderScheduled, time.Now().UTC()); err != nil {
		return nil, err
	}
	wo.AssignedTechID = tech.ID
	scheduled := input.ScheduledAt.UTC()
	wo.ScheduledAt = &scheduled

	if err := uc.workOrderRepo.Update(ctx, wo); err != nil {
		return nil, err
	}

	return wo, nil
}

// Start marks a scheduled work order as in progress.
func (uc *WorkOrderUseCase) Start(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return uc.transition(ctx, id, domain.WorkOrderInProgress)
}

// Complete marks an in-progress work order as completed.
func (uc *WorkOrderUseCase) Complete(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return uc.transition(ctx, id, domain.WorkOrderCompleted)
}

// Cancel cancels a work order from any non-terminal state.
func (uc *WorkOrderUseCase) Cancel(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return uc.transition(ctx, id, domain.WorkOrderCancelled)
}

func (uc *WorkOrderUseCase) transition(ctx context.Context, id string, to domain.WorkOrderStatus) (*domain.WorkOrder, error) {
	wo, err := uc.workOrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := wo.Transition(to, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.workOrderRepo.Update(ctx, wo); err != nil {
		return nil, err
	}

	return wo, nil
}

// ListWorkOrdersInput represents listing filters
type ListWorkOrdersInput struct {
	Status       domain.WorkOrderStatus
	TechnicianID string
	CustomerID   string
	Limit        int
	Offset       int
}

// ListWorkOrders lists work orders by status, technician or customer.
func (uc *WorkOrderUseCase) ListWorkOrders(ctx context.Context, input ListWorkOrdersInput) ([]*domain.WorkOrder, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)

	switch {
	case input.TechnicianID != "":
		return uc.workOrderRepo.ListByTechnician(ctx, input.TechnicianID, limit, offset)
	case input.CustomerID != "":
		return uc.workOrderRepo.ListByCustomer(ctx, input.CustomerID, limit, offset)
	case input.Status != "":
		return uc.workOrderRepo.ListByStatus(ctx, input.Status, limit, offset)
	default:
		return uc.workOrderRepo.List(ctx, limit, offset)
	}
}
