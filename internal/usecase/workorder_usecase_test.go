package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

func newWorkOrderFixture(techs map[string]*domain.User) (*usecase.WorkOrderUseCase, *stubWorkOrderRepo) {
	repo := newStubWorkOrderRepo()
	customers := &stubCustomerRepo{
		getByIDFn: func(_ context.Context, id string) (*domain.Customer, error) {
			if id == "cust-1" {
				return &domain.Customer{ID: "cust-1", Name: "Maple Street HOA"}, nil
			}
			return nil, domain.ErrCustomerNotFound
		},
	}
	users := &stubUserRepo{
		getByIDFn: func(_ context.Context, id string) (*domain.User, error) {
			if u, ok := techs[id]; ok {
				return u, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	return usecase.NewWorkOrderUseCase(repo, customers, users, &seqIDGen{}), repo
}

func TestWorkOrderUseCase_CreateWorkOrder(t *testing.T) {
	t.Parallel()

	uc, _ := newWorkOrderFixture(nil)

	wo, err := uc.CreateWorkOrder(context.Background(), usecase.CreateWorkOrderInput{
		CustomerID:  "cust-1",
		Title:       "AC not cooling",
		Description: "Unit blows warm air",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if wo.Status != domain.WorkOrderPending {
		t.Fatalf("status = %s, want pending", wo.Status)
	}
	if wo.Priority != domain.PriorityNormal {
		t.Fatalf("priority = %s, want default normal", wo.Priority)
	}
}

func TestWorkOrderUseCase_CreateWorkOrder_UnknownCustomer(t *testing.T) {
	t.Parallel()

	uc, _ := newWorkOrderFixture(nil)

	_, err := uc.CreateWorkOrder(context.Background(), usecase.CreateWorkOrderInput{
		CustomerID: "missing", Title: "Furnace check",
	})
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("got %v, want ErrCustomerNotFound", err)
	}
}

func TestWorkOrderUseCase_Assign(t *testing.T) {
	t.Parallel()

	techs := map[string]*domain.User{
		"tech-1": {ID: "tech-1", Role: domain.RoleTechnician, Active: true},
		"csr-1":  {ID: "csr-1", Role: domain.RoleCSR, Active: true},
		"tech-2": {ID: "tech-2", Role: domain.RoleTechnician, Active: false},
	}
	uc, _ := newWorkOrderFixture(techs)

	wo, err := uc.CreateWorkOrder(context.Background(), usecase.CreateWorkOrderInput{
		CustomerID: "cust-1", Title: "Compressor swap", Priority: domain.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	when := time.Now().UTC().Add(24 * time.Hour)

	// Dispatching a CSR is rejected.
	_, err = uc.Assign(context.Background(), usecase.AssignInput{
		WorkOrderID: wo.ID, TechnicianID: "csr-1", ScheduledAt: when,
	})
	if !errors.Is(err, domain.ErrNotATechnician) {
		t.Fatalf("got %v, want ErrNotATechnician", err)
	}

	// An inactive technician is rejected.
	_, err = uc.Assign(context.Background(), usecase.AssignInput{
		WorkOrderID: wo.ID, TechnicianID: "tech-2", ScheduledAt: when,
	})
	if !errors.Is(err, domain.ErrNotATechnician) {
		t.Fatalf("got %v, want ErrNotATechnician for inactive tech", err)
	}

	assigned, err := uc.Assign(context.Background(), usecase.AssignInput{
		WorkOrderID: wo.ID, TechnicianID: "tech-1", ScheduledAt: when,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.Status != domain.WorkOrderScheduled {
		t.Fatalf("status = %s, want scheduled", assigned.Status)
	}
	if assigned.AssignedTechID != "tech-1" {
		t.Fatalf("assigned tech = %s, want tech-1", assigned.AssignedTechID)
	}
	if assigned.ScheduledAt == nil {
		t.Fatal("expected scheduled time")
	}
}

func TestWorkOrderUseCase_Lifecycle(t *testing.T) {
	t.Parallel()

	techs := map[string]*domain.User{
		"tech-1": {ID: "tech-1", Role: domain.RoleTechnician, Active: true},
	}
	uc, _ := newWorkOrderFixture(techs)
	ctx := context.Background()

	wo, err := uc.CreateWorkOrder(ctx, usecase.CreateWorkOrderInput{
		CustomerID: "cust-1", Title: "Seasonal maintenance",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Cannot start an unscheduled work order.
	if _, err := uc.Start(ctx, wo.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}

	if _, err := uc.Assign(ctx, usecase.AssignInput{
		WorkOrderID: wo.ID, TechnicianID: "tech-1", ScheduledAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := uc.Start(ctx, wo.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	completed, err := uc.Complete(ctx, wo.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Fatal("expected completion timestamp")
	}

	// Terminal orders cannot be cancelled.
	if _, err := uc.Cancel(ctx, wo.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition for completed order", err)
	}
}

func TestWorkOrderUseCase_ListByTechnician(t *testing.T) {
	t.Parallel()

	techs := map[string]*domain.User{
		"tech-1": {ID: "tech-1", Role: domain.RoleTechnician, Active: true},
	}
	uc, repo := newWorkOrderFixture(techs)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		wo, err := uc.CreateWorkOrder(ctx, usecase.CreateWorkOrderInput{
			CustomerID: "cust-1", Title: "Job",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if i < 2 {
			if _, err := uc.Assign(ctx, usecase.AssignInput{
				WorkOrderID: wo.ID, TechnicianID: "tech-1", ScheduledAt: time.Now().UTC(),
			}); err != nil {
				t.Fatalf("assign: %v", err)
			}
		}
	}

	mine, err := uc.ListWorkOrders(ctx, usecase.ListWorkOrdersInput{TechnicianID: "tech-1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 assigned orders, got %d", len(mine))
	}
	_ = repo
}
