package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

func newInventoryFixture() (*usecase.InventoryUseCase, *stubItemRepo, *stubPORepo) {
	items := newStubItemRepo()
	pos := newStubPORepo()
	uc := usecase.NewInventoryUseCase(items, pos, noopTxManager{}, passRetrier{}, &seqIDGen{})
	return uc, items, pos
}

func TestInventoryUseCase_CreateItem(t *testing.T) {
	t.Parallel()

	uc, _, _ := newInventoryFixture()

	item, err := uc.CreateItem(context.Background(), usecase.CreateItemInput{
		SKU:          " flt-2040 ",
		Name:         "Pleated Filter 20x40",
		Quantity:     12,
		ReorderPoint: 4,
		UnitCost:     "8.75",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if item.SKU != "FLT-2040" {
		t.Fatalf("sku = %q, want normalized FLT-2040", item.SKU)
	}
	if !item.UnitCost.Equal(decimal.RequireFromString("8.75")) {
		t.Fatalf("unit cost = %s, want 8.75", item.UnitCost)
	}

	// Same SKU again is rejected.
	_, err = uc.CreateItem(context.Background(), usecase.CreateItemInput{
		SKU: "FLT-2040", Name: "Duplicate",
	})
	if !errors.Is(err, domain.ErrSKUAlreadyExists) {
		t.Fatalf("got %v, want ErrSKUAlreadyExists", err)
	}
}

func TestInventoryUseCase_CreateItem_BadCost(t *testing.T) {
	t.Parallel()

	uc, _, _ := newInventoryFixture()

	if _, err := uc.CreateItem(context.Background(), usecase.CreateItemInput{
		SKU: "CAP-0001", Name: "Run Capacitor", UnitCost: "eight",
	}); err == nil {
		t.Fatal("expected error for unparseable cost")
	}
	if _, err := uc.CreateItem(context.Background(), usecase.CreateItemInput{
		SKU: "CAP-0002", Name: "Run Capacitor", UnitCost: "-1.00",
	}); err == nil {
		t.Fatal("expected error for negative cost")
	}
}

func TestInventoryUseCase_AdjustStock(t *testing.T) {
	t.Parallel()

	uc, _, _ := newInventoryFixture()
	ctx := context.Background()

	item, err := uc.CreateItem(ctx, usecase.CreateItemInput{
		SKU: "RFR-410A", Name: "R-410A Canister", Quantity: 5, ReorderPoint: 3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	adjusted, err := uc.AdjustStock(ctx, item.ID, -4)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if adjusted.QuantityOnHand != 1 {
		t.Fatalf("quantity = %d, want 1", adjusted.QuantityOnHand)
	}
	if !adjusted.NeedsReorder() {
		t.Fatal("expected item below reorder point to need reorder")
	}

	// Cannot draw down past zero.
	if _, err := uc.AdjustStock(ctx, item.ID, -2); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}
}

func TestInventoryUseCase_PurchaseOrderLifecycle(t *testing.T) {
	t.Parallel()

	uc, _, _ := newInventoryFixture()
	ctx := context.Background()

	item, err := uc.CreateItem(ctx, usecase.CreateItemInput{
		SKU: "MTR-0500", Name: "Blower Motor 1/2HP", Quantity: 1, ReorderPoint: 2,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	po, err := uc.CreatePurchaseOrder(ctx, usecase.CreatePurchaseOrderInput{
		Supplier: "Gulf Coast HVAC Supply",
		Lines: []domain.PurchaseOrderLine{
			{ItemID: item.ID, Quantity: 6, UnitCost: decimal.RequireFromString("42.00")},
		},
	})
	if err != nil {
		t.Fatalf("create po: %v", err)
	}
	if po.Status != domain.PurchaseOrderOpen {
		t.Fatalf("status = %s, want open", po.Status)
	}

	// Receiving an open order skips the submit step; rejected.
	if _, err := uc.ReceivePurchaseOrder(ctx, po.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition receiving an open order", err)
	}

	if _, err := uc.SubmitPurchaseOrder(ctx, po.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	received, err := uc.ReceivePurchaseOrder(ctx, po.ID)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if received.Status != domain.PurchaseOrderReceived {
		t.Fatalf("status = %s, want received", received.Status)
	}

	restocked, err := uc.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if restocked.QuantityOnHand != 7 {
		t.Fatalf("quantity = %d, want 7 after receipt", restocked.QuantityOnHand)
	}

	// Received orders cannot be cancelled.
	if _, err := uc.CancelPurchaseOrder(ctx, po.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition cancelling a received order", err)
	}
}

// lockTrackingPORepo records how ReceivePurchaseOrder reads the order, so the
// test can tell a locked transactional read from a plain one.
type lockTrackingPORepo struct {
	*stubPORepo
	lockedReads int
	plainReads  int
}

func (r *lockTrackingPORepo) GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	r.plainReads++
	return r.stubPORepo.GetByID(ctx, id)
}

func (r *lockTrackingPORepo) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PurchaseOrder, error) {
	r.lockedReads++
	return r.stubPORepo.GetByIDForUpdate(ctx, tx, id)
}

func TestInventoryUseCase_ReceivePurchaseOrder_SecondReceiveRestocksNothing(t *testing.T) {
	t.Parallel()

	items := newStubItemRepo()
	pos := &lockTrackingPORepo{stubPORepo: newStubPORepo()}
	uc := usecase.NewInventoryUseCase(items, pos, noopTxManager{}, passRetrier{}, &seqIDGen{})
	ctx := context.Background()

	item, err := uc.CreateItem(ctx, usecase.CreateItemInput{
		SKU: "COIL-024", Name: "Evaporator Coil 2T", Quantity: 1, ReorderPoint: 1,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	po, err := uc.CreatePurchaseOrder(ctx, usecase.CreatePurchaseOrderInput{
		Supplier: "Gulf Coast HVAC Supply",
		Lines: []domain.PurchaseOrderLine{
			{ItemID: item.ID, Quantity: 5, UnitCost: decimal.RequireFromString("310.00")},
		},
	})
	if err != nil {
		t.Fatalf("create po: %v", err)
	}
	if _, err := uc.SubmitPurchaseOrder(ctx, po.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	pos.lockedReads, pos.plainReads = 0, 0

	if _, err := uc.ReceivePurchaseOrder(ctx, po.ID); err != nil {
		t.Fatalf("first receive: %v", err)
	}
	if pos.lockedReads != 1 {
		t.Fatalf("locked reads = %d, want the receive to re-read the order under lock", pos.lockedReads)
	}
	if pos.plainReads != 0 {
		t.Fatalf("plain reads = %d, want status checked only inside the transaction", pos.plainReads)
	}

	// A retried or racing receive sees the committed status and fails.
	if _, err := uc.ReceivePurchaseOrder(ctx, po.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition on a duplicate receive", err)
	}

	restocked, err := uc.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if restocked.QuantityOnHand != 6 {
		t.Fatalf("quantity = %d, want 6 after exactly one restock", restocked.QuantityOnHand)
	}
}

func TestInventoryUseCase_CreatePurchaseOrder_UnknownItem(t *testing.T) {
	t.Parallel()

	uc, _, _ := newInventoryFixture()

	_, err := uc.CreatePurchaseOrder(context.Background(), usecase.CreatePurchaseOrderInput{
		Supplier: "Gulf Coast HVAC Supply",
		Lines: []domain.PurchaseOrderLine{
			{ItemID: "missing", Quantity: 1, UnitCost: decimal.Zero},
		},
	})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("got %v, want ErrItemNotFound", err)
	}
}

func TestInventoryUseCase_ListLowStock(t *testing.T) {
	t.Parallel()

	uc, _, _ := newInventoryFixture()
	ctx := context.Background()

	if _, err := uc.CreateItem(ctx, usecase.CreateItemInput{
		SKU: "FLT-1620", Name: "Filter 16x20", Quantity: 10, ReorderPoint: 2,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.CreateItem(ctx, usecase.CreateItemInput{
		SKU: "FLT-2020", Name: "Filter 20x20", Quantity: 1, ReorderPoint: 2,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	low, err := uc.ListLowStock(ctx)
	if err != nil {
		t.Fatalf("list low stock: %v", err)
	}
	if len(low) != 1 || low[0].SKU != "FLT-2020" {
		t.Fatalf("expected only FLT-2020 below reorder point, got %v", low)
	}
}
