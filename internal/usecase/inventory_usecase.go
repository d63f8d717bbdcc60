package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coolvent/fieldops/internal/domain"
)

// InventoryUseCase handles stocked items and purchase orders. Receiving a
// purchase order updates stock inside one transaction, retried on transient
// database failures.
type InventoryUseCase struct {
	itemRepo ItemRepository
	poRepo   PurchaseOrderRepository
	txMgr    TransactionManager
	retrier  Retrier
	idGen    IDGenerator
}

// NewInventoryUseCase creates a new inventory use case
func NewInventoryUseCase(itemRepo ItemRepository, poRepo PurchaseOrderRepository, txMgr TransactionManager, retrier Retrier, idGen IDGenerator) *InventoryUseCase {
	return &InventoryUseCase{
		itemRepo: itemRepo,
		poRepo:   poRepo,
		txMgr:    txMgr,
		retrier:  retrier,
		idGen:    idGen,
	}
}

// CreateItemInput represents input for stocking a new item
type CreateItemInput struct {
	SKU          string
	Name         string
	Description  string
	Quantity     int
	ReorderPoint int
	UnitCost     string
}

// CreateItem stocks a new inventory item.
func (uc *InventoryUseCase) CreateItem(ctx context.Context, input CreateItemInput) (*domain.Item, error) {
	sku := strings.ToUpper(strings.TrimSpace(input.SKU))
	if err := domain.ValidateSKU(sku); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	existing, err := uc.itemRepo.GetBySKU(ctx, sku)
	if err == nil && existing != nil {
		return nil, domain.ErrSKUAlreadyExists
	}

	unitCost, err := parseCost(input.UnitCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &domain.Item{
		ID:             uc.idGen.Generate(),
		SKU:            sku,
		Name:           input.Name,
		Description:    input.Description,
		QuantityOnHand: max(input.Quantity, 0),
		ReorderPoint:   max(input.ReorderPoint, 0),
		UnitCost:       unitCost,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// GetItem retrieves an item by ID
func (uc *InventoryUseCase) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return uc.itemRepo.GetByID(ctx, id)
}

// AdjustStock applies a stock delta to an item. Stock never goes negative.
func (uc *InventoryUseCase) AdjustStock(ctx context.Context, id string, delta int) (*domain.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.Adjust(delta, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// ListItems lists inventory items with pagination
func (uc *InventoryUseCase) ListItems(ctx context.Context, limit, offset int) ([]*domain.Item, error) {
	limit, offset, _ = domain.ValidatePagination(limit, offset)
	return uc.itemRepo.List(ctx, limit, offset)
}

// ListLowStock lists items at or below their reorder point.
func (uc *InventoryUseCase) ListLowStock(ctx context.Context) ([]*domain.Item, error) {
	return uc.itemRepo.ListBelowReorderPoint(ctx)
}

// CreatePurchaseOrderInput represents input for opening a purchase order
type CreatePurchaseOrderInput struct {
	Supplier string
	Lines    []domain.PurchaseOrderLine
}

// CreatePurchaseOrder opens a purchase order against a supplier.
func (uc *InventoryUseCase) CreatePurchaseOrder(ctx context.Context, input CreatePurchaseOrderInput) (*domain.PurchaseOrder, error) {
	if err := domain.ValidatePurchaseOrder(input.Supplier, input.Lines); err != nil {
		return nil, err
	}

	for _, line := range input.Lines {
		if _, err := uc.itemRepo.GetByID(ctx, line.ItemID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	po := &domain.PurchaseOrder{
		ID:        uc.idGen.Generate(),
		Supplier:  input.Supplier,
		Lines:     input.Lines,
		Status:    domain.PurchaseOrderOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.poRepo.Create(ctx, po); err != nil {
		return nil, err
	}

	return po, nil
}

// GetPurchaseOrder retrieves a purchase order by ID
func (uc *InventoryUseCase) GetPurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	return uc.poRepo.GetByID(ctx, id)
}

// SubmitPurchaseOrder submits an open purchase order to the supplier.
func (uc *InventoryUseCase) SubmitPurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := po.Transition(domain.PurchaseOrderSubmitted, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.poRepo.Update(ctx, po); err != nil {
		return nil, err
	}

	return po, nil
}

// CancelPurchaseOrder cancels an unreceived purchase order.
func (uc *InventoryUseCase) CancelPurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := po.Transition(domain.PurchaseOrderCancelled, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.poRepo.Update(ctx, po); err != nil {
		return nil, err
	}

	return po, nil
}

// ReceivePurchaseOrder marks a submitted purchase order as received and
// increments stock for every line, all inside one transaction.
func (uc *InventoryUseCase) ReceivePurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	var received *domain.PurchaseOrder

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txMgr.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		// The order row is locked and re-read inside the transaction so a
		// second receive waits here and then fails the transition.
		po, err := uc.poRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := po.Transition(domain.PurchaseOrderReceived, now); err != nil {
			return err
		}

		for _, line := range po.Lines {
			item, err := uc.itemRepo.GetByIDForUpdate(ctx, tx, line.ItemID)
			if err != nil {
				return err
			}
			if err := uc.itemRepo.UpdateQuantity(ctx, tx, item.ID, item.QuantityOnHand+line.Quantity, now); err != nil {
				return err
			}
		}

		if err := uc.poRepo.UpdateTx(ctx, tx, po); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		received = po
		return nil
	})
	if err != nil {
		return nil, err
	}

	return received, nil
}

// ListPurchaseOrdersInput represents listing filters
type ListPurchaseOrdersInput struct {
	Status domain.PurchaseOrderStatus
	Limit  int
	Offset int
}

// ListPurchaseOrders lists purchase orders, optionally by status.
func (uc *InventoryUseCase) ListPurchaseOrders(ctx context.Context, input ListPurchaseOrdersInput) ([]*domain.PurchaseOrder, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)

	if input.Status != "" {
		return uc.poRepo.ListByStatus(ctx, input.Status, limit, offset)
	}
	return uc.poRepo.List(ctx, limit, offset)
}

func parseCost(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	cost, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid unit cost %q: %w", s, err)
	}
	if cost.IsNegative() {
		return decimal.Zero, fmt.Errorf("unit cost cannot be negative")
	}
	return cost, nil
}
