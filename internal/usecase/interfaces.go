package usecase

import (
	"context"
	"time"

	"github.com/coolvent/fieldops/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.User, error)
}

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Customer, error)
	SearchByName(ctx context.Context, query string, limit, offset int) ([]*domain.Customer, error)
}

// WorkOrderRepository defines data access for work orders.
type WorkOrderRepository interface {
	Create(ctx context.Context, wo *domain.WorkOrder) error
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	Update(ctx context.Context, wo *domain.WorkOrder) error
	List(ctx context.Context, limit, offset int) ([]*domain.WorkOrder, error)
	ListByStatus(ctx context.Context, status domain.WorkOrderStatus, limit, offset int) ([]*domain.WorkOrder, error)
	ListByTechnician(ctx context.Context, techID string, limit, offset int) ([]*domain.WorkOrder, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.WorkOrder, error)
	CountByStatus(ctx context.Context, status domain.WorkOrderStatus) (int, error)
}

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	Update(ctx context.Context, invoice *domain.Invoice) error
	List(ctx context.Context, limit, offset int) ([]*domain.Invoice, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Invoice, error)
	NextNumber(ctx context.Context) (string, error)
	SumOutstanding(ctx context.Context) (string, error)
}

// ItemRepository defines data access for inventory items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Item, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	UpdateQuantity(ctx context.Context, tx Transaction, id string, quantity int, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Item, error)
	ListBelowReorderPoint(ctx context.Context) ([]*domain.Item, error)
}

// PurchaseOrderRepository defines data access for purchase orders.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.PurchaseOrder, error)
	Update(ctx context.Context, po *domain.PurchaseOrder) error
	UpdateTx(ctx context.Context, tx Transaction, po *domain.PurchaseOrder) error
	List(ctx context.Context, limit, offset int) ([]*domain.PurchaseOrder, error)
	ListByStatus(ctx context.Context, status domain.PurchaseOrderStatus, limit, offset int) ([]*domain.PurchaseOrder, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// SessionStore persists sessions keyed by token. Implementations must treat
// a missing or unreadable value as "no session", never as a hard failure.
type SessionStore interface {
	Save(ctx context.Context, token string, session domain.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// PreviewStore holds ephemeral role-preview overrides keyed by session token.
type PreviewStore interface {
	Set(ctx context.Context, token string, role domain.Role, ttl time.Duration) error
	Get(ctx context.Context, token string) (domain.Role, error)
	Clear(ctx context.Context, token string) error
}

// TokenManager issues and verifies bearer tokens.
type TokenManager interface {
	Generate(sessionToken string, user *domain.User) (string, error)
	Verify(bearer string) (sessionToken string, err error)
}

// Cache provides short-lived caching for derived reads.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore deduplicates retried mutating requests by key.
type IdempotencyStore interface {
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager begins database transactions.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs for new entities.
type IDGenerator interface {
	Generate() string
}

// Retrier retries operations that fail transiently.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
