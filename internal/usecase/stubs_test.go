package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/usecase"
)

// seqIDGen generates predictable IDs for tests.
type seqIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGen) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type stubUserRepo struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	updateFn     func(ctx context.Context, user *domain.User) error
	listFn       func(ctx context.Context, limit, offset int) ([]*domain.User, error)
	listByRoleFn func(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *domain.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (s *stubUserRepo) ListByRole(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.User, error) {
	if s.listByRoleFn != nil {
		return s.listByRoleFn(ctx, role, limit, offset)
	}
	return nil, nil
}

type stubCustomerRepo struct {
	createFn  func(ctx context.Context, customer *domain.Customer) error
	getByIDFn func(ctx context.Context, id string) (*domain.Customer, error)
	updateFn  func(ctx context.Context, customer *domain.Customer) error
	deleteFn  func(ctx context.Context, id string) error
	listFn    func(ctx context.Context, limit, offset int) ([]*domain.Customer, error)
	searchFn  func(ctx context.Context, query string, limit, offset int) ([]*domain.Customer, error)
}

func (s *stubCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	if s.createFn != nil {
		return s.createFn(ctx, customer)
	}
	return nil
}

func (s *stubCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domain.ErrCustomerNotFound
}

func (s *stubCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, customer)
	}
	return nil
}

func (s *stubCustomerRepo) Delete(ctx context.Context, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubCustomerRepo) List(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (s *stubCustomerRepo) SearchByName(ctx context.Context, query string, limit, offset int) ([]*domain.Customer, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, query, limit, offset)
	}
	return nil, nil
}

type stubWorkOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.WorkOrder

	createFn func(ctx context.Context, wo *domain.WorkOrder) error
	countFn  func(ctx context.Context, status domain.WorkOrderStatus) (int, error)
}

func newStubWorkOrderRepo() *stubWorkOrderRepo {
	return &stubWorkOrderRepo{orders: make(map[string]*domain.WorkOrder)}
}

func (s *stubWorkOrderRepo) Create(ctx context.Context, wo *domain.WorkOrder) error {
	if s.createFn != nil {
		if err := s.createFn(ctx, wo); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *wo
	s.orders[wo.ID] = &copied
	return nil
}

func (s *stubWorkOrderRepo) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wo, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrWorkOrderNotFound
	}
	copied := *wo
	return &copied, nil
}

func (s *stubWorkOrderRepo) Update(ctx context.Context, wo *domain.WorkOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *wo
	s.orders[wo.ID] = &copied
	return nil
}

func (s *stubWorkOrderRepo) List(ctx context.Context, limit, offset int) ([]*domain.WorkOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.WorkOrder
	for _, wo := range s.orders {
		copied := *wo
		out = append(out, &copied)
	}
	return out, nil
}

func (s *stubWorkOrderRepo) ListByStatus(ctx context.Context, status domain.WorkOrderStatus, limit, offset int) ([]*domain.WorkOrder, error) {
	all, _ := s.List(ctx, limit, offset)
	var out []*domain.WorkOrder
	for _, wo := range all {
		if wo.Status == status {
			out = append(out, wo)
		}
	}
	return out, nil
}

func (s *stubWorkOrderRepo) ListByTechnician(ctx context.Context, techID string, limit, offset int) ([]*domain.WorkOrder, error) {
	all, _ := s.List(ctx, limit, offset)
	var out []*domain.WorkOrder
	for _, wo := range all {
		if wo.AssignedTechID == techID {
			out = append(out, wo)
		}
	}
	return out, nil
}

func (s *stubWorkOrderRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.WorkOrder, error) {
	all, _ := s.List(ctx, limit, offset)
	var out []*domain.WorkOrder
	for _, wo := range all {
		if wo.CustomerID == customerID {
			out = append(out, wo)
		}
	}
	return out, nil
}

func (s *stubWorkOrderRepo) CountByStatus(ctx context.Context, status domain.WorkOrderStatus) (int, error) {
	if s.countFn != nil {
		return s.countFn(ctx, status)
	}
	matches, _ := s.ListByStatus(ctx, status, 0, 0)
	return len(matches), nil
}

type stubInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*domain.Invoice
	nextNum  int

	sumOutstandingFn func(ctx context.Context) (string, error)
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[string]*domain.Invoice)}
}

func (s *stubInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *invoice
	s.invoices[invoice.ID] = &copied
	return nil
}

func (s *stubInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	copied := *inv
	return &copied, nil
}

func (s *stubInvoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *invoice
	s.invoices[invoice.ID] = &copied
	return nil
}

func (s *stubInvoiceRepo) List(ctx context.Context, limit, offset int) ([]*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Invoice
	for _, inv := range s.invoices {
		copied := *inv
		out = append(out, &copied)
	}
	return out, nil
}

func (s *stubInvoiceRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Invoice, error) {
	all, _ := s.List(ctx, limit, offset)
	var out []*domain.Invoice
	for _, inv := range all {
		if inv.CustomerID == customerID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *stubInvoiceRepo) NextNumber(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextNum++
	return fmt.Sprintf("INV-%04d", s.nextNum), nil
}

func (s *stubInvoiceRepo) SumOutstanding(ctx context.Context) (string, error) {
	if s.sumOutstandingFn != nil {
		return s.sumOutstandingFn(ctx)
	}
	return "0", nil
}

type stubItemRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Item
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[string]*domain.Item)}
}

func (s *stubItemRepo) Create(ctx context.Context, item *domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *stubItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (s *stubItemRepo) GetBySKU(ctx context.Context, sku string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.SKU == sku {
			copied := *item
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubItemRepo) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Item, error) {
	return s.GetByID(ctx, id)
}

func (s *stubItemRepo) Update(ctx context.Context, item *domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *stubItemRepo) UpdateQuantity(ctx context.Context, tx usecase.Transaction, id string, quantity int, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.QuantityOnHand = quantity
	item.UpdatedAt = updatedAt
	return nil
}

func (s *stubItemRepo) List(ctx context.Context, limit, offset int) ([]*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Item
	for _, item := range s.items {
		copied := *item
		out = append(out, &copied)
	}
	return out, nil
}

func (s *stubItemRepo) ListBelowReorderPoint(ctx context.Context) ([]*domain.Item, error) {
	all, _ := s.List(ctx, 0, 0)
	var out []*domain.Item
	for _, item := range all {
		if item.NeedsReorder() {
			out = append(out, item)
		}
	}
	return out, nil
}

type stubPORepo struct {
	mu  sync.Mutex
	pos map[string]*domain.PurchaseOrder
}

func newStubPORepo() *stubPORepo {
	return &stubPORepo{pos: make(map[string]*domain.PurchaseOrder)}
}

func (s *stubPORepo) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *po
	s.pos[po.ID] = &copied
	return nil
}

func (s *stubPORepo) GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	po, ok := s.pos[id]
	if !ok {
		return nil, domain.ErrPurchaseOrderNotFound
	}
	copied := *po
	return &copied, nil
}

func (s *stubPORepo) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PurchaseOrder, error) {
	return s.GetByID(ctx, id)
}

func (s *stubPORepo) Update(ctx context.Context, po *domain.PurchaseOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *po
	s.pos[po.ID] = &copied
	return nil
}

func (s *stubPORepo) UpdateTx(ctx context.Context, tx usecase.Transaction, po *domain.PurchaseOrder) error {
	return s.Update(ctx, po)
}

func (s *stubPORepo) List(ctx context.Context, limit, offset int) ([]*domain.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.PurchaseOrder
	for _, po := range s.pos {
		copied := *po
		out = append(out, &copied)
	}
	return out, nil
}

func (s *stubPORepo) ListByStatus(ctx context.Context, status domain.PurchaseOrderStatus, limit, offset int) ([]*domain.PurchaseOrder, error) {
	all, _ := s.List(ctx, limit, offset)
	var out []*domain.PurchaseOrder
	for _, po := range all {
		if po.Status == status {
			out = append(out, po)
		}
	}
	return out, nil
}

// memSessionStore is an in-memory SessionStore.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *memSessionStore) Save(ctx context.Context, token string, session domain.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session
	return nil
}

func (s *memSessionStore) Get(ctx context.Context, token string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return domain.AnonymousSession(), domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *memSessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// memPreviewStore is an in-memory PreviewStore.
type memPreviewStore struct {
	mu        sync.Mutex
	overrides map[string]domain.Role
}

func newMemPreviewStore() *memPreviewStore {
	return &memPreviewStore{overrides: make(map[string]domain.Role)}
}

func (s *memPreviewStore) Set(ctx context.Context, token string, role domain.Role, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[token] = role
	return nil
}

func (s *memPreviewStore) Get(ctx context.Context, token string) (domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	role, ok := s.overrides[token]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return role, nil
}

func (s *memPreviewStore) Clear(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, token)
	return nil
}

// plainTokenManager maps bearer tokens 1:1 to session tokens.
type plainTokenManager struct{}

func (plainTokenManager) Generate(sessionToken string, user *domain.User) (string, error) {
	return "bearer:" + sessionToken, nil
}

func (plainTokenManager) Verify(bearer string) (string, error) {
	if !strings.HasPrefix(bearer, "bearer:") {
		return "", domain.ErrInvalidToken
	}
	return strings.TrimPrefix(bearer, "bearer:"), nil
}

// memAuditRepo collects audit entries in memory.
type memAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *memAuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, log)
	return nil
}

func (r *memAuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.AuditLog, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// noopTx satisfies Transaction.
type noopTx struct{}

func (noopTx) Commit(ctx context.Context) error   { return nil }
func (noopTx) Rollback(ctx context.Context) error { return nil }

type noopTxManager struct{}

func (noopTxManager) Begin(ctx context.Context) (usecase.Transaction, error) { return noopTx{}, nil }

// passRetrier runs the operation once.
type passRetrier struct{}

func (passRetrier) Retry(ctx context.Context, op func() error) error { return op() }

// memCache is an in-memory Cache.
type memCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemCache() *memCache {
	return &memCache{values: make(map[string]string)}
}

func (c *memCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}
