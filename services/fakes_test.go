package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hongaldhruv-del/SalesSavvy/models"
	"github.com/hongaldhruv-del/SalesSavvy/repository"

	"github.com/shopspring/decimal"
)

// memState is the committed content of the fake database.
type memState struct {
	orders     map[string]models.Order
	items      []models.OrderItem
	carts      map[int64][]models.CartItem
	nextItemID int64
}

func newMemState() *memState {
	return &memState{
		orders: map[string]models.Order{},
		carts:  map[int64][]models.CartItem{},
	}
}

func (s *memState) clone() *memState {
	c := &memState{
		orders:     make(map[string]models.Order, len(s.orders)),
		items:      append([]models.OrderItem(nil), s.items...),
		carts:      make(map[int64][]models.CartItem, len(s.carts)),
		nextItemID: s.nextItemID,
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.carts {
		c.carts[k] = append([]models.CartItem(nil), v...)
	}
	return c
}

// fakeStore serialises transactions, which stands in for the row lock, and
// only publishes a transaction's writes when fn returns nil.
type fakeStore struct {
	mu    sync.Mutex
	state *memState
	calls atomic.Int64
	txs   atomic.Int64

	failCreateOrder error
	failCreateItem  error
	failClearCart   error
	failLock        error
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: newMemState()}
}

func (f *fakeStore) Orders() repository.OrderRepository {
	return &fakeOrderRepo{store: f, state: f.committed()}
}

func (f *fakeStore) Carts() repository.CartRepository {
	return &fakeCartRepo{store: f, state: f.committed()}
}

func (f *fakeStore) WithinTransaction(ctx context.Context, fn func(tx repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.txs.Add(1)
	work := f.state.clone()
	if err := fn(&fakeTx{store: f, state: work}); err != nil {
		return err
	}
	f.state = work
	return nil
}

func (f *fakeStore) committed() *memState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// helpers for assertions

func (f *fakeStore) order(id string) (models.Order, bool) {
	o, ok := f.committed().orders[id]
	return o, ok
}

func (f *fakeStore) itemsFor(orderID string) []models.OrderItem {
	var out []models.OrderItem
	for _, it := range f.committed().items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out
}

func (f *fakeStore) cart(userID int64) []models.CartItem {
	return f.committed().carts[userID]
}

func (f *fakeStore) putOrder(o models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.orders[o.OrderID] = o
}

func (f *fakeStore) putCartLine(userID, productID int64, qty int, price string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := f.state.carts[userID]
	f.state.carts[userID] = append(lines, models.CartItem{
		ID:        int64(len(lines) + 1),
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
		Product:   models.Product{ProductID: productID, Price: decimal.RequireFromString(price)},
	})
}

type fakeTx struct {
	store *fakeStore
	state *memState
}

func (t *fakeTx) Orders() repository.OrderRepository {
	return &fakeOrderRepo{store: t.store, state: t.state}
}

func (t *fakeTx) Carts() repository.CartRepository {
	return &fakeCartRepo{store: t.store, state: t.state}
}

func (t *fakeTx) WithinTransaction(_ context.Context, fn func(tx repository.Store) error) error {
	return fn(t)
}

type fakeOrderRepo struct {
	store *fakeStore
	state *memState
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	r.store.calls.Add(1)
	if r.store.failCreateOrder != nil {
		return r.store.failCreateOrder
	}
	if _, exists := r.state.orders[order.OrderID]; exists {
		return errors.New("duplicate key value violates unique constraint \"orders_pkey\"")
	}
	r.state.orders[order.OrderID] = *order
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, orderID string) (*models.Order, error) {
	r.store.calls.Add(1)
	o, ok := r.state.orders[orderID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (r *fakeOrderRepo) FindByIDForUpdate(ctx context.Context, orderID string) (*models.Order, error) {
	if r.store.failLock != nil {
		r.store.calls.Add(1)
		return nil, r.store.failLock
	}
	return r.FindByID(ctx, orderID)
}

func (r *fakeOrderRepo) MarkSuccess(_ context.Context, orderID string, at time.Time) error {
	r.store.calls.Add(1)
	o, ok := r.state.orders[orderID]
	if !ok || o.Status != models.OrderStatusPending {
		return repository.ErrStatusConflict
	}
	o.Status = models.OrderStatusSuccess
	o.UpdatedAt = &at
	r.state.orders[orderID] = o
	return nil
}

func (r *fakeOrderRepo) CreateItem(_ context.Context, item *models.OrderItem) error {
	r.store.calls.Add(1)
	if r.store.failCreateItem != nil {
		return r.store.failCreateItem
	}
	r.state.nextItemID++
	item.ID = r.state.nextItemID
	r.state.items = append(r.state.items, *item)
	return nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID int64) ([]models.Order, error) {
	r.store.calls.Add(1)
	var out []models.Order
	for _, o := range r.state.orders {
		if o.UserID != userID {
			continue
		}
		for _, it := range r.state.items {
			if it.OrderID == o.OrderID {
				o.Items = append(o.Items, it)
			}
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeCartRepo struct {
	store *fakeStore
	state *memState
}

func (r *fakeCartRepo) FindCartItemsWithProductDetails(_ context.Context, userID int64) ([]models.CartItem, error) {
	r.store.calls.Add(1)
	return append([]models.CartItem(nil), r.state.carts[userID]...), nil
}

func (r *fakeCartRepo) DeleteAllByUserID(_ context.Context, userID int64) (int64, error) {
	r.store.calls.Add(1)
	if r.store.failClearCart != nil {
		return 0, r.store.failClearCart
	}
	n := int64(len(r.state.carts[userID]))
	delete(r.state.carts, userID)
	return n, nil
}

type fakeGateway struct {
	mu     sync.Mutex
	id     string
	err    error
	calls  int
	amount decimal.Decimal
	cur    string
}

func (g *fakeGateway) CreateRemoteOrder(_ context.Context, amount decimal.Decimal, currency string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.amount = amount
	g.cur = currency
	if g.err != nil {
		return "", g.err
	}
	return g.id, nil
}

type mockSNS struct {
	mu       sync.Mutex
	arn      string
	messages [][]byte
	err      error
}

func (m *mockSNS) Publish(_ context.Context, topicArn string, message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.arn = topicArn
	m.messages = append(m.messages, append([]byte(nil), message...))
	return m.err
}

func (m *mockSNS) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

type fakeMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *fakeMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]int{}
	}
	m.counts[name]++
	return nil
}

func (m *fakeMetrics) RecordLatency(context.Context, string, time.Duration, map[string]string) error {
	return nil
}

func (m *fakeMetrics) IsEnabled() bool { return true }

func (m *fakeMetrics) get(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[name]
}
