package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/domain"
)

// MemoryStore keeps orders, history and couriers in process. Reads return
// deep copies, so callers never observe a later mutation.
type MemoryStore struct {
	mu            sync.RWMutex
	orders        map[string]*domain.Order
	sequence      []string
	history       map[string][]domain.StatusChange
	couriers      map[int]*domain.Courier
	courierOrders map[string]int
	nextCourierID int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:        make(map[string]*domain.Order),
		history:       make(map[string][]domain.StatusChange),
		couriers:      make(map[int]*domain.Courier),
		courierOrders: make(map[string]int),
		nextCourierID: 1,
	}
}

func (m *MemoryStore) Orders() *MemoryOrderRepository {
	return &MemoryOrderRepository{store: m}
}

func (m *MemoryStore) Couriers() *MemoryCourierRepository {
	return &MemoryCourierRepository{store: m}
}

type MemoryOrderRepository struct {
	store *MemoryStore
}

type MemoryCourierRepository struct {
	store *MemoryStore
}

func copyOrder(order *domain.Order) domain.Order {
	c := *order
	c.Items = make([]domain.OrderItem, len(order.Items))
	copy(c.Items, order.Items)
	if order.Address != nil {
		address := *order.Address
		c.Address = &address
	}
	if order.Note != nil {
		note := *order.Note
		c.Note = &note
	}
	if order.DeliveryPersonID != nil {
		id := *order.DeliveryPersonID
		c.DeliveryPersonID = &id
	}
	return c
}

func (r *MemoryOrderRepository) Insert(ctx context.Context, order *domain.Order, change domain.StatusChange) error {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, exists := m.orders[order.ID]; exists {
		if existing.ClientID == order.ClientID && existing.CreatedAt.Equal(order.CreatedAt) {
			return nil
		}
		return fmt.Errorf("%w: order %s already exists", domain.ErrConflict, order.ID)
	}
	stored := copyOrder(order)
	m.orders[order.ID] = &stored
	m.sequence = append(m.sequence, order.ID)
	m.history[order.ID] = append(m.history[order.ID], change)
	return nil
}

func (r *MemoryOrderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	m := r.store
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, ok := m.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, orderID)
	}
	c := copyOrder(order)
	return &c, nil
}

func (r *MemoryOrderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	m := r.store
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := []domain.Order{}
	for i := len(m.sequence) - 1; i >= 0; i-- {
		order := m.orders[m.sequence[i]]
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.ClientID != "" && order.ClientID != filter.ClientID {
			continue
		}
		orders = append(orders, copyOrder(order))
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *MemoryOrderRepository) ListActive(ctx context.Context) ([]domain.Order, error) {
	m := r.store
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := []domain.Order{}
	for _, id := range m.sequence {
		order := m.orders[id]
		if order.Status.IsTerminal() {
			continue
		}
		orders = append(orders, copyOrder(order))
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *MemoryOrderRepository) UpdateStatus(ctx context.Context, change domain.StatusChange) error {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[change.OrderID]
	if !ok {
		return fmt.Errorf("%w: order %s", domain.ErrNotFound, change.OrderID)
	}
	if order.Status != change.From {
		if m.recordedLocked(change) {
			return nil
		}
		return fmt.Errorf("%w: order %s is no longer %s", domain.ErrConflict, change.OrderID, change.From)
	}

	order.Status = change.To
	order.UpdatedAt = change.ChangedAt
	m.history[change.OrderID] = append(m.history[change.OrderID], change)
	if change.To.IsTerminal() {
		delete(m.courierOrders, change.OrderID)
	}
	return nil
}

func (r *MemoryOrderRepository) History(ctx context.Context, orderID string) ([]domain.StatusChange, error) {
	m := r.store
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := make([]domain.StatusChange, len(m.history[orderID]))
	copy(history, m.history[orderID])
	return history, nil
}

func (m *MemoryStore) recordedLocked(change domain.StatusChange) bool {
	for _, past := range m.history[change.OrderID] {
		if past.To == change.To && past.ChangedBy == change.ChangedBy && past.ChangedAt.Equal(change.ChangedAt) {
			return true
		}
	}
	return false
}

func (m *MemoryStore) currentOrdersLocked(courierID int) []string {
	orders := []string{}
	for _, id := range m.sequence {
		if assigned, ok := m.courierOrders[id]; ok && assigned == courierID {
			orders = append(orders, id)
		}
	}
	return orders
}

func (r *MemoryCourierRepository) Create(ctx context.Context, courier *domain.Courier) error {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	courier.ID = m.nextCourierID
	m.nextCourierID++
	courier.CreatedAt = time.Now()
	courier.CurrentOrders = []string{}
	stored := *courier
	m.couriers[courier.ID] = &stored
	return nil
}

func (r *MemoryCourierRepository) Update(ctx context.Context, courier *domain.Courier) error {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.couriers[courier.ID]
	if !ok {
		return fmt.Errorf("%w: courier %d", domain.ErrNotFound, courier.ID)
	}
	existing.Name = courier.Name
	existing.Phone = courier.Phone
	existing.Vehicle = courier.Vehicle
	existing.Active = courier.Active

	courier.CreatedAt = existing.CreatedAt
	courier.CurrentOrders = m.currentOrdersLocked(courier.ID)
	return nil
}

func (r *MemoryCourierRepository) Get(ctx context.Context, id int) (*domain.Courier, error) {
	m := r.store
	m.mu.RLock()
	defer m.mu.RUnlock()

	courier, ok := m.couriers[id]
	if !ok {
		return nil, fmt.Errorf("%w: courier %d", domain.ErrNotFound, id)
	}
	c := *courier
	c.CurrentOrders = m.currentOrdersLocked(id)
	return &c, nil
}

func (r *MemoryCourierRepository) List(ctx context.Context, activeOnly bool) ([]domain.Courier, error) {
	m := r.store
	m.mu.RLock()
	defer m.mu.RUnlock()

	couriers := []domain.Courier{}
	for _, courier := range m.couriers {
		if activeOnly && !courier.Active {
			continue
		}
		c := *courier
		c.CurrentOrders = m.currentOrdersLocked(c.ID)
		couriers = append(couriers, c)
	}
	sort.Slice(couriers, func(i, j int) bool { return couriers[i].ID < couriers[j].ID })
	return couriers, nil
}

func (r *MemoryCourierRepository) Assign(ctx context.Context, orderID string, courierID int, at time.Time) error {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	courier, ok := m.couriers[courierID]
	if !ok {
		return fmt.Errorf("%w: courier %d", domain.ErrNotFound, courierID)
	}
	if !courier.Active {
		return fmt.Errorf("%w: courier %d", domain.ErrInactiveCourier, courierID)
	}
	order, ok := m.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: order %s", domain.ErrNotFound, orderID)
	}
	if order.Type != domain.OrderTypeDelivery || order.Status.IsTerminal() {
		return fmt.Errorf("%w: order %s can no longer be assigned", domain.ErrConflict, orderID)
	}

	id := courierID
	order.DeliveryPersonID = &id
	order.UpdatedAt = at
	m.courierOrders[orderID] = courierID
	return nil
}

// MemoryCatalog is a fixed dish list for local runs and tests.
type MemoryCatalog struct {
	dishes map[int]domain.DishSnapshot
}

func NewMemoryCatalog(dishes ...domain.DishSnapshot) *MemoryCatalog {
	c := &MemoryCatalog{dishes: make(map[int]domain.DishSnapshot, len(dishes))}
	for _, dish := range dishes {
		c.dishes[dish.ID] = dish
	}
	return c
}

func (c *MemoryCatalog) Lookup(ctx context.Context, dishIDs []int) (map[int]domain.DishSnapshot, error) {
	found := make(map[int]domain.DishSnapshot, len(dishIDs))
	for _, id := range dishIDs {
		if dish, ok := c.dishes[id]; ok {
			found[id] = dish
		}
	}
	return found, nil
}
