package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"storefront/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// Orders and their line items are kept in separate maps, mirroring the two
// tables, and assembled on read.
type MockOrderRepository struct {
	orders    map[uint]models.Order
	items     map[uint]models.OrderItem
	nextOrder uint
	nextItem  uint
	mu        sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[uint]models.Order),
		items:  make(map[uint]models.OrderItem),
	}
}

// itemsFor collects an order's line items in insertion order. Caller must
// hold the read lock.
func (r *MockOrderRepository) itemsFor(orderID uint) []models.OrderItem {
	var items []models.OrderItem
	for _, item := range r.items {
		if item.OrderID == orderID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
	}
	order.Items = r.itemsFor(id)
	return &order, nil
}

// GetActiveByID returns an order by its ID only while it is an open cart.
func (r *MockOrderRepository) GetActiveByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok || order.Ordered {
		return nil, fmt.Errorf("active order with ID %d: %w", id, ErrNotFound)
	}
	order.Items = r.itemsFor(id)
	return &order, nil
}

// GetOrderedByUser returns a user's finalized orders.
func (r *MockOrderRepository) GetOrderedByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, order := range r.orders {
		if order.Ordered && order.UserID != nil && *order.UserID == userID {
			order.Items = r.itemsFor(order.ID)
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextOrder++
	order.ID = r.nextOrder
	if order.StartDate.IsZero() {
		order.StartDate = time.Now()
	}
	stored := *order
	stored.Items = nil
	r.orders[order.ID] = stored
	return nil
}

// Save updates an existing order row.
func (r *MockOrderRepository) Save(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return fmt.Errorf("order with ID %d: %w", order.ID, ErrNotFound)
	}
	stored := *order
	stored.Items = nil
	r.orders[order.ID] = stored
	return nil
}

// GetItem returns a line item by its ID.
func (r *MockOrderRepository) GetItem(id uint) (*models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("order item with ID %d: %w", id, ErrNotFound)
	}
	return &item, nil
}

// FindItem locates the line item for an (order, product) pair.
func (r *MockOrderRepository) FindItem(orderID uint, productID string) (*models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.OrderID == orderID && item.ProductID == productID {
			found := item
			return &found, nil
		}
	}
	return nil, fmt.Errorf("order item for order %d and product %s: %w", orderID, productID, ErrNotFound)
}

// CreateItem adds a new line item.
func (r *MockOrderRepository) CreateItem(item *models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextItem++
	item.ID = r.nextItem
	r.items[item.ID] = *item
	return nil
}

// SaveItem updates an existing line item.
func (r *MockOrderRepository) SaveItem(item *models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("order item with ID %d: %w", item.ID, ErrNotFound)
	}
	r.items[item.ID] = *item
	return nil
}

// DeleteItem removes a line item.
func (r *MockOrderRepository) DeleteItem(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("order item with ID %d: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}
