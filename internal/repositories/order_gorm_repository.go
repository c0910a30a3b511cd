package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// withAssociations preloads everything needed to render an order: line items
// in insertion order with their products, both addresses and the payment
// ledger.
func (r *GORMOrderRepository) withAssociations() *gorm.DB {
	return r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id")
		}).
		Preload("Items.Product").
		Preload("BillingAddress").
		Preload("ShippingAddress").
		Preload("Payments")
}

// GetByID retrieves an order by its ID, finalized or not.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withAssociations().First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// GetActiveByID retrieves an order by its ID, constrained to open carts.
func (r *GORMOrderRepository) GetActiveByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withAssociations().First(&order, "id = ? AND ordered = ?", id, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("active order with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get active order by ID %d: %w", id, err)
	}
	return &order, nil
}

// GetOrderedByUser retrieves a user's finalized orders, most recent first.
func (r *GORMOrderRepository) GetOrderedByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.withAssociations().
		Where("user_id = ? AND ordered = ?", userID, true).
		Order("ordered_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// Create persists a new order row.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Omit(clause.Associations).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Save persists changes to the order row itself; line items are managed
// through the item methods, not upserted here.
func (r *GORMOrderRepository) Save(order *models.Order) error {
	res := r.db.Omit(clause.Associations).Save(order)
	if res.Error != nil {
		return fmt.Errorf("failed to save order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d: %w", order.ID, ErrNotFound)
	}
	return nil
}

// GetItem retrieves a line item by its ID with its product loaded.
func (r *GORMOrderRepository) GetItem(id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.Preload("Product").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order item with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order item by ID %d: %w", id, err)
	}
	return &item, nil
}

// FindItem locates the line item for an (order, product) pair.
func (r *GORMOrderRepository) FindItem(orderID uint, productID string) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.Preload("Product").
		First(&item, "order_id = ? AND product_id = ?", orderID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order item for order %d and product %s: %w", orderID, productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find order item for order %d: %w", orderID, err)
	}
	return &item, nil
}

// CreateItem persists a new line item.
func (r *GORMOrderRepository) CreateItem(item *models.OrderItem) error {
	if err := r.db.Omit(clause.Associations).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

// SaveItem persists a quantity change on an existing line item.
func (r *GORMOrderRepository) SaveItem(item *models.OrderItem) error {
	res := r.db.Omit(clause.Associations).Save(item)
	if res.Error != nil {
		return fmt.Errorf("failed to save order item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order item with ID %d: %w", item.ID, ErrNotFound)
	}
	return nil
}

// DeleteItem removes a line item.
func (r *GORMOrderRepository) DeleteItem(id uint) error {
	res := r.db.Delete(&models.OrderItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order item with ID %d: %w", id, ErrNotFound)
	}
	return nil
}
