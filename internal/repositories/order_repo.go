package repositories

import (
	"storefront/internal/models"
)

// OrderRepository defines the interface for order and line-item data access.
// Line items are part of the order aggregate, so their persistence lives here
// rather than in a repository of their own.
type OrderRepository interface {
	GetByID(id uint) (*models.Order, error)
	// GetActiveByID returns the order only while it is still an open cart
	// (ordered = false).
	GetActiveByID(id uint) (*models.Order, error)
	GetOrderedByUser(userID string) ([]models.Order, error)
	Create(order *models.Order) error
	Save(order *models.Order) error

	GetItem(id uint) (*models.OrderItem, error)
	// FindItem locates the single line item for an (order, product) pair.
	FindItem(orderID uint, productID string) (*models.OrderItem, error)
	CreateItem(item *models.OrderItem) error
	SaveItem(item *models.OrderItem) error
	DeleteItem(id uint) error
}
