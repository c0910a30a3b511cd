package repositories

import (
	"storefront/internal/models"
)

// PaymentRepository defines the interface for the payment ledger. The ledger
// is append-only: rows are created and read, never updated or deleted.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByOrder(orderID uint) ([]models.Payment, error)
}
