package repositories

import (
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{
		db: db,
	}
}

// Create appends a new ledger row.
func (r *GORMPaymentRepository) Create(payment *models.Payment) error {
	if err := r.db.Omit(clause.Associations).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByOrder retrieves all payment attempts for an order, oldest first.
func (r *GORMPaymentRepository) GetByOrder(orderID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Preload("Order").
		Where("order_id = ?", orderID).
		Order("id").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get payments for order %d: %w", orderID, err)
	}
	return payments, nil
}
