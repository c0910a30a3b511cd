package repositories

import (
	"sort"
	"sync"
	"time"

	"storefront/internal/models"
)

// MockPaymentRepository is an in-memory implementation of PaymentRepository.
type MockPaymentRepository struct {
	payments map[uint]models.Payment
	nextID   uint
	mu       sync.RWMutex
}

// NewMockPaymentRepository creates a new instance of MockPaymentRepository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[uint]models.Payment),
	}
}

// Create appends a new ledger row.
func (r *MockPaymentRepository) Create(payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	payment.ID = r.nextID
	if payment.Timestamp.IsZero() {
		payment.Timestamp = time.Now()
	}
	r.payments[payment.ID] = *payment
	return nil
}

// GetByOrder returns all payment attempts for an order, oldest first.
func (r *MockPaymentRepository) GetByOrder(orderID uint) ([]models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payments []models.Payment
	for _, p := range r.payments {
		if p.OrderID == orderID {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}
