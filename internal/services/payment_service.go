package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// PaymentService maintains the append-only payment ledger. Every attempted
// transaction against an order becomes a row, successful or not, with the
// provider's raw response preserved verbatim for diagnostics. Rows are never
// mutated after creation.
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repositories.PaymentRepository, orderRepo repositories.OrderRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// RecordPayment appends one attempted transaction to an order's ledger.
func (s *PaymentService) RecordPayment(orderID uint, method string, amount int64, successful bool, rawResponse string) (*models.Payment, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		OrderID:       order.ID,
		PaymentMethod: method,
		Successful:    successful,
		Amount:        amount,
		RawResponse:   rawResponse,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	payment.Order = *order
	return payment, nil
}

// ListPayments retrieves an order's payment attempts, oldest first.
func (s *PaymentService) ListPayments(orderID uint) ([]models.Payment, error) {
	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetByOrder(orderID)
}
