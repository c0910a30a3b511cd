package services

import (
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// OrderService exposes a customer's order history: finalized orders only,
// carts never appear here.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// ListUserOrders retrieves the user's finalized orders, most recent first.
func (s *OrderService) ListUserOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetOrderedByUser(userID)
}

// GetUserOrder retrieves one of the user's finalized orders. Orders that
// exist but belong to someone else, or are still open carts, report
// not-found.
func (s *OrderService) GetUserOrder(userID string, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !order.Ordered || order.UserID == nil || *order.UserID != userID {
		return nil, fmt.Errorf("order with ID %d: %w", orderID, repositories.ErrNotFound)
	}
	return order, nil
}
