package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"
)

// ErrEmptyCart is returned when checkout is attempted on a cart with no items.
var ErrEmptyCart = errors.New("cart is empty")

// OrderSession is the slice of session state the cart cares about: one order
// identifier. Handlers adapt the framework session store to it, which keeps
// the resolver's read-modify-write on the session an explicit, testable
// contract.
type OrderSession interface {
	OrderID() (uint, bool)
	SetOrderID(id uint)
	ClearOrderID()
}

// OrderEventPublisher publishes order lifecycle events. *rabbitmq.Client
// satisfies it.
type OrderEventPublisher interface {
	PublishOrderPlaced(event rabbitmq.OrderPlaced) error
}

// CartService owns the session-to-order resolution, cart mutations and
// checkout.
type CartService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	addressRepo repositories.AddressRepository
	publisher   OrderEventPublisher
}

// NewCartService creates a new CartService. publisher may be nil, in which
// case checkout events are skipped.
func NewCartService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	addressRepo repositories.AddressRepository,
	publisher OrderEventPublisher,
) *CartService {
	return &CartService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		publisher:   publisher,
	}
}

// ResolveOrder returns the single authoritative open order for the session,
// creating one when the session has none. A session identifier pointing at a
// finalized or missing order is stale: it is silently replaced with a fresh
// order rather than surfaced as an error. When the caller is authenticated
// and the order has no owner yet, the order is attached to them.
func (s *CartService) ResolveOrder(sess OrderSession, userID string) (*models.Order, error) {
	var order *models.Order

	if id, ok := sess.OrderID(); ok {
		existing, err := s.orderRepo.GetActiveByID(id)
		switch {
		case err == nil:
			order = existing
		case errors.Is(err, repositories.ErrNotFound):
			// Stale session: the order was checked out or never existed.
		default:
			return nil, err
		}
	}

	if order == nil {
		order = &models.Order{StartDate: time.Now()}
		if err := s.orderRepo.Create(order); err != nil {
			return nil, err
		}
		sess.SetOrderID(order.ID)
	}

	if userID != "" && order.UserID == nil {
		order.UserID = &userID
		if err := s.orderRepo.Save(order); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// GetCart returns the session's cart with line items and totals loaded.
func (s *CartService) GetCart(sess OrderSession, userID string) (*models.Order, error) {
	order, err := s.ResolveOrder(sess, userID)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// AddToCart adds quantity units of the product identified by slug to the
// session's cart. A repeat add for the same product merges into the existing
// line item; there is no upper bound on quantity.
func (s *CartService) AddToCart(sess OrderSession, userID, productSlug string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	order, err := s.ResolveOrder(sess, userID)
	if err != nil {
		return err
	}

	product, err := s.productRepo.GetBySlug(productSlug)
	if err != nil {
		return err
	}

	item, err := s.orderRepo.FindItem(order.ID, product.ID)
	switch {
	case err == nil:
		item.Quantity += quantity
		return s.orderRepo.SaveItem(item)
	case errors.Is(err, repositories.ErrNotFound):
		return s.orderRepo.CreateItem(&models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Product:   *product,
			Quantity:  quantity,
		})
	default:
		return err
	}
}

// IncreaseQuantity increments a line item's quantity by exactly one.
func (s *CartService) IncreaseQuantity(itemID uint) error {
	item, err := s.orderRepo.GetItem(itemID)
	if err != nil {
		return err
	}
	item.Quantity++
	return s.orderRepo.SaveItem(item)
}

// DecreaseQuantity decrements a line item's quantity by one. At quantity 1
// the item is deleted instead: quantities are never persisted as zero.
func (s *CartService) DecreaseQuantity(itemID uint) error {
	item, err := s.orderRepo.GetItem(itemID)
	if err != nil {
		return err
	}
	if item.Quantity <= 1 {
		return s.orderRepo.DeleteItem(item.ID)
	}
	item.Quantity--
	return s.orderRepo.SaveItem(item)
}

// RemoveItem deletes a line item regardless of quantity.
func (s *CartService) RemoveItem(itemID uint) error {
	return s.orderRepo.DeleteItem(itemID)
}

// ownedAddress fetches an address and verifies it belongs to the user and is
// of the expected type. Mismatches report not-found so nothing is leaked
// about other users' address books.
func (s *CartService) ownedAddress(id uint, userID, addressType string) (*models.Address, error) {
	address, err := s.addressRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID || address.AddressType != addressType {
		return nil, fmt.Errorf("address with ID %d: %w", id, repositories.ErrNotFound)
	}
	return address, nil
}

// Checkout finalizes the session's cart: links the billing and shipping
// addresses, marks the order as placed, drops the order from the session and
// publishes an order.placed event. The next cart interaction in the session
// starts a fresh order.
func (s *CartService) Checkout(sess OrderSession, userID string, billingID, shippingID uint) (*models.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("checkout requires an authenticated user")
	}

	order, err := s.ResolveOrder(sess, userID)
	if err != nil {
		return nil, err
	}
	order, err = s.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, err
	}
	if len(order.Items) == 0 {
		return nil, ErrEmptyCart
	}

	billing, err := s.ownedAddress(billingID, userID, models.AddressTypeBilling)
	if err != nil {
		return nil, err
	}
	shipping, err := s.ownedAddress(shippingID, userID, models.AddressTypeShipping)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.Ordered = true
	order.OrderedDate = &now
	order.BillingAddressID = &billing.ID
	order.ShippingAddressID = &shipping.ID
	if err := s.orderRepo.Save(order); err != nil {
		return nil, err
	}
	sess.ClearOrderID()

	if s.publisher != nil {
		event := rabbitmq.OrderPlaced{
			OrderID:     order.ID,
			Reference:   order.ReferenceNumber(),
			UserID:      userID,
			RawSubtotal: order.RawSubtotal(),
			RawTotal:    order.RawTotal(),
		}
		if err := s.publisher.PublishOrderPlaced(event); err != nil {
			log.Printf("Warning: failed to publish order placed event for %s: %v", order.ReferenceNumber(), err)
		}
	}

	return order, nil
}
