package handlers

import (
	"errors"
	"log"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const orderIDKey = "order_id"

// cartPath is where cart mutations redirect to: the summary view.
const cartPath = "/api/v1/cart"

// fiberOrderSession adapts a Fiber session to the cart's OrderSession
// contract.
type fiberOrderSession struct {
	sess *session.Session
}

func (s *fiberOrderSession) OrderID() (uint, bool) {
	switch id := s.sess.Get(orderIDKey).(type) {
	case uint:
		return id, true
	case uint64:
		return uint(id), true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	case float64:
		return uint(id), true
	default:
		return 0, false
	}
}

func (s *fiberOrderSession) SetOrderID(id uint) {
	s.sess.Set(orderIDKey, id)
}

func (s *fiberOrderSession) ClearOrderID() {
	s.sess.Delete(orderIDKey)
}

// CartHandler handles HTTP requests for the session cart and checkout.
type CartHandler struct {
	service  *services.CartService
	store    *session.Store
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, store *session.Store) *CartHandler {
	return &CartHandler{
		service:  service,
		store:    store,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes. They work for anonymous sessions,
// so mount them behind AuthOptional rather than AuthRequired.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/add/:slug", h.HandleAddToCart)
	cartRoutes.Post("/items/:id/increase", h.HandleIncreaseQuantity)
	cartRoutes.Post("/items/:id/decrease", h.HandleDecreaseQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
}

// RegisterCheckoutRoutes registers the checkout route; mount it behind
// AuthRequired.
func (h *CartHandler) RegisterCheckoutRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
}

// session loads the request's session and wraps it for the cart service.
func (h *CartHandler) session(c *fiber.Ctx) (*session.Session, *fiberOrderSession, error) {
	sess, err := h.store.Get(c)
	if err != nil {
		return nil, nil, err
	}
	return sess, &fiberOrderSession{sess: sess}, nil
}

// cartSummary is the JSON shape of the cart view: the order with its items,
// plus the derived monetary figures.
func cartSummary(order *models.Order) fiber.Map {
	items := make([]fiber.Map, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, fiber.Map{
			"id":            item.ID,
			"product":       item.Product,
			"quantity":      item.Quantity,
			"total_price":   item.TotalPrice(),
			"display_price": item.Product.DisplayPrice(),
		})
	}
	return fiber.Map{
		"reference": order.ReferenceNumber(),
		"items":     items,
		"subtotal":  order.Subtotal(),
		"tax":       models.FormatCents(order.RawTax()),
		"total":     order.Total(),
	}
}

// HandleGetCart renders the session's cart summary.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	sess, orderSess, err := h.session(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load session",
			"error":   err.Error(),
		})
	}

	order, err := h.service.GetCart(orderSess, middleware.UserID(c))
	if err != nil {
		log.Printf("Error resolving cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}

	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save session",
			"error":   err.Error(),
		})
	}
	return c.JSON(cartSummary(order))
}

// AddToCartRequest is the body for adding a product to the cart.
type AddToCartRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// HandleAddToCart adds the submitted quantity of a product to the cart,
// merging with an existing line item for the same product.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		if body, ok := validationMessages(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(body)
		}
		return err
	}

	sess, orderSess, err := h.session(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load session",
			"error":   err.Error(),
		})
	}

	productSlug := c.Params("slug")
	if err := h.service.AddToCart(orderSess, middleware.UserID(c), productSlug, req.Quantity); err != nil {
		log.Printf("Error adding product %s to cart: %v", productSlug, err)
		return failedLookup(c, "Product", err)
	}

	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save session",
			"error":   err.Error(),
		})
	}
	return c.Redirect(cartPath, fiber.StatusSeeOther)
}

// itemID parses the line-item identifier from the URL path.
func itemID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// mutateItem runs one line-item mutation and redirects to the cart summary.
func (h *CartHandler) mutateItem(c *fiber.Ctx, action string, mutate func(id uint) error) error {
	id, err := itemID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item id",
			"error":   err.Error(),
		})
	}
	if err := mutate(id); err != nil {
		log.Printf("Error on %s for item %d: %v", action, id, err)
		return failedLookup(c, "Cart item", err)
	}
	return c.Redirect(cartPath, fiber.StatusSeeOther)
}

// HandleIncreaseQuantity increments a line item's quantity by one.
func (h *CartHandler) HandleIncreaseQuantity(c *fiber.Ctx) error {
	return h.mutateItem(c, "increase", h.service.IncreaseQuantity)
}

// HandleDecreaseQuantity decrements a line item's quantity, deleting the item
// when it would drop below one.
func (h *CartHandler) HandleDecreaseQuantity(c *fiber.Ctx) error {
	return h.mutateItem(c, "decrease", h.service.DecreaseQuantity)
}

// HandleRemoveItem deletes a line item outright.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	return h.mutateItem(c, "remove", h.service.RemoveItem)
}

// CheckoutRequest is the body for finalizing the cart.
type CheckoutRequest struct {
	BillingAddressID  uint `json:"billing_address_id" validate:"required"`
	ShippingAddressID uint `json:"shipping_address_id" validate:"required"`
}

// HandleCheckout finalizes the session's cart into a placed order.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		if body, ok := validationMessages(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(body)
		}
		return err
	}

	sess, orderSess, err := h.session(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load session",
			"error":   err.Error(),
		})
	}

	order, err := h.service.Checkout(orderSess, middleware.UserID(c), req.BillingAddressID, req.ShippingAddressID)
	if err != nil {
		log.Printf("Error during checkout: %v", err)
		if errors.Is(err, services.ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cannot check out an empty cart",
			})
		}
		return failedLookup(c, "Address", err)
	}

	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save session",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message":   "Order placed",
		"reference": order.ReferenceNumber(),
		"order":     order,
	})
}
