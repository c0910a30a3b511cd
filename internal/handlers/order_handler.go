package handlers

import (
	"log"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for a customer's order history.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order history routes; mount behind
// AuthRequired.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
}

// orderView is the JSON shape of a finalized order.
func orderView(order *models.Order) fiber.Map {
	return fiber.Map{
		"reference": order.ReferenceNumber(),
		"order":     order,
		"subtotal":  order.Subtotal(),
		"tax":       models.FormatCents(order.RawTax()),
		"total":     order.Total(),
	}
}

// HandleListOrders lists the caller's finalized orders.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	orders, err := h.service.ListUserOrders(userID)
	if err != nil {
		log.Printf("Error listing orders for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}

	views := make([]fiber.Map, 0, len(orders))
	for i := range orders {
		views = append(views, orderView(&orders[i]))
	}
	return c.JSON(views)
}

// HandleGetOrder retrieves one of the caller's finalized orders.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order id",
			"error":   err.Error(),
		})
	}

	userID := middleware.UserID(c)
	order, err := h.service.GetUserOrder(userID, uint(id))
	if err != nil {
		log.Printf("Error getting order %d for user %s: %v", id, userID, err)
		return failedLookup(c, "Order", err)
	}
	return c.JSON(orderView(order))
}
