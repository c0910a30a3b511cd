package handlers

import (
	"log"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles HTTP requests for an order's payment ledger.
type PaymentHandler struct {
	payments *services.PaymentService
	orders   *services.OrderService
	validate *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(payments *services.PaymentService, orders *services.OrderService) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		orders:   orders,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the payment routes; mount behind AuthRequired.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	paymentRoutes := router.Group("/orders/:id/payments")
	paymentRoutes.Get("/", h.HandleListPayments)
	paymentRoutes.Post("/", h.HandleRecordPayment)
}

// callerOrder resolves the order in the path, scoped to the caller.
func (h *PaymentHandler) callerOrder(c *fiber.Ctx) (*models.Order, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order id",
			"error":   err.Error(),
		})
	}
	order, err := h.orders.GetUserOrder(middleware.UserID(c), uint(id))
	if err != nil {
		log.Printf("Error resolving order %d: %v", id, err)
		return nil, failedLookup(c, "Order", err)
	}
	return order, nil
}

// paymentView is the JSON shape of one ledger row.
func paymentView(p *models.Payment) fiber.Map {
	return fiber.Map{
		"reference":      p.ReferenceNumber(),
		"payment_method": p.PaymentMethod,
		"timestamp":      p.Timestamp,
		"successful":     p.Successful,
		"amount":         p.Amount,
		"raw_response":   p.RawResponse,
	}
}

// RecordPaymentRequest is the body for appending a payment attempt. The raw
// response is whatever the payment provider returned; it is stored verbatim,
// not parsed.
type RecordPaymentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=Paypal"`
	Successful    bool   `json:"successful"`
	Amount        int64  `json:"amount" validate:"gte=0"`
	RawResponse   string `json:"raw_response"`
}

// HandleRecordPayment appends an attempted transaction to the order's ledger.
// Failed attempts are recorded the same way, with successful=false.
func (h *PaymentHandler) HandleRecordPayment(c *fiber.Ctx) error {
	order, errResp := h.callerOrder(c)
	if order == nil {
		return errResp
	}

	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing payment request body: %v", err)
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

	payment, err := h.payments.RecordPayment(order.ID, req.PaymentMethod, req.Amount, req.Successful, req.RawResponse)
	if err != nil {
		log.Printf("Error recording payment for order %d: %v", order.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not record payment",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(paymentView(payment))
}

// HandleListPayments lists the order's payment attempts.
func (h *PaymentHandler) HandleListPayments(c *fiber.Ctx) error {
	order, errResp := h.callerOrder(c)
	if order == nil {
		return errResp
	}

	payments, err := h.payments.ListPayments(order.ID)
	if err != nil {
		log.Printf("Error listing payments for order %d: %v", order.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve payments",
			"error":   err.Error(),
		})
	}

	views := make([]fiber.Map, 0, len(payments))
	for i := range payments {
		views = append(views, paymentView(&payments[i]))
	}
	return c.JSON(views)
}
