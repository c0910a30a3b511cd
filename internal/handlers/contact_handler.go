package handlers

import (
	"log"

	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	service  *services.ContactService
	validate *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the contact route with the Fiber app.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/contact", h.HandleContact)
}

// ContactRequest is the contact form body.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// HandleContact validates a submission and dispatches the notification
// email. Submissions are not stored.
func (h *ContactHandler) HandleContact(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing contact request body: %v", err)
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

	if err := h.service.SendMessage(c.Context(), req.Name, req.Email, req.Message); err != nil {
		log.Printf("Error sending contact message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not send your message, please try again later",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Thank you for getting in touch. We have received your message.",
	})
}
