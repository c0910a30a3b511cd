package handlers

import (
	"fmt"
	"log"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for the address book.
type AddressHandler struct {
	service  *services.AddressService
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService) *AddressHandler {
	return &AddressHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the address routes; mount behind AuthRequired.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addressRoutes := router.Group("/addresses")
	addressRoutes.Get("/", h.HandleListAddresses)
	addressRoutes.Post("/", h.HandleCreateAddress)
	addressRoutes.Put("/:id", h.HandleUpdateAddress)
	addressRoutes.Delete("/:id", h.HandleDeleteAddress)
}

// HandleListAddresses lists the caller's saved addresses.
func (h *AddressHandler) HandleListAddresses(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	addresses, err := h.service.ListAddresses(userID)
	if err != nil {
		log.Printf("Error listing addresses for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve addresses",
			"error":   err.Error(),
		})
	}
	return c.JSON(addresses)
}

// parseAddress binds and validates an address body, stamping it with the
// caller's identity.
func (h *AddressHandler) parseAddress(c *fiber.Ctx) (*models.Address, error) {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	address.UserID = middleware.UserID(c)
	if err := h.validate.Struct(address); err != nil {
		if body, ok := validationMessages(err); ok {
			return nil, c.Status(fiber.StatusBadRequest).JSON(body)
		}
		return nil, err
	}
	return &address, nil
}

// HandleCreateAddress saves a new address for the caller.
func (h *AddressHandler) HandleCreateAddress(c *fiber.Ctx) error {
	address, errResp := h.parseAddress(c)
	if address == nil {
		return errResp
	}
	address.ID = 0

	if err := h.service.CreateAddress(address); err != nil {
		log.Printf("Error creating address: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create address",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

// HandleUpdateAddress updates one of the caller's addresses.
func (h *AddressHandler) HandleUpdateAddress(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid address id",
			"error":   err.Error(),
		})
	}

	address, errResp := h.parseAddress(c)
	if address == nil {
		return errResp
	}
	address.ID = uint(id)

	if err := h.service.UpdateAddress(middleware.UserID(c), address); err != nil {
		log.Printf("Error updating address %d: %v", id, err)
		return failedLookup(c, "Address", err)
	}
	return c.JSON(address)
}

// HandleDeleteAddress deletes one of the caller's addresses. Orders that
// referenced it keep their history.
func (h *AddressHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid address id",
			"error":   err.Error(),
		})
	}

	if err := h.service.DeleteAddress(middleware.UserID(c), uint(id)); err != nil {
		log.Printf("Error deleting address %d: %v", id, err)
		return failedLookup(c, "Address", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Address %d deleted", id),
	})
}
