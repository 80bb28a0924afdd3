package handlers

import (
	"fmt"
	"log"

	"tokoroti/internal/middleware"
	"tokoroti/internal/models"
	"tokoroti/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles the client address book.
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

// RegisterRoutes registers the address routes with the Fiber app.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addressRoutes := router.Group("/addresses")
	addressRoutes.Get("/", h.HandleGetAddresses)
	addressRoutes.Post("/", h.HandleCreateAddress)
	addressRoutes.Delete("/:id", h.HandleDeleteAddress)
}

// HandleGetAddresses lists the client's addresses.
func (h *AddressHandler) HandleGetAddresses(c *fiber.Ctx) error {
	addresses, err := h.service.GetAddresses(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting addresses: %v", err)
		return respondError(c, err)
	}
	return c.JSON(addresses)
}

// HandleCreateAddress adds an address to the client's book.
func (h *AddressHandler) HandleCreateAddress(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(address); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.CreateAddress(middleware.UserID(c), &address); err != nil {
		log.Printf("Error creating address: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

// HandleDeleteAddress removes an address, owner only.
func (h *AddressHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	addressID := c.Params("id")
	if err := h.service.DeleteAddress(middleware.UserID(c), addressID); err != nil {
		log.Printf("Error deleting address %s: %v", addressID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Address %s deleted successfully", addressID),
	})
}
