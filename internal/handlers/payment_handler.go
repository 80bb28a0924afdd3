package handlers

import (
	"errors"
	"log"

	"tokoroti/internal/models"
	"tokoroti/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentHandler receives asynchronous payment notifications from the
// gateway. Delivery is at-least-once and unordered, so the handler
// acknowledges replays, stale notifications and unknown orders with 200
// to keep the gateway from retry-storming; only malformed bodies are
// rejected.
type PaymentHandler struct {
	paymentService *services.PaymentService
	validate       *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the gateway callback route. It is mounted
// outside the authenticated groups; the gateway does not hold a user
// token.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/payments/notify", h.HandleNotification)
}

type notificationRequest struct {
	OrderID           string `json:"order_id" validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	Reference         string `json:"reference"`
}

// HandleNotification processes one payment notification.
func (h *PaymentHandler) HandleNotification(c *fiber.Ctx) error {
	var req notificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid notification body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	applied, err := h.paymentService.HandleNotification(req.OrderID, req.TransactionStatus, req.Reference)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			// Unknown order: acknowledge so the gateway stops retrying.
			log.Printf("Payment notification for unknown order %s acknowledged", req.OrderID)
			return c.JSON(fiber.Map{"status": "acknowledged"})
		}
		log.Printf("Error handling payment notification for order %s: %v", req.OrderID, err)
		return respondError(c, err)
	}

	if applied {
		return c.JSON(fiber.Map{"status": "processed"})
	}
	return c.JSON(fiber.Map{"status": "acknowledged"})
}
