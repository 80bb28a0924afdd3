package handlers

import (
	"log"

	"tokoroti/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CourierHandler exposes the courier dashboard endpoint. Couriers only
// speak the delivery-status vocabulary (menunggu, diambil, sedang
// dikirim, selesai); the order-status side effect is derived internally,
// so a courier can never set a financially sensitive state directly.
type CourierHandler struct {
	fulfillmentService *services.FulfillmentService
	orderService       *services.OrderService
}

// NewCourierHandler creates a new CourierHandler.
func NewCourierHandler(fulfillmentService *services.FulfillmentService, orderService *services.OrderService) *CourierHandler {
	return &CourierHandler{
		fulfillmentService: fulfillmentService,
		orderService:       orderService,
	}
}

// RegisterRoutes registers the courier routes with the Fiber app.
func (h *CourierHandler) RegisterRoutes(router fiber.Router) {
	courierRoutes := router.Group("/courier")
	courierRoutes.Get("/orders", h.HandleGetOrders)
	courierRoutes.Patch("/orders/:id/delivery-status", h.HandleUpdateDeliveryStatus)
}

// HandleGetOrders lists all orders for the courier dashboard.
func (h *CourierHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		log.Printf("Error getting orders for courier dashboard: %v", err)
		return respondError(c, err)
	}
	return c.JSON(orders)
}

type deliveryStatusRequest struct {
	DeliveryStatus string `json:"delivery_status"`
}

// HandleUpdateDeliveryStatus applies a courier action to an order.
func (h *CourierHandler) HandleUpdateDeliveryStatus(c *fiber.Ctx) error {
	var req deliveryStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.DeliveryStatus == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "delivery_status is required",
		})
	}

	orderID := c.Params("id")
	order, err := h.fulfillmentService.UpdateDeliveryStatus(orderID, req.DeliveryStatus)
	if err != nil {
		log.Printf("Error updating delivery status for order %s: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(order)
}
