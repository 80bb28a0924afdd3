package handlers

import (
	"fmt"
	"log"

	"tokoroti/internal/models"
	"tokoroti/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StaffHandler exposes the staff endpoints: order management (pack,
// finalize, tracking number) and voucher CRUD.
type StaffHandler struct {
	fulfillmentService *services.FulfillmentService
	orderService       *services.OrderService
	voucherService     *services.VoucherService
	validate           *validator.Validate
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(
	fulfillmentService *services.FulfillmentService,
	orderService *services.OrderService,
	voucherService *services.VoucherService,
) *StaffHandler {
	return &StaffHandler{
		fulfillmentService: fulfillmentService,
		orderService:       orderService,
		voucherService:     voucherService,
		validate:           validator.New(),
	}
}

// RegisterRoutes registers the staff routes with the Fiber app.
func (h *StaffHandler) RegisterRoutes(router fiber.Router) {
	staffRoutes := router.Group("/staff")
	staffRoutes.Get("/orders", h.HandleGetOrders)
	staffRoutes.Patch("/orders/:id/pack", h.HandlePack)
	staffRoutes.Patch("/orders/:id/finalize", h.HandleFinalize)
	staffRoutes.Patch("/orders/:id/shipping-number", h.HandleSetShippingNumber)

	voucherRoutes := staffRoutes.Group("/vouchers")
	voucherRoutes.Get("/", h.HandleGetVouchers)
	voucherRoutes.Post("/", h.HandleCreateVoucher)
	voucherRoutes.Put("/:id", h.HandleUpdateVoucher)
	voucherRoutes.Delete("/:id", h.HandleDeleteVoucher)
}

// HandleGetOrders lists all orders for the staff dashboard.
func (h *StaffHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		log.Printf("Error getting orders for staff dashboard: %v", err)
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandlePack marks a paid order as packed.
func (h *StaffHandler) HandlePack(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.fulfillmentService.Pack(orderID)
	if err != nil {
		log.Printf("Error packing order %s: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleFinalize completes a received order.
func (h *StaffHandler) HandleFinalize(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.fulfillmentService.Finalize(orderID)
	if err != nil {
		log.Printf("Error finalizing order %s: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(order)
}

type shippingNumberRequest struct {
	ShippingNumber string `json:"shipping_number" validate:"required,min=3,max=100"`
}

// HandleSetShippingNumber attaches a tracking number to a packed
// delivery order.
func (h *StaffHandler) HandleSetShippingNumber(c *fiber.Ctx) error {
	var req shippingNumberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	orderID := c.Params("id")
	order, err := h.fulfillmentService.SetShippingNumber(orderID, req.ShippingNumber)
	if err != nil {
		log.Printf("Error setting shipping number for order %s: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleGetVouchers lists all vouchers.
func (h *StaffHandler) HandleGetVouchers(c *fiber.Ctx) error {
	vouchers, err := h.voucherService.GetAllVouchers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vouchers)
}

// HandleCreateVoucher creates a new voucher.
func (h *StaffHandler) HandleCreateVoucher(c *fiber.Ctx) error {
	var voucher models.Voucher
	if err := c.BodyParser(&voucher); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(voucher); err != nil {
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

	if err := h.voucherService.CreateVoucher(&voucher); err != nil {
		log.Printf("Error creating voucher: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(voucher)
}

// HandleUpdateVoucher updates an existing voucher.
func (h *StaffHandler) HandleUpdateVoucher(c *fiber.Ctx) error {
	var voucher models.Voucher
	if err := c.BodyParser(&voucher); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	voucher.ID = c.Params("id")
	if err := h.voucherService.UpdateVoucher(&voucher); err != nil {
		log.Printf("Error updating voucher %s: %v", voucher.ID, err)
		return respondError(c, err)
	}
	return c.JSON(voucher)
}

// HandleDeleteVoucher deletes a voucher.
func (h *StaffHandler) HandleDeleteVoucher(c *fiber.Ctx) error {
	voucherID := c.Params("id")
	if err := h.voucherService.DeleteVoucher(voucherID); err != nil {
		log.Printf("Error deleting voucher %s: %v", voucherID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Voucher %s deleted successfully", voucherID),
	})
}
