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

// OrderHandler handles the customer-facing order endpoints: checkout,
// order views, payment retry, receipt confirmation and reviews.
type OrderHandler struct {
	orderService       *services.OrderService
	paymentService     *services.PaymentService
	fulfillmentService *services.FulfillmentService
	ratingService      *services.RatingService
	validate           *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(
	orderService *services.OrderService,
	paymentService *services.PaymentService,
	fulfillmentService *services.FulfillmentService,
	ratingService *services.RatingService,
) *OrderHandler {
	return &OrderHandler{
		orderService:       orderService,
		paymentService:     paymentService,
		fulfillmentService: fulfillmentService,
		ratingService:      ratingService,
		validate:           validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetMyOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCheckout)
	orderRoutes.Post("/:id/retry-payment", h.HandleRetryPayment)
	orderRoutes.Post("/:id/receive", h.HandleMarkReceived)
	orderRoutes.Post("/:id/ratings", h.HandleSubmitRating)
	orderRoutes.Get("/:id/ratings", h.HandleGetRatings)
}

// HandleGetMyOrders retrieves the authenticated client's orders.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	clientID := middleware.UserID(c)
	orders, err := h.orderService.GetOrdersByClient(clientID)
	if err != nil {
		log.Printf("Error getting orders for client %s: %v", clientID, err)
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order, owner only. This is the
// receipt view: the totals it exposes are the frozen checkout snapshots.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return respondError(c, err)
	}
	if order.ClientID != middleware.UserID(c) {
		return respondError(c, models.ErrNotOrderOwner)
	}
	return c.JSON(order)
}

// HandleCheckout creates a new order and requests a payment session for
// it. A gateway failure after placement is not fatal: the order stays
// pending and the customer can retry payment.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var input services.PlaceOrderInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(input); err != nil {
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

	clientID := middleware.UserID(c)
	order, err := h.orderService.PlaceOrder(clientID, input)
	if err != nil {
		log.Printf("Error placing order for client %s: %v", clientID, err)
		return respondError(c, err)
	}

	token, err := h.paymentService.RequestSession(order)
	if err != nil {
		log.Printf("Warning: order %s placed but session request failed: %v", order.ID, err)
	} else {
		order.PaymentToken = token
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleRetryPayment issues a fresh payment session for a pending order.
func (h *OrderHandler) HandleRetryPayment(c *fiber.Ctx) error {
	orderID := c.Params("id")
	token, err := h.paymentService.RetrySession(orderID, middleware.UserID(c))
	if err != nil {
		log.Printf("Error retrying payment for order %s: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"order_id":      orderID,
		"payment_token": token,
	})
}

// HandleMarkReceived records the customer's receipt confirmation.
func (h *OrderHandler) HandleMarkReceived(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.fulfillmentService.MarkReceived(orderID, middleware.UserID(c))
	if err != nil {
		log.Printf("Error marking order %s received: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(order)
}

type ratingRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Score     int    `json:"score" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"omitempty,max=500"`
}

// HandleSubmitRating creates a review for one product in a completed
// order.
func (h *OrderHandler) HandleSubmitRating(c *fiber.Ctx) error {
	var req ratingRequest
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
	rating, err := h.ratingService.Submit(orderID, req.ProductID, middleware.UserID(c), req.Score, req.Comment)
	if err != nil {
		log.Printf("Error submitting rating for order %s: %v", orderID, err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

// HandleGetRatings lists the reviews submitted for an order.
func (h *OrderHandler) HandleGetRatings(c *fiber.Ctx) error {
	ratings, err := h.ratingService.GetByOrder(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ratings)
}
