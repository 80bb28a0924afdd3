package handlers

import (
	"errors"

	"tokoroti/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errorResponse maps a sentinel error to an HTTP status and a stable
// reason code. Business-rule rejections keep their code stable so API
// consumers can branch on it; anything unmapped is a 500.
var errorResponses = []struct {
	err    error
	status int
	code   string
}{
	{models.ErrProductUnavailable, fiber.StatusBadRequest, "PRODUCT_UNAVAILABLE"},
	{models.ErrInsufficientStock, fiber.StatusBadRequest, "INSUFFICIENT_STOCK"},
	{models.ErrInvalidAddress, fiber.StatusBadRequest, "INVALID_ADDRESS"},
	{models.ErrVoucherNotFound, fiber.StatusBadRequest, "VOUCHER_NOT_FOUND"},
	{models.ErrVoucherExpired, fiber.StatusBadRequest, "VOUCHER_EXPIRED"},
	{models.ErrVoucherNotYetValid, fiber.StatusBadRequest, "VOUCHER_NOT_YET_VALID"},
	{models.ErrVoucherBelowMinPurchase, fiber.StatusBadRequest, "VOUCHER_BELOW_MIN_PURCHASE"},
	{models.ErrVoucherUsageLimitReached, fiber.StatusConflict, "VOUCHER_USAGE_LIMIT_REACHED"},
	{models.ErrOrderNotFound, fiber.StatusNotFound, "ORDER_NOT_FOUND"},
	{models.ErrNotOrderOwner, fiber.StatusForbidden, "NOT_ORDER_OWNER"},
	{models.ErrOrderNotPending, fiber.StatusConflict, "ORDER_NOT_PENDING"},
	{models.ErrIllegalTransition, fiber.StatusConflict, "ILLEGAL_TRANSITION"},
	{models.ErrConcurrentModification, fiber.StatusConflict, "CONCURRENT_MODIFICATION"},
	{models.ErrInvalidDeliveryStatus, fiber.StatusBadRequest, "INVALID_DELIVERY_STATUS"},
	{models.ErrPickupDeadlinePassed, fiber.StatusConflict, "PICKUP_DEADLINE_PASSED"},
	{models.ErrGatewayUnavailable, fiber.StatusBadGateway, "GATEWAY_UNAVAILABLE"},
	{models.ErrUnknownGatewayStatus, fiber.StatusBadRequest, "UNKNOWN_GATEWAY_STATUS"},
	{models.ErrOrderNotCompleted, fiber.StatusConflict, "ORDER_NOT_COMPLETED"},
	{models.ErrItemNotInOrder, fiber.StatusBadRequest, "ITEM_NOT_IN_ORDER"},
	{models.ErrAlreadyReviewed, fiber.StatusConflict, "ALREADY_REVIEWED"},
}

// respondError writes the JSON error body for a service error.
func respondError(c *fiber.Ctx, err error) error {
	for _, mapping := range errorResponses {
		if errors.Is(err, mapping.err) {
			return c.Status(mapping.status).JSON(fiber.Map{
				"code":    mapping.code,
				"message": mapping.err.Error(),
			})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    "INTERNAL",
		"message": "Internal server error",
		"error":   err.Error(),
	})
}
