package models

import "errors"

// Sentinel errors for business-rule rejections. Handlers map these to
// stable reason codes, so services must return them unwrapped or wrapped
// with %w.
var (
	// Catalog / checkout
	ErrProductUnavailable = errors.New("product unavailable")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidAddress     = errors.New("invalid address")

	// Voucher evaluation
	ErrVoucherNotFound          = errors.New("voucher not found")
	ErrVoucherExpired           = errors.New("voucher expired")
	ErrVoucherNotYetValid       = errors.New("voucher not yet valid")
	ErrVoucherBelowMinPurchase  = errors.New("purchase amount below voucher minimum")
	ErrVoucherUsageLimitReached = errors.New("voucher usage limit reached")

	// Order lifecycle
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderNotPending        = errors.New("order is not pending")
	ErrIllegalTransition      = errors.New("illegal status transition")
	ErrConcurrentModification = errors.New("order was modified concurrently")
	ErrInvalidDeliveryStatus  = errors.New("invalid delivery status value")
	ErrPickupDeadlinePassed   = errors.New("pickup deadline has passed")
	ErrNotOrderOwner          = errors.New("order belongs to another client")

	// Payment gateway
	ErrGatewayUnavailable     = errors.New("payment gateway unavailable")
	ErrUnknownGatewayStatus   = errors.New("unknown gateway transaction status")

	// Reviews
	ErrOrderNotCompleted = errors.New("order is not completed")
	ErrItemNotInOrder    = errors.New("item is not part of the order")
	ErrAlreadyReviewed   = errors.New("item already reviewed for this order")
)
