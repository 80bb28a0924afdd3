package services

import (
	"fmt"

	"tokoroti/internal/models"
	"tokoroti/internal/repositories"
)

// PaymentGateway abstracts the external gateway's session issuance so it
// can be mocked in tests.
type PaymentGateway interface {
	IssueSession(orderID string, grossAmount int64) (string, error)
}

// Gateway transaction statuses accepted on the notification callback.
const (
	GatewaySettlement = "settlement"
	GatewayCapture    = "capture"
	GatewayPending    = "pending"
	GatewayDeny       = "deny"
	GatewayCancel     = "cancel"
	GatewayExpire     = "expire"
)

// PaymentService owns the gateway adapter and the reconciliation of
// asynchronous payment notifications. Notifications are at-least-once
// and unordered; reconciliation is idempotent because a transition is
// only applied when it is legal from the order's current state.
type PaymentService struct {
	orderRepo      repositories.OrderRepository
	voucherRepo    repositories.VoucherRepository
	gateway        PaymentGateway
	publisher      EventPublisher
	releaseVoucher bool // give back voucher usage when payment dies
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	orderRepo repositories.OrderRepository,
	voucherRepo repositories.VoucherRepository,
	gateway PaymentGateway,
	publisher EventPublisher,
	releaseVoucherOnFailure bool,
) *PaymentService {
	return &PaymentService{
		orderRepo:      orderRepo,
		voucherRepo:    voucherRepo,
		gateway:        gateway,
		publisher:      publisher,
		releaseVoucher: releaseVoucherOnFailure,
	}
}

// RequestSession asks the gateway for a payment session token covering
// the order's frozen total and records it on the order.
func (s *PaymentService) RequestSession(order *models.Order) (string, error) {
	token, err := s.gateway.IssueSession(order.ID, order.Total)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrGatewayUnavailable, err)
	}
	if err := s.orderRepo.SetPaymentToken(order.ID, token); err != nil {
		return "", err
	}
	return token, nil
}

// RetrySession issues a fresh session for an order whose previous one
// went stale. It is only permitted while the order is pending, and the
// check happens before any gateway call so a non-pending order never
// triggers duplicate session issuance. The new token supersedes the old
// one on the gateway side.
func (s *PaymentService) RetrySession(orderID, clientID string) (string, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return "", err
	}
	if order.ClientID != clientID {
		return "", models.ErrNotOrderOwner
	}
	if order.Status != models.StatusPending {
		return "", models.ErrOrderNotPending
	}
	return s.RequestSession(order)
}

// paymentEvent maps a gateway transaction status to a lifecycle event.
// The bool is false for statuses that never cause a transition.
func paymentEvent(gatewayStatus string) (models.Event, bool, error) {
	switch gatewayStatus {
	case GatewaySettlement, GatewayCapture:
		return models.EventPaymentSettled, true, nil
	case GatewayPending:
		return "", false, nil
	case GatewayDeny:
		return models.EventPaymentDenied, true, nil
	case GatewayCancel:
		return models.EventPaymentCanceled, true, nil
	case GatewayExpire:
		return models.EventPaymentExpired, true, nil
	}
	return "", false, models.ErrUnknownGatewayStatus
}

// HandleNotification reconciles one asynchronous payment notification.
// It returns (true, nil) when a transition was applied and (false, nil)
// when the notification was a replay, arrived late, or carried a
// non-transitioning status; both are acknowledged to the gateway.
// models.ErrOrderNotFound is returned for unknown orders so the caller
// can log and still acknowledge, keeping the gateway from retry-storming.
func (s *PaymentService) HandleNotification(orderID, gatewayStatus, reference string) (bool, error) {
	ev, transitions, err := paymentEvent(gatewayStatus)
	if err != nil {
		return false, err
	}
	if !transitions {
		return false, nil
	}

	order, err := applyOrderEvent(s.orderRepo, orderID, ev, nil)
	if err != nil {
		switch err {
		case models.ErrIllegalTransition:
			// Replay or stale notification: the order already moved on.
			// Idempotent no-op by construction.
			return false, nil
		default:
			return false, err
		}
	}

	switch order.Status {
	case models.StatusPaid:
		publishEvent(s.publisher, EventOrderPaid, map[string]interface{}{
			"order_id":  order.ID,
			"client_id": order.ClientID,
			"total":     order.Total,
			"reference": reference,
		})
	default:
		// Payment died before settlement; optionally give the voucher
		// usage back. The successful CAS above guarantees this runs at
		// most once per order.
		if s.releaseVoucher {
			releaseVoucherUsage(s.voucherRepo, order)
		}
		publishEvent(s.publisher, EventOrderStatusChanged, map[string]interface{}{
			"order_id":  order.ID,
			"status":    order.Status,
			"reference": reference,
		})
	}
	return true, nil
}
