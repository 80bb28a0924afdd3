package services

import (
	"log"
	"time"

	"tokoroti/internal/models"
	"tokoroti/internal/repositories"
)

// FulfillmentService drives post-payment lifecycle moves: packing by
// staff, the courier leg, customer receipt confirmation, staff finalize
// and the idle-order expiry sweep. Every move goes through the single
// transition table and the compare-and-swap repository update.
type FulfillmentService struct {
	orderRepo      repositories.OrderRepository
	voucherRepo    repositories.VoucherRepository
	publisher      EventPublisher
	releaseVoucher bool
}

// NewFulfillmentService creates a new FulfillmentService.
func NewFulfillmentService(
	orderRepo repositories.OrderRepository,
	voucherRepo repositories.VoucherRepository,
	publisher EventPublisher,
	releaseVoucherOnFailure bool,
) *FulfillmentService {
	return &FulfillmentService{
		orderRepo:      orderRepo,
		voucherRepo:    voucherRepo,
		publisher:      publisher,
		releaseVoucher: releaseVoucherOnFailure,
	}
}

func (s *FulfillmentService) publishStatusChanged(order *models.Order) {
	publishEvent(s.publisher, EventOrderStatusChanged, map[string]interface{}{
		"order_id":        order.ID,
		"status":          order.Status,
		"delivery_status": order.DeliveryStatus,
	})
}

// Pack marks a paid order as packed and ready for handoff.
func (s *FulfillmentService) Pack(orderID string) (*models.Order, error) {
	order, err := applyOrderEvent(s.orderRepo, orderID, models.EventPack, nil)
	if err != nil {
		return nil, err
	}
	s.publishStatusChanged(order)
	return order, nil
}

// SetShippingNumber attaches a tracking number to a packed delivery
// order. The compare-and-swap against the packed state keeps it from
// racing with a courier pickup.
func (s *FulfillmentService) SetShippingNumber(orderID, shippingNumber string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.DeliveryOption != models.OptionDelivery || order.Status != models.StatusPacked {
		return nil, models.ErrIllegalTransition
	}
	if err := s.orderRepo.Transition(order.ID, order.State(), order.State(), map[string]interface{}{
		"shipping_number": shippingNumber,
	}); err != nil {
		return nil, err
	}
	order.ShippingNumber = &shippingNumber
	return order, nil
}

// UpdateDeliveryStatus applies a courier action expressed in the courier
// vocabulary (menunggu, diambil, sedang dikirim, selesai). The order
// status side effect is derived from the transition table; a courier can
// never set an order status directly. Pickup orders reject all courier
// actions.
func (s *FulfillmentService) UpdateDeliveryStatus(orderID, courierStatus string) (*models.Order, error) {
	ev, err := models.CourierEvent(courierStatus)
	if err != nil {
		return nil, err
	}

	if ev == "" {
		// "menunggu" is the initial delivery state. Accept it as a no-op
		// while the parcel is still waiting, reject it as a transition
		// otherwise.
		order, err := s.orderRepo.GetByID(orderID)
		if err != nil {
			return nil, err
		}
		if order.DeliveryOption != models.OptionDelivery ||
			order.Status.Terminal() ||
			order.DeliveryStatus != models.DeliveryWaiting {
			return nil, models.ErrIllegalTransition
		}
		return order, nil
	}

	order, err := applyOrderEvent(s.orderRepo, orderID, ev, nil)
	if err != nil {
		return nil, err
	}
	s.publishStatusChanged(order)
	return order, nil
}

// MarkReceived records the customer's receipt confirmation. It collapses
// straight to completed, so the review gate opens at the moment of
// confirmation. Pickup orders must confirm before their deadline.
func (s *FulfillmentService) MarkReceived(orderID, clientID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.ClientID != clientID {
		return nil, models.ErrNotOrderOwner
	}
	if order.DeliveryOption == models.OptionPickup &&
		order.PickupDeadline != nil && time.Now().After(*order.PickupDeadline) {
		return nil, models.ErrPickupDeadlinePassed
	}

	order, err = applyOrderEvent(s.orderRepo, orderID, models.EventCustomerReceive, map[string]interface{}{
		"received_at": time.Now(),
	})
	if err != nil {
		return nil, err
	}
	s.publishStatusChanged(order)
	return order, nil
}

// Finalize completes an order the courier already closed (selesai) but
// the customer never confirmed.
func (s *FulfillmentService) Finalize(orderID string) (*models.Order, error) {
	order, err := applyOrderEvent(s.orderRepo, orderID, models.EventFinalize, nil)
	if err != nil {
		return nil, err
	}
	s.publishStatusChanged(order)
	return order, nil
}

// ExpireStale transitions orders left pending longer than window to
// expired, using the same compare-and-swap discipline as interactive
// transitions so it can never clobber a concurrent payment settlement.
// Returns the number of orders expired.
func (s *FulfillmentService) ExpireStale(window time.Duration) int {
	cutoff := time.Now().Add(-window)
	stale, err := s.orderRepo.FindPendingBefore(cutoff)
	if err != nil {
		log.Printf("Expiry sweep: failed to list stale orders: %v", err)
		return 0
	}

	expired := 0
	for _, candidate := range stale {
		order, err := applyOrderEvent(s.orderRepo, candidate.ID, models.EventExpireSweep, nil)
		if err != nil {
			// A settlement or cancellation won the race; skip quietly.
			continue
		}
		if s.releaseVoucher {
			releaseVoucherUsage(s.voucherRepo, order)
		}
		s.publishStatusChanged(order)
		expired++
	}
	return expired
}

// StartExpirySweeper runs ExpireStale on a fixed interval until stop is
// closed. Intended to run as a goroutine from main.
func (s *FulfillmentService) StartExpirySweeper(interval, window time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.ExpireStale(window); n > 0 {
				log.Printf("Expiry sweep: expired %d pending orders", n)
			}
		case <-stop:
			return
		}
	}
}
