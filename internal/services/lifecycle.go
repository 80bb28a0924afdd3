package services

import (
	"errors"
	"log"

	"tokoroti/internal/models"
	"tokoroti/internal/repositories"
)

// applyOrderEvent loads the order, consults the transition table and
// commits the move with a compare-and-swap. A concurrent modification is
// retried once against the fresh state; a second conflict surfaces
// models.ErrConcurrentModification. The returned order reflects the
// committed state.
func applyOrderEvent(repo repositories.OrderRepository, orderID string, ev models.Event, updates map[string]interface{}) (*models.Order, error) {
	for attempt := 0; attempt < 2; attempt++ {
		order, err := repo.GetByID(orderID)
		if err != nil {
			return nil, err
		}
		next, err := models.NextState(order.DeliveryOption, order.State(), ev)
		if err != nil {
			return nil, err
		}
		if err := repo.Transition(order.ID, order.State(), next, updates); err != nil {
			if errors.Is(err, models.ErrConcurrentModification) && attempt == 0 {
				continue
			}
			return nil, err
		}
		order.Status = next.Status
		order.DeliveryStatus = next.Delivery
		return order, nil
	}
	return nil, models.ErrConcurrentModification
}

// releaseVoucherUsage gives back one voucher usage for an order that
// died before payment. Callers invoke it only after a successful
// transition into a terminal failure state, so it runs at most once per
// order. Failures are logged, not surfaced: the order transition is
// already committed.
func releaseVoucherUsage(repo repositories.VoucherRepository, order *models.Order) {
	if repo == nil || order.VoucherID == nil {
		return
	}
	if err := repo.Release(*order.VoucherID); err != nil {
		log.Printf("Warning: Failed to release voucher %s for order %s: %v", *order.VoucherID, order.ID, err)
	}
}
