package repositories

import (
	"time"

	"tokoroti/internal/models"
)

// OrderRepository defines the interface for order data access.
//
// Place and Transition carry the two concurrency guarantees of the
// lifecycle core: Place commits stock decrement, voucher consumption and
// the order insert as one atomic unit; Transition is a compare-and-swap
// on the (status, delivery_status) pair and fails with
// models.ErrConcurrentModification when another actor moved the order
// first.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByClientID(clientID string) ([]models.Order, error)
	Place(order *models.Order) error
	Transition(id string, from, to models.OrderState, updates map[string]interface{}) error
	SetPaymentToken(id, token string) error
	FindPendingBefore(cutoff time.Time) ([]models.Order, error)
}
