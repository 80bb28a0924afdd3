package repositories

import (
	"fmt"
	"time"

	"tokoroti/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders with their lines.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Lines").Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its lines.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Lines").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByClientID retrieves all orders placed by one client.
func (r *GORMOrderRepository) GetByClientID(clientID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Lines").Where("client_id = ?", clientID).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for client %s: %w", clientID, err)
	}
	return orders, nil
}

// Place persists a new order atomically with its side effects: every
// line's stock decrement and, when a voucher is attached, the bounded
// used_count increment. All guards are single UPDATE statements checked
// via RowsAffected, so concurrent checkouts cannot oversell stock or
// over-redeem a voucher.
func (r *GORMOrderRepository) Place(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range order.Lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND active = ? AND stock >= ?", line.ProductID, true, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock for product %s: %w", line.ProductID, res.Error)
			}
			if res.RowsAffected == 0 {
				var count int64
				if err := tx.Model(&models.Product{}).
					Where("id = ? AND active = ?", line.ProductID, true).
					Count(&count).Error; err != nil {
					return fmt.Errorf("failed to check product %s: %w", line.ProductID, err)
				}
				if count == 0 {
					return models.ErrProductUnavailable
				}
				return models.ErrInsufficientStock
			}
		}

		if order.VoucherID != nil {
			res := tx.Model(&models.Voucher{}).
				Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", *order.VoucherID).
				Update("used_count", gorm.Expr("used_count + 1"))
			if res.Error != nil {
				return fmt.Errorf("failed to consume voucher %s: %w", *order.VoucherID, res.Error)
			}
			if res.RowsAffected == 0 {
				return models.ErrVoucherUsageLimitReached
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
}

// Transition applies a compare-and-swap status update. The UPDATE only
// matches when the order is still in the expected from state; zero rows
// affected means either the order vanished or another actor won the
// race.
func (r *GORMOrderRepository) Transition(id string, from, to models.OrderState, updates map[string]interface{}) error {
	if updates == nil {
		updates = make(map[string]interface{})
	}
	updates["status"] = to.Status
	updates["delivery_status"] = to.Delivery

	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ? AND delivery_status = ?", id, from.Status, from.Delivery).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to transition order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check order %s: %w", id, err)
		}
		if count == 0 {
			return models.ErrOrderNotFound
		}
		return models.ErrConcurrentModification
	}
	return nil
}

// SetPaymentToken records the most recent gateway session token.
func (r *GORMOrderRepository) SetPaymentToken(id, token string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("payment_token", token)
	if res.Error != nil {
		return fmt.Errorf("failed to set payment token for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}

// FindPendingBefore lists orders still pending that were created before
// the cutoff, for the expiry sweep.
func (r *GORMOrderRepository) FindPendingBefore(cutoff time.Time) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where("status = ? AND created_at < ?", models.StatusPending, cutoff).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to find stale pending orders: %w", err)
	}
	return orders, nil
}
