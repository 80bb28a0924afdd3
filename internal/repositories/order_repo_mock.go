package repositories

import (
	"sync"
	"time"

	"tokoroti/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It shares the product and voucher mocks so Place can apply the same
// atomic side effects the GORM transaction does; either may be nil when
// a test does not exercise that path.
type MockOrderRepository struct {
	orders   map[string]models.Order
	mu       sync.Mutex
	products *MockProductRepository
	vouchers *MockVoucherRepository
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(products *MockProductRepository, vouchers *MockVoucherRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		products: products,
		vouchers: vouchers,
	}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return &order, nil
}

// GetByClientID returns all orders placed by one client.
func (r *MockOrderRepository) GetByClientID(clientID string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var orderList []models.Order
	for _, order := range r.orders {
		if order.ClientID == clientID {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}

// Place adds a new order after decrementing stock and consuming the
// voucher, all under one lock so concurrent placements observe the same
// all-or-nothing behavior as the database transaction.
func (r *MockOrderRepository) Place(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.products != nil {
		// Validate every line before mutating anything.
		for _, line := range order.Lines {
			product, err := r.products.GetByID(line.ProductID)
			if err != nil || !product.Active {
				return models.ErrProductUnavailable
			}
			if product.Stock < line.Quantity {
				return models.ErrInsufficientStock
			}
		}
	}
	if order.VoucherID != nil && r.vouchers != nil {
		if err := r.vouchers.Consume(*order.VoucherID); err != nil {
			return err
		}
	}
	if r.products != nil {
		for _, line := range order.Lines {
			product, _ := r.products.GetByID(line.ProductID)
			product.Stock -= line.Quantity
			if err := r.products.Update(product); err != nil {
				return err
			}
		}
	}

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// Transition applies a compare-and-swap state update.
func (r *MockOrderRepository) Transition(id string, from, to models.OrderState, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return models.ErrOrderNotFound
	}
	if order.State() != from {
		return models.ErrConcurrentModification
	}
	order.Status = to.Status
	order.DeliveryStatus = to.Delivery
	for key, value := range updates {
		switch key {
		case "received_at":
			if ts, ok := value.(time.Time); ok {
				order.ReceivedAt = &ts
			}
		case "shipping_number":
			if sn, ok := value.(string); ok {
				order.ShippingNumber = &sn
			}
		}
	}
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// SetPaymentToken records the most recent gateway session token.
func (r *MockOrderRepository) SetPaymentToken(id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return models.ErrOrderNotFound
	}
	order.PaymentToken = token
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// FindPendingBefore lists stale pending orders for the expiry sweep.
func (r *MockOrderRepository) FindPendingBefore(cutoff time.Time) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stale []models.Order
	for _, order := range r.orders {
		if order.Status == models.StatusPending && order.CreatedAt.Before(cutoff) {
			stale = append(stale, order)
		}
	}
	return stale, nil
}
