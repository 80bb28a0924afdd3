package services

import (
	"fmt"
	"time"

	"tokoroti/internal/models"
	"tokoroti/internal/repositories"

	"github.com/google/uuid"
)

// CheckoutLine is one requested cart line at checkout.
type CheckoutLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderInput carries everything the customer submits at checkout.
type PlaceOrderInput struct {
	Lines          []CheckoutLine        `json:"lines" validate:"required,min=1,dive"`
	DeliveryOption models.DeliveryOption `json:"delivery_option" validate:"required,oneof=delivery pickup"`
	AddressID      string                `json:"address_id" validate:"omitempty,uuid"`
	VoucherCode    string                `json:"voucher_code"`
	PaymentMethod  string                `json:"payment_method" validate:"required,max=50"`
	Note           string                `json:"note" validate:"omitempty,max=500"`
}

// OrderConfig holds checkout policy knobs.
type OrderConfig struct {
	ShippingFlatCost     int64         // minor units, delivery orders only
	PickupDeadlineOffset time.Duration // from order creation
}

// OrderService handles order creation and order views. Creation builds
// the immutable price/discount snapshot, evaluates the voucher against
// the snapshotted subtotal and hands the result to the repository, which
// commits stock decrement, voucher consumption and the insert as one
// atomic unit.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	voucherRepo repositories.VoucherRepository
	addressRepo repositories.AddressRepository
	publisher   EventPublisher
	cfg         OrderConfig
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	voucherRepo repositories.VoucherRepository,
	addressRepo repositories.AddressRepository,
	publisher EventPublisher,
	cfg OrderConfig,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		voucherRepo: voucherRepo,
		addressRepo: addressRepo,
		publisher:   publisher,
		cfg:         cfg,
	}
}

// GetAllOrders retrieves all orders (staff view).
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrdersByClient retrieves all orders placed by one client.
func (s *OrderService) GetOrdersByClient(clientID string) ([]models.Order, error) {
	return s.orderRepo.GetByClientID(clientID)
}

// PlaceOrder creates a new order for the client. On success the order is
// pending with its total frozen; the voucher usage and stock decrements
// have been committed atomically with the insert.
func (s *OrderService) PlaceOrder(clientID string, input PlaceOrderInput) (*models.Order, error) {
	now := time.Now()

	// 1. Snapshot current price and discount into order lines.
	var lines []models.OrderLine
	var subtotal int64
	for _, item := range input.Lines {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil || !product.Active {
			return nil, models.ErrProductUnavailable
		}
		if product.Stock < item.Quantity {
			return nil, models.ErrInsufficientStock
		}
		line := models.OrderLine{
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        item.Quantity,
			UnitPrice:       product.Price,
			DiscountPercent: product.DiscountPercent,
		}
		lines = append(lines, line)
		subtotal += line.Subtotal()
	}

	order := &models.Order{
		ID:             uuid.New().String(),
		ClientID:       clientID,
		Lines:          lines,
		Status:         models.StatusPending,
		DeliveryOption: input.DeliveryOption,
		DeliveryStatus: models.DeliveryWaiting,
		PaymentMethod:  input.PaymentMethod,
		Note:           input.Note,
	}

	// 2. Delivery mode specifics: address snapshot for shipments, pickup
	// deadline for in-store pickup.
	switch input.DeliveryOption {
	case models.OptionDelivery:
		if input.AddressID == "" {
			return nil, models.ErrInvalidAddress
		}
		address, err := s.addressRepo.GetByID(input.AddressID)
		if err != nil {
			return nil, models.ErrInvalidAddress
		}
		if address.ClientID != clientID {
			return nil, models.ErrInvalidAddress
		}
		order.RecipientName = address.RecipientName
		order.RecipientPhone = address.Phone
		order.Street = address.Street
		order.ShippingCost = s.cfg.ShippingFlatCost
	case models.OptionPickup:
		deadline := now.Add(s.cfg.PickupDeadlineOffset)
		order.PickupDeadline = &deadline
	}

	// 3. Re-evaluate the voucher against the snapshotted subtotal. Any
	// earlier evaluation during cart browsing is advisory only; subtotal
	// and voucher state may have changed since.
	if input.VoucherCode != "" {
		voucher, err := s.voucherRepo.GetByCode(input.VoucherCode)
		if err != nil {
			return nil, err
		}
		discount, err := voucher.Evaluate(subtotal, now)
		if err != nil {
			return nil, err
		}
		order.VoucherID = &voucher.ID
		order.VoucherDiscount = discount
	}

	// 4. Freeze the total. It is never recomputed after this point.
	order.Total = order.ComputeTotal()

	// 5. Atomic placement: stock decrement, bounded voucher consumption
	// and the insert commit or roll back together.
	if err := s.orderRepo.Place(order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	publishEvent(s.publisher, EventOrderCreated, map[string]interface{}{
		"order_id":  order.ID,
		"client_id": order.ClientID,
		"status":    order.Status,
		"total":     order.Total,
	})

	return order, nil
}
