package services_test

import (
	"sync"
	"testing"
	"time"

	"tokoroti/internal/models"
	"tokoroti/internal/repositories"
	"tokoroti/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderFixture wires an OrderService over the in-memory repositories.
type orderFixture struct {
	products  *repositories.MockProductRepository
	vouchers  *repositories.MockVoucherRepository
	addresses *repositories.MockAddressRepository
	orders    *repositories.MockOrderRepository
	service   *services.OrderService
}

func newOrderFixture(cfg services.OrderConfig) *orderFixture {
	products := repositories.NewMockProductRepository()
	vouchers := repositories.NewMockVoucherRepository()
	addresses := repositories.NewMockAddressRepository()
	orders := repositories.NewMockOrderRepository(products, vouchers)
	return &orderFixture{
		products:  products,
		vouchers:  vouchers,
		addresses: addresses,
		orders:    orders,
		service:   services.NewOrderService(orders, products, vouchers, addresses, nil, cfg),
	}
}

func (f *orderFixture) seedProduct(t *testing.T, p models.Product) models.Product {
	t.Helper()
	require.NoError(t, f.products.Create(&p))
	return p
}

func TestPlaceOrder_FreezesTotalAtCheckout(t *testing.T) {
	f := newOrderFixture(services.OrderConfig{PickupDeadlineOffset: 24 * time.Hour})
	product := f.seedProduct(t, models.Product{
		ID: "prod-1", Name: "Roti Tawar", Price: 10000, DiscountPercent: 10, Stock: 10, Active: true,
	})
	require.NoError(t, f.vouchers.Create(&models.Voucher{
		ID: "v-1", Code: "HEMAT10", DiscountType: models.DiscountPercentage, DiscountValue: 10,
		ValidFrom: time.Now().Add(-time.Hour), ValidUntil: time.Now().Add(time.Hour),
	}))

	order, err := f.service.PlaceOrder("client-1", services.PlaceOrderInput{
		Lines:          []services.CheckoutLine{{ProductID: product.ID, Quantity: 2}},
		DeliveryOption: models.OptionPickup,
		VoucherCode:    "HEMAT10",
		PaymentMethod:  "qris",
	})
	require.NoError(t, err)

	// 2 x 10000 at 10% item discount = 18000; 10% voucher takes 1800.
	assert.Equal(t, int64(16200), order.Total)
	assert.Equal(t, int64(1800), order.VoucherDiscount)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.DeliveryWaiting, order.DeliveryStatus)
	require.NotNil(t, order.PickupDeadline)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *order.PickupDeadline, time.Minute)

	// Stock and voucher usage committed with the order.
	updated, err := f.products.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Stock)
	voucher, err := f.vouchers.GetByID("v-1")
	require.NoError(t, err)
	assert.Equal(t, 1, voucher.UsedCount)

	// Catalog edits after checkout never touch the stored snapshot.
	updated.Price = 99999
	updated.DiscountPercent = 0
	require.NoError(t, f.products.Update(updated))

	stored, err := f.service.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(16200), stored.Total)
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, int64(10000), stored.Lines[0].UnitPrice)
	assert.Equal(t, 10, stored.Lines[0].DiscountPercent)
	assert.Equal(t, "Roti Tawar", stored.Lines[0].ProductName)
}

func TestPlaceOrder_DeliverySnapshotsAddress(t *testing.T) {
	f := newOrderFixture(services.OrderConfig{ShippingFlatCost: 15000})
	product := f.seedProduct(t, models.Product{
		ID: "prod-1", Name: "Bolu Pandan", Price: 45000, Stock: 5, Active: true,
	})
	address := models.Address{
		ID: "addr-1", ClientID: "client-1",
		RecipientName: "Budi Santoso", Phone: "0812000111", Street: "Jl. Melati 5, Bandung",
	}
	require.NoError(t, f.addresses.Create(&address))

	order, err := f.service.PlaceOrder("client-1", services.PlaceOrderInput{
		Lines:          []services.CheckoutLine{{ProductID: product.ID, Quantity: 1}},
		DeliveryOption: models.OptionDelivery,
		AddressID:      address.ID,
		PaymentMethod:  "bank_transfer",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(60000), order.Total) // 45000 + 15000 shipping
	assert.Equal(t, int64(15000), order.ShippingCost)
	assert.Equal(t, "Budi Santoso", order.RecipientName)
	assert.Equal(t, "0812000111", order.RecipientPhone)
	assert.Equal(t, "Jl. Melati 5, Bandung", order.Street)
	assert.Nil(t, order.PickupDeadline)

	// Deleting the address later leaves the order intact.
	require.NoError(t, f.addresses.Delete(address.ID))
	stored, err := f.service.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", stored.RecipientName)
}

func TestPlaceOrder_DeliveryRejectsBadAddress(t *testing.T) {
	f := newOrderFixture(services.OrderConfig{ShippingFlatCost: 15000})
	product := f.seedProduct(t, models.Product{
		ID: "prod-1", Name: "Donat Gula", Price: 8000, Stock: 5, Active: true,
	})
	require.NoError(t, f.addresses.Create(&models.Address{
		ID: "addr-other", ClientID: "someone-else",
		RecipientName: "Lain Orang", Phone: "0813", Street: "Jl. Lain",
	}))

	input := services.PlaceOrderInput{
		Lines:          []services.CheckoutLine{{ProductID: product.ID, Quantity: 1}},
		DeliveryOption: models.OptionDelivery,
		PaymentMethod:  "qris",
	}

	// Missing address.
	_, err := f.service.PlaceOrder("client-1", input)
	assert.ErrorIs(t, err, models.ErrInvalidAddress)

	// Unknown address.
	input.AddressID = "addr-nope"
	_, err = f.service.PlaceOrder("client-1", input)
	assert.ErrorIs(t, err, models.ErrInvalidAddress)

	// Someone else's address.
	input.AddressID = "addr-other"
	_, err = f.service.PlaceOrder("client-1", input)
	assert.ErrorIs(t, err, models.ErrInvalidAddress)

	// Nothing was committed on any of the failures.
	stock, err := f.products.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stock.Stock)
}

func TestPlaceOrder_StockAndAvailabilityGuards(t *testing.T) {
	f := newOrderFixture(services.OrderConfig{})
	f.seedProduct(t, models.Product{ID: "prod-low", Name: "Lapis Legit", Price: 90000, Stock: 1, Active: true})
	f.seedProduct(t, models.Product{ID: "prod-off", Name: "Musiman", Price: 20000, Stock: 10, Active: false})

	_, err := f.service.PlaceOrder("client-1", services.PlaceOrderInput{
		Lines:          []services.CheckoutLine{{ProductID: "prod-low", Quantity: 2}},
		DeliveryOption: models.OptionPickup,
		PaymentMethod:  "qris",
	})
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	_, err = f.service.PlaceOrder("client-1", services.PlaceOrderInput{
		Lines:          []services.CheckoutLine{{ProductID: "prod-off", Quantity: 1}},
		DeliveryOption: models.OptionPickup,
		PaymentMethod:  "qris",
	})
	assert.ErrorIs(t, err, models.ErrProductUnavailable)

	_, err = f.service.PlaceOrder("client-1", services.PlaceOrderInput{
		Lines:          []services.CheckoutLine{{ProductID: "prod-missing", Quantity: 1}},
		DeliveryOption: models.OptionPickup,
		PaymentMethod:  "qris",
	})
	assert.ErrorIs(t, err, models.ErrProductUnavailable)
}

func TestPlaceOrder_VoucherErrorsAbortCheckout(t *testing.T) {
	f := newOrderFixture(services.OrderConfig{})
	product := f.seedProduct(t, models.Product{ID: "prod-1", Name: "Roti Sobek", Price: 25000, Stock: 10, Active: true})
	require.NoError(t, f.vouchers.Create(&models.Voucher{
		ID: "v-min", Code: "GEDE50", DiscountType: models.DiscountFixed, DiscountValue: 50000,
		MinPurchase: 100000,
		ValidFrom:   time.Now().Add(-time.Hour), ValidUntil: time.Now().Add(time.Hour),
	}))

	input := services.PlaceOrderInput{
		Lines:          []services.CheckoutLine{{ProductID: product.ID, Quantity: 1}},
		DeliveryOption: models.OptionPickup,
		PaymentMethod:  "qris",
	}

	input.VoucherCode = "TIDAKADA"
	_, err := f.service.PlaceOrder("client-1", input)
	assert.ErrorIs(t, err, models.ErrVoucherNotFound)

	input.VoucherCode = "GEDE50"
	_, err = f.service.PlaceOrder("client-1", input)
	assert.ErrorIs(t, err, models.ErrVoucherBelowMinPurchase)

	// Failed checkouts leave stock untouched.
	stock, err := f.products.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stock.Stock)
}

func TestPlaceOrder_VoucherUsageLimitUnderContention(t *testing.T) {
	const limit = 3
	const contenders = 8

	f := newOrderFixture(services.OrderConfig{})
	f.seedProduct(t, models.Product{ID: "prod-1", Name: "Croissant", Price: 12000, Stock: 100, Active: true})
	usageLimit := limit
	require.NoError(t, f.vouchers.Create(&models.Voucher{
		ID: "v-race", Code: "REBUTAN", DiscountType: models.DiscountFixed, DiscountValue: 2000,
		UsageLimit: &usageLimit,
		ValidFrom:  time.Now().Add(-time.Hour), ValidUntil: time.Now().Add(time.Hour),
	}))

	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.PlaceOrder("client-1", services.PlaceOrderInput{
				Lines:          []services.CheckoutLine{{ProductID: "prod-1", Quantity: 1}},
				DeliveryOption: models.OptionPickup,
				VoucherCode:    "REBUTAN",
				PaymentMethod:  "qris",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, limited := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, models.ErrVoucherUsageLimitReached):
			limited++
		}
	}

	assert.Equal(t, limit, succeeded, "exactly usage_limit checkouts may win the voucher")
	assert.Equal(t, contenders-limit, limited)

	voucher, err := f.vouchers.GetByID("v-race")
	require.NoError(t, err)
	assert.Equal(t, limit, voucher.UsedCount, "used_count never exceeds the limit")

	// Only winning checkouts took stock.
	stock, err := f.products.GetByID("prod-1")
	require.NoError(t, err)
	assert.Equal(t, 100-limit, stock.Stock)
}
