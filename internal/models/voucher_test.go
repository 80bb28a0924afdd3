package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validVoucher() Voucher {
	return Voucher{
		ID:            "v-1",
		Code:          "HEMAT10",
		DiscountType:  DiscountPercentage,
		DiscountValue: 10,
		ValidFrom:     time.Now().Add(-time.Hour),
		ValidUntil:    time.Now().Add(time.Hour),
	}
}

func TestVoucherEvaluate_Percentage(t *testing.T) {
	v := validVoucher()
	now := time.Now()

	discount, err := v.Evaluate(18000, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(1800), discount)

	// Percentage discounts floor.
	discount, err = v.Evaluate(999, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(99), discount)
}

func TestVoucherEvaluate_PercentageCappedByMaxDiscount(t *testing.T) {
	v := validVoucher()
	ceiling := int64(1000)
	v.MaxDiscount = &ceiling
	now := time.Now()

	discount, err := v.Evaluate(18000, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(1000), discount)

	// Below the cap the raw percentage applies.
	discount, err = v.Evaluate(5000, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(500), discount)
}

func TestVoucherEvaluate_FixedCappedBySubtotal(t *testing.T) {
	v := validVoucher()
	v.DiscountType = DiscountFixed
	v.DiscountValue = 20000
	now := time.Now()

	// A fixed discount never exceeds the subtotal; totals cannot go
	// negative.
	discount, err := v.Evaluate(15000, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(15000), discount)

	discount, err = v.Evaluate(50000, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(20000), discount)
}

func TestVoucherEvaluate_Rejections(t *testing.T) {
	now := time.Now()

	notYet := validVoucher()
	notYet.ValidFrom = now.Add(time.Hour)
	_, err := notYet.Evaluate(18000, now)
	assert.ErrorIs(t, err, ErrVoucherNotYetValid)

	expired := validVoucher()
	expired.ValidUntil = now.Add(-time.Minute)
	_, err = expired.Evaluate(18000, now)
	assert.ErrorIs(t, err, ErrVoucherExpired)

	minPurchase := validVoucher()
	minPurchase.MinPurchase = 20000
	_, err = minPurchase.Evaluate(18000, now)
	assert.ErrorIs(t, err, ErrVoucherBelowMinPurchase)

	limit := 5
	usedUp := validVoucher()
	usedUp.UsageLimit = &limit
	usedUp.UsedCount = 5
	_, err = usedUp.Evaluate(18000, now)
	assert.ErrorIs(t, err, ErrVoucherUsageLimitReached)
}

func TestVoucherEvaluate_Boundaries(t *testing.T) {
	now := time.Now()
	v := validVoucher()
	v.ValidFrom = now
	v.ValidUntil = now

	// Validity window is inclusive at both ends.
	discount, err := v.Evaluate(18000, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(1800), discount)

	// Subtotal exactly at the minimum qualifies.
	v = validVoucher()
	v.MinPurchase = 18000
	_, err = v.Evaluate(18000, now)
	assert.NoError(t, err)

	// One use left.
	limit := 3
	v = validVoucher()
	v.UsageLimit = &limit
	v.UsedCount = 2
	_, err = v.Evaluate(18000, now)
	assert.NoError(t, err)

	// Evaluation is pure: repeated calls with the same inputs agree.
	first, _ := v.Evaluate(18000, now)
	second, _ := v.Evaluate(18000, now)
	assert.Equal(t, first, second)
}
