package models

import "time"

// Discount types for vouchers.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Voucher is a discount code with usage and validity constraints,
// consumable at most UsageLimit times.
type Voucher struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Code          string     `json:"code" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=3,max=50"`
	DiscountType  string     `json:"discount_type" gorm:"type:varchar(20)" validate:"required,oneof=percentage fixed"`
	DiscountValue int64      `json:"discount_value" validate:"required,gt=0"` // percent for percentage, minor units for fixed
	MinPurchase   int64      `json:"min_purchase" validate:"gte=0"`
	MaxDiscount   *int64     `json:"max_discount,omitempty"` // caps percentage discounts
	UsageLimit    *int       `json:"usage_limit,omitempty"`
	UsedCount     int        `json:"used_count"`
	ValidFrom     time.Time  `json:"valid_from"`
	ValidUntil    time.Time  `json:"valid_until"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Evaluate computes the discount amount for a purchase subtotal (minor
// units, after item discounts) at the given instant. It is pure: calling
// it during cart browsing and again at checkout submission yields the
// same result for the same inputs. The usage-limit bound is checked here
// for early rejection, but the authoritative check is the atomic
// bounded increment performed when the order is placed.
func (v *Voucher) Evaluate(subtotal int64, now time.Time) (int64, error) {
	if now.Before(v.ValidFrom) {
		return 0, ErrVoucherNotYetValid
	}
	if now.After(v.ValidUntil) {
		return 0, ErrVoucherExpired
	}
	if subtotal < v.MinPurchase {
		return 0, ErrVoucherBelowMinPurchase
	}
	if v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit {
		return 0, ErrVoucherUsageLimitReached
	}

	var discount int64
	switch v.DiscountType {
	case DiscountPercentage:
		discount = subtotal * v.DiscountValue / 100
		if v.MaxDiscount != nil && discount > *v.MaxDiscount {
			discount = *v.MaxDiscount
		}
	case DiscountFixed:
		discount = v.DiscountValue
		if discount > subtotal {
			discount = subtotal
		}
	}
	return discount, nil
}
