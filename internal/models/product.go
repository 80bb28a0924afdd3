package models

import "gorm.io/gorm"

// Product represents a bakery catalog item. Price is in integer minor
// units (rupiah); DiscountPercent is the currently advertised discount.
// Both are copied into order lines at checkout, so editing them here
// never changes an already-placed order.
type Product struct {
	ID              string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name            string `json:"name" validate:"required,min=3,max=100"`
	Description     string `json:"description" validate:"omitempty,max=500"`
	Price           int64  `json:"price" validate:"required,gt=0"`
	DiscountPercent int    `json:"discount_percent" validate:"gte=0,lte=100"`
	Stock           int    `json:"stock" validate:"gte=0"`
	Active          bool   `json:"active"`
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
