package models

import "gorm.io/gorm"

// Address is a client-owned delivery address. Orders copy its fields at
// checkout instead of referencing it, so later edits or deletion do not
// affect placed orders.
type Address struct {
	ID            string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ClientID      string `json:"client_id" gorm:"index;type:varchar(36)"`
	RecipientName string `json:"recipient_name" validate:"required,min=2,max=100"`
	Phone         string `json:"phone" validate:"required,min=6,max=20"`
	Street        string `json:"street" validate:"required,min=5,max=255"`
	gorm.Model
}
