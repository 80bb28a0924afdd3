package models

import "time"

// Rating is a customer review of one product bought in one order. The
// composite unique index enforces a single review per line item per
// order per client.
type Rating struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string    `json:"order_id" gorm:"uniqueIndex:idx_rating_once;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"uniqueIndex:idx_rating_once;type:varchar(36)"`
	ClientID  string    `json:"client_id" gorm:"uniqueIndex:idx_rating_once;type:varchar(36)"`
	Score     int       `json:"score" validate:"required,gte=1,lte=5"`
	Comment   string    `json:"comment" validate:"omitempty,max=500"`
	CreatedAt time.Time `json:"created_at"`
}
