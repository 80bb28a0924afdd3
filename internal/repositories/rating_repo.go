package repositories

import (
	"tokoroti/internal/models"
)

// RatingRepository defines the interface for review data access.
// Create fails with models.ErrAlreadyReviewed when a rating for the same
// (order, product, client) key already exists.
type RatingRepository interface {
	Create(rating *models.Rating) error
	GetByOrderID(orderID string) ([]models.Rating, error)
	GetByProductID(productID string) ([]models.Rating, error)
}
