package repositories

import (
	"errors"
	"fmt"

	"tokoroti/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	db *gorm.DB
}

// NewGORMRatingRepository creates a new instance of GORMRatingRepository.
func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{
		db: db,
	}
}

// Create inserts a new rating. The unique (order, product, client) index
// is the authoritative duplicate guard; a violation maps to
// models.ErrAlreadyReviewed.
func (r *GORMRatingRepository) Create(rating *models.Rating) error {
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	if err := r.db.Create(rating).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrAlreadyReviewed
		}
		// SQLite reports constraint violations as plain errors, so fall
		// back to an existence check before surfacing the failure.
		var count int64
		if r.db.Model(&models.Rating{}).
			Where("order_id = ? AND product_id = ? AND client_id = ?", rating.OrderID, rating.ProductID, rating.ClientID).
			Count(&count).Error == nil && count > 0 {
			return models.ErrAlreadyReviewed
		}
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

// GetByOrderID retrieves all ratings submitted for one order.
func (r *GORMRatingRepository) GetByOrderID(orderID string) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.Where("order_id = ?", orderID).Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to get ratings for order %s: %w", orderID, err)
	}
	return ratings, nil
}

// GetByProductID retrieves all ratings for one product.
func (r *GORMRatingRepository) GetByProductID(productID string) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.Where("product_id = ?", productID).Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to get ratings for product %s: %w", productID, err)
	}
	return ratings, nil
}
