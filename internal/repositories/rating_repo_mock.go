package repositories

import (
	"sync"
	"time"

	"tokoroti/internal/models"

	"github.com/google/uuid"
)

// MockRatingRepository is an in-memory implementation of RatingRepository.
type MockRatingRepository struct {
	ratings map[string]models.Rating // keyed by order|product|client
	mu      sync.Mutex
}

// NewMockRatingRepository creates a new instance of MockRatingRepository.
func NewMockRatingRepository() *MockRatingRepository {
	return &MockRatingRepository{
		ratings: make(map[string]models.Rating),
	}
}

func ratingKey(orderID, productID, clientID string) string {
	return orderID + "|" + productID + "|" + clientID
}

// Create adds a new rating, enforcing the one-review-per-line rule.
func (r *MockRatingRepository) Create(rating *models.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ratingKey(rating.OrderID, rating.ProductID, rating.ClientID)
	if _, ok := r.ratings[key]; ok {
		return models.ErrAlreadyReviewed
	}
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	rating.CreatedAt = time.Now()
	r.ratings[key] = *rating
	return nil
}

// GetByOrderID retrieves all ratings submitted for one order.
func (r *MockRatingRepository) GetByOrderID(orderID string) ([]models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ratings []models.Rating
	for _, rating := range r.ratings {
		if rating.OrderID == orderID {
			ratings = append(ratings, rating)
		}
	}
	return ratings, nil
}

// GetByProductID retrieves all ratings for one product.
func (r *MockRatingRepository) GetByProductID(productID string) ([]models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ratings []models.Rating
	for _, rating := range r.ratings {
		if rating.ProductID == productID {
			ratings = append(ratings, rating)
		}
	}
	return ratings, nil
}
