package services

import (
	"tokoroti/internal/models"
	"tokoroti/internal/repositories"
)

// RatingService guards review submission: one review per line item per
// completed order, by the order's owner only.
type RatingService struct {
	ratingRepo repositories.RatingRepository
	orderRepo  repositories.OrderRepository
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratingRepo repositories.RatingRepository, orderRepo repositories.OrderRepository) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		orderRepo:  orderRepo,
	}
}

// Submit creates a review for one product bought in one order.
func (s *RatingService) Submit(orderID, productID, clientID string, score int, comment string) (*models.Rating, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.ClientID != clientID {
		return nil, models.ErrNotOrderOwner
	}
	if order.Status != models.StatusCompleted {
		return nil, models.ErrOrderNotCompleted
	}

	inOrder := false
	for _, line := range order.Lines {
		if line.ProductID == productID {
			inOrder = true
			break
		}
	}
	if !inOrder {
		return nil, models.ErrItemNotInOrder
	}

	rating := &models.Rating{
		OrderID:   orderID,
		ProductID: productID,
		ClientID:  clientID,
		Score:     score,
		Comment:   comment,
	}
	if err := s.ratingRepo.Create(rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// GetByOrder lists the reviews already submitted for an order.
func (s *RatingService) GetByOrder(orderID string) ([]models.Rating, error) {
	return s.ratingRepo.GetByOrderID(orderID)
}

// GetByProduct lists all reviews of a product.
func (s *RatingService) GetByProduct(productID string) ([]models.Rating, error) {
	return s.ratingRepo.GetByProductID(productID)
}
