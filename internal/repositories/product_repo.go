package repositories

import (
	"tokoroti/internal/models"
)

// ProductRepository defines the interface for catalog data access.
// Stock decrement at checkout is not here: it happens inside
// OrderRepository.Place so it is atomic with order creation.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetActive() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
