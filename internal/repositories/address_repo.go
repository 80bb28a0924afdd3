package repositories

import (
	"tokoroti/internal/models"
)

// AddressRepository defines the interface for delivery address access.
type AddressRepository interface {
	GetByID(id string) (*models.Address, error)
	GetByClientID(clientID string) ([]models.Address, error)
	Create(address *models.Address) error
	Delete(id string) error
}
