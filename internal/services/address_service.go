package services

import (
	"tokoroti/internal/models"
	"tokoroti/internal/repositories"
)

// AddressService handles a client's delivery address book.
type AddressService struct {
	repo repositories.AddressRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(repo repositories.AddressRepository) *AddressService {
	return &AddressService{
		repo: repo,
	}
}

// GetAddresses lists the client's addresses.
func (s *AddressService) GetAddresses(clientID string) ([]models.Address, error) {
	return s.repo.GetByClientID(clientID)
}

// CreateAddress adds an address to the client's book.
func (s *AddressService) CreateAddress(clientID string, address *models.Address) error {
	address.ClientID = clientID
	return s.repo.Create(address)
}

// DeleteAddress removes an address, owner only.
func (s *AddressService) DeleteAddress(clientID, addressID string) error {
	address, err := s.repo.GetByID(addressID)
	if err != nil {
		return err
	}
	if address.ClientID != clientID {
		return models.ErrInvalidAddress
	}
	return s.repo.Delete(addressID)
}
