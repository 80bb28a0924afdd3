package repositories

import (
	"sync"

	"tokoroti/internal/models"

	"github.com/google/uuid"
)

// MockAddressRepository is an in-memory implementation of AddressRepository.
type MockAddressRepository struct {
	addresses map[string]models.Address
	mu        sync.RWMutex
}

// NewMockAddressRepository creates a new instance of MockAddressRepository.
func NewMockAddressRepository() *MockAddressRepository {
	return &MockAddressRepository{
		addresses: make(map[string]models.Address),
	}
}

// GetByID returns an address by its ID.
func (r *MockAddressRepository) GetByID(id string) (*models.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	address, ok := r.addresses[id]
	if !ok {
		return nil, models.ErrInvalidAddress
	}
	return &address, nil
}

// GetByClientID returns all addresses owned by one client.
func (r *MockAddressRepository) GetByClientID(clientID string) ([]models.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var addresses []models.Address
	for _, address := range r.addresses {
		if address.ClientID == clientID {
			addresses = append(addresses, address)
		}
	}
	return addresses, nil
}

// Create adds a new address.
func (r *MockAddressRepository) Create(address *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if address.ID == "" {
		address.ID = uuid.New().String()
	}
	r.addresses[address.ID] = *address
	return nil
}

// Delete removes an address by its ID.
func (r *MockAddressRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[id]; !ok {
		return models.ErrInvalidAddress
	}
	delete(r.addresses, id)
	return nil
}
