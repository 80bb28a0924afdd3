package repositories

import (
	"sync"

	"tokoroti/internal/models"

	"github.com/google/uuid"
)

// MockVoucherRepository is an in-memory implementation of VoucherRepository.
type MockVoucherRepository struct {
	vouchers map[string]models.Voucher
	mu       sync.Mutex
}

// NewMockVoucherRepository creates a new instance of MockVoucherRepository.
func NewMockVoucherRepository() *MockVoucherRepository {
	return &MockVoucherRepository{
		vouchers: make(map[string]models.Voucher),
	}
}

// GetAll returns all vouchers.
func (r *MockVoucherRepository) GetAll() ([]models.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	voucherList := make([]models.Voucher, 0, len(r.vouchers))
	for _, v := range r.vouchers {
		voucherList = append(voucherList, v)
	}
	return voucherList, nil
}

// GetByID returns a voucher by its ID.
func (r *MockVoucherRepository) GetByID(id string) (*models.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	voucher, ok := r.vouchers[id]
	if !ok {
		return nil, models.ErrVoucherNotFound
	}
	return &voucher, nil
}

// GetByCode returns a voucher by its code.
func (r *MockVoucherRepository) GetByCode(code string) (*models.Voucher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, voucher := range r.vouchers {
		if voucher.Code == code {
			v := voucher
			return &v, nil
		}
	}
	return nil, models.ErrVoucherNotFound
}

// Create adds a new voucher.
func (r *MockVoucherRepository) Create(voucher *models.Voucher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if voucher.ID == "" {
		voucher.ID = uuid.New().String()
	}
	r.vouchers[voucher.ID] = *voucher
	return nil
}

// Update modifies an existing voucher.
func (r *MockVoucherRepository) Update(voucher *models.Voucher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vouchers[voucher.ID]; !ok {
		return models.ErrVoucherNotFound
	}
	r.vouchers[voucher.ID] = *voucher
	return nil
}

// Delete removes a voucher by its ID.
func (r *MockVoucherRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vouchers[id]; !ok {
		return models.ErrVoucherNotFound
	}
	delete(r.vouchers, id)
	return nil
}

// Consume performs the check-then-increment under the repository lock,
// matching the guarded UPDATE of the GORM implementation.
func (r *MockVoucherRepository) Consume(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	voucher, ok := r.vouchers[id]
	if !ok {
		return models.ErrVoucherNotFound
	}
	if voucher.UsageLimit != nil && voucher.UsedCount >= *voucher.UsageLimit {
		return models.ErrVoucherUsageLimitReached
	}
	voucher.UsedCount++
	r.vouchers[id] = voucher
	return nil
}

// Release decrements used_count, bounded at zero.
func (r *MockVoucherRepository) Release(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	voucher, ok := r.vouchers[id]
	if !ok {
		return models.ErrVoucherNotFound
	}
	if voucher.UsedCount > 0 {
		voucher.UsedCount--
	}
	r.vouchers[id] = voucher
	return nil
}
