package repositories

import (
	"fmt"

	"tokoroti/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMVoucherRepository is a GORM implementation of VoucherRepository.
type GORMVoucherRepository struct {
	db *gorm.DB
}

// NewGORMVoucherRepository creates a new instance of GORMVoucherRepository.
func NewGORMVoucherRepository(db *gorm.DB) *GORMVoucherRepository {
	return &GORMVoucherRepository{
		db: db,
	}
}

// GetAll retrieves all vouchers.
func (r *GORMVoucherRepository) GetAll() ([]models.Voucher, error) {
	var vouchers []models.Voucher
	if err := r.db.Find(&vouchers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all vouchers: %w", err)
	}
	return vouchers, nil
}

// GetByID retrieves a single voucher by its ID.
func (r *GORMVoucherRepository) GetByID(id string) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.First(&voucher, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.ErrVoucherNotFound
		}
		return nil, fmt.Errorf("failed to get voucher by ID %s: %w", id, err)
	}
	return &voucher, nil
}

// GetByCode retrieves a single voucher by its code.
func (r *GORMVoucherRepository) GetByCode(code string) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.First(&voucher, "code = ?", code).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.ErrVoucherNotFound
		}
		return nil, fmt.Errorf("failed to get voucher by code %s: %w", code, err)
	}
	return &voucher, nil
}

// Create creates a new voucher.
func (r *GORMVoucherRepository) Create(voucher *models.Voucher) error {
	if voucher.ID == "" {
		voucher.ID = uuid.New().String()
	}
	if err := r.db.Create(voucher).Error; err != nil {
		return fmt.Errorf("failed to create voucher: %w", err)
	}
	return nil
}

// Update updates an existing voucher.
func (r *GORMVoucherRepository) Update(voucher *models.Voucher) error {
	res := r.db.Save(voucher)
	if res.Error != nil {
		return fmt.Errorf("failed to update voucher: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrVoucherNotFound
	}
	return nil
}

// Delete deletes a voucher by its ID.
func (r *GORMVoucherRepository) Delete(id string) error {
	res := r.db.Delete(&models.Voucher{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete voucher: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrVoucherNotFound
	}
	return nil
}

// Consume increments used_count if and only if the usage limit has not
// been reached, in a single guarded UPDATE.
func (r *GORMVoucherRepository) Consume(id string) error {
	res := r.db.Model(&models.Voucher{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", id).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to consume voucher %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrVoucherUsageLimitReached
	}
	return nil
}

// Release decrements used_count, bounded at zero. Applied at most once
// per failed order by the caller's compare-and-swap transition.
func (r *GORMVoucherRepository) Release(id string) error {
	res := r.db.Model(&models.Voucher{}).
		Where("id = ? AND used_count > 0", id).
		Update("used_count", gorm.Expr("used_count - 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to release voucher %s: %w", id, res.Error)
	}
	return nil
}
