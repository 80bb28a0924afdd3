package repositories

import (
	"tokoroti/internal/models"
)

// VoucherRepository defines the interface for voucher data access.
// Consume is an atomic bounded increment of used_count: it either
// reserves one usage or fails with models.ErrVoucherUsageLimitReached,
// never a read-then-write pair. Release undoes one usage (bounded at
// zero) for the configurable release-on-failure policy.
type VoucherRepository interface {
	GetAll() ([]models.Voucher, error)
	GetByID(id string) (*models.Voucher, error)
	GetByCode(code string) (*models.Voucher, error)
	Create(voucher *models.Voucher) error
	Update(voucher *models.Voucher) error
	Delete(id string) error
	Consume(id string) error
	Release(id string) error
}
