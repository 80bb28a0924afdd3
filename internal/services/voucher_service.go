package services

import (
	"time"

	"tokoroti/internal/models"
	"tokoroti/internal/repositories"
)

// VoucherService handles staff voucher management and ad hoc voucher
// checks during cart browsing. The authoritative evaluation happens
// again at checkout submission inside OrderService.PlaceOrder.
type VoucherService struct {
	repo repositories.VoucherRepository
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(repo repositories.VoucherRepository) *VoucherService {
	return &VoucherService{
		repo: repo,
	}
}

// GetAllVouchers retrieves all vouchers.
func (s *VoucherService) GetAllVouchers() ([]models.Voucher, error) {
	return s.repo.GetAll()
}

// GetVoucherByID retrieves a single voucher by its ID.
func (s *VoucherService) GetVoucherByID(id string) (*models.Voucher, error) {
	return s.repo.GetByID(id)
}

// CreateVoucher creates a new voucher.
func (s *VoucherService) CreateVoucher(voucher *models.Voucher) error {
	return s.repo.Create(voucher)
}

// UpdateVoucher updates an existing voucher. used_count is managed by
// Consume/Release only, so staff edits preserve the stored counter.
func (s *VoucherService) UpdateVoucher(voucher *models.Voucher) error {
	current, err := s.repo.GetByID(voucher.ID)
	if err != nil {
		return err
	}
	voucher.UsedCount = current.UsedCount
	return s.repo.Update(voucher)
}

// DeleteVoucher deletes a voucher by its ID.
func (s *VoucherService) DeleteVoucher(id string) error {
	return s.repo.Delete(id)
}

// Preview evaluates a voucher code against a cart subtotal without
// consuming anything. Used by the cart UI; the result is advisory.
func (s *VoucherService) Preview(code string, subtotal int64) (int64, error) {
	voucher, err := s.repo.GetByCode(code)
	if err != nil {
		return 0, err
	}
	return voucher.Evaluate(subtotal, time.Now())
}
