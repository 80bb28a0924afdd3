package services_test

import (
	"testing"
	"time"

	"tokoroti/internal/models"
	"tokoroti/internal/repositories"
	"tokoroti/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoucherService_UpdatePreservesUsedCount(t *testing.T) {
	repo := repositories.NewMockVoucherRepository()
	service := services.NewVoucherService(repo)

	voucher := &models.Voucher{
		ID: "v-1", Code: "HEMAT10",
		DiscountType: models.DiscountPercentage, DiscountValue: 10,
		ValidFrom: time.Now().Add(-time.Hour), ValidUntil: time.Now().Add(time.Hour),
	}
	require.NoError(t, service.CreateVoucher(voucher))
	require.NoError(t, repo.Consume("v-1"))
	require.NoError(t, repo.Consume("v-1"))

	// A staff edit must not reset (or forge) the consumption counter.
	edit := &models.Voucher{
		ID: "v-1", Code: "HEMAT15",
		DiscountType: models.DiscountPercentage, DiscountValue: 15,
		UsedCount: 0,
		ValidFrom: voucher.ValidFrom, ValidUntil: voucher.ValidUntil,
	}
	require.NoError(t, service.UpdateVoucher(edit))

	stored, err := service.GetVoucherByID("v-1")
	require.NoError(t, err)
	assert.Equal(t, "HEMAT15", stored.Code)
	assert.Equal(t, int64(15), stored.DiscountValue)
	assert.Equal(t, 2, stored.UsedCount)
}

func TestVoucherService_Preview(t *testing.T) {
	repo := repositories.NewMockVoucherRepository()
	service := services.NewVoucherService(repo)

	require.NoError(t, repo.Create(&models.Voucher{
		ID: "v-1", Code: "HEMAT10",
		DiscountType: models.DiscountPercentage, DiscountValue: 10,
		ValidFrom: time.Now().Add(-time.Hour), ValidUntil: time.Now().Add(time.Hour),
	}))

	discount, err := service.Preview("HEMAT10", 18000)
	require.NoError(t, err)
	assert.Equal(t, int64(1800), discount)

	// Previewing consumes nothing.
	stored, err := repo.GetByID("v-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.UsedCount)

	_, err = service.Preview("TIDAKADA", 18000)
	assert.ErrorIs(t, err, models.ErrVoucherNotFound)
}
