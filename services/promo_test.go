package services

import (
	"testing"
	"time"

	"github.com/farmly/farm-market-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int {
	return &i
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestPricePromoValidation(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		promo   *models.PromoCode
		message string
	}{
		{
			name:    "nil promo",
			promo:   nil,
			message: "Invalid promo code",
		},
		{
			name:    "disabled",
			promo:   &models.PromoCode{Code: "SAVE10", Type: models.PromoPercentage, Value: dec("10"), Enabled: false},
			message: "Invalid promo code",
		},
		{
			name: "not started yet",
			promo: &models.PromoCode{Code: "SAVE10", Type: models.PromoPercentage, Value: dec("10"), Enabled: true,
				StartDate: timePtr(now.AddDate(0, 0, 1))},
			message: "This promo code is not active yet",
		},
		{
			name: "expired",
			promo: &models.PromoCode{Code: "SAVE10", Type: models.PromoPercentage, Value: dec("10"), Enabled: true,
				ExpiryDate: timePtr(now.AddDate(0, 0, -1))},
			message: "This promo code has expired",
		},
		{
			name: "below minimum order",
			promo: &models.PromoCode{Code: "SAVE10", Type: models.PromoPercentage, Value: dec("10"), Enabled: true,
				MinOrder: decPtr("50.00")},
			message: "Order subtotal is below the minimum for this promo code",
		},
		{
			name: "usage exhausted",
			promo: &models.PromoCode{Code: "SAVE10", Type: models.PromoPercentage, Value: dec("10"), Enabled: true,
				MaxUses: intPtr(5), UsedCount: 5},
			message: "This promo code has reached its usage limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PricePromo(tt.promo, dec("20.00"), now)
			assert.False(t, result.Valid)
			assert.True(t, result.Discount.IsZero())
			assert.Equal(t, tt.message, result.Message)
		})
	}
}

func TestPricePromoDiscounts(t *testing.T) {
	now := time.Now()

	t.Run("percentage", func(t *testing.T) {
		promo := &models.PromoCode{Code: "SAVE10", Type: models.PromoPercentage, Value: dec("10"), Enabled: true}
		result := PricePromo(promo, dec("45.50"), now)
		assert.True(t, result.Valid)
		assert.True(t, dec("4.55").Equal(result.Discount), "got %s", result.Discount)
		assert.False(t, result.FreeShipping)
	})

	t.Run("fixed", func(t *testing.T) {
		promo := &models.PromoCode{Code: "TAKE5", Type: models.PromoFixed, Value: dec("5.00"), Enabled: true}
		result := PricePromo(promo, dec("45.50"), now)
		assert.True(t, result.Valid)
		assert.True(t, dec("5.00").Equal(result.Discount))
	})

	t.Run("fixed clamped to subtotal", func(t *testing.T) {
		promo := &models.PromoCode{Code: "TAKE50", Type: models.PromoFixed, Value: dec("50.00"), Enabled: true}
		result := PricePromo(promo, dec("12.30"), now)
		assert.True(t, result.Valid)
		assert.True(t, dec("12.30").Equal(result.Discount), "discount must not exceed subtotal, got %s", result.Discount)
	})

	t.Run("free shipping", func(t *testing.T) {
		promo := &models.PromoCode{Code: "FREESHIP", Type: models.PromoFreeShipping, Value: decimal.Zero, Enabled: true}
		result := PricePromo(promo, dec("45.50"), now)
		assert.True(t, result.Valid)
		assert.True(t, result.Discount.IsZero())
		assert.True(t, result.FreeShipping)
	})
}

func TestPricePromoDoesNotMutate(t *testing.T) {
	promo := &models.PromoCode{Code: "SAVE10", Type: models.PromoPercentage, Value: dec("10"), Enabled: true, UsedCount: 2}

	for i := 0; i < 3; i++ {
		PricePromo(promo, dec("20.00"), time.Now())
	}

	assert.Equal(t, 2, promo.UsedCount)
}
