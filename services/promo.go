package services

import (
	"time"

	"github.com/farmly/farm-market-api/models"
	"github.com/shopspring/decimal"
)

// PromoResult is the outcome of pricing a promo code against a cart subtotal.
type PromoResult struct {
	Valid        bool            `json:"valid"`
	Discount     decimal.Decimal `json:"discount"`
	FreeShipping bool            `json:"free_shipping"`
	Message      string          `json:"message,omitempty"`
}

// PricePromo validates a promo code against a subtotal and computes the
// discount. Validation short-circuits, first failure wins: code active →
// not yet started → expired → below minimum order → usage exhausted.
//
// Discounts: percentage takes value% of the subtotal; fixed is clamped to the
// subtotal so the discount never exceeds it; free_shipping carries no
// monetary discount and instead flags the delivery fee to zero downstream.
//
// Pricing never mutates the code. Usage is counted once per order at
// checkout, so previewing a code repeatedly cannot inflate its used count.
func PricePromo(promo *models.PromoCode, subtotal decimal.Decimal, now time.Time) PromoResult {
	invalid := func(message string) PromoResult {
		return PromoResult{Valid: false, Discount: decimal.Zero, Message: message}
	}

	if promo == nil {
		return invalid("Invalid promo code")
	}

	switch promo.EffectiveStatus(now) {
	case models.PromoDisabled:
		return invalid("Invalid promo code")
	case models.PromoScheduled:
		return invalid("This promo code is not active yet")
	case models.PromoExpired:
		return invalid("This promo code has expired")
	}

	if promo.MinOrder != nil && subtotal.LessThan(*promo.MinOrder) {
		return invalid("Order subtotal is below the minimum for this promo code")
	}
	if promo.MaxUses != nil && promo.UsedCount >= *promo.MaxUses {
		return invalid("This promo code has reached its usage limit")
	}

	result := PromoResult{Valid: true, Discount: decimal.Zero}
	switch promo.Type {
	case models.PromoPercentage:
		result.Discount = subtotal.Mul(promo.Value).Div(decimal.NewFromInt(100)).Round(2)
	case models.PromoFixed:
		result.Discount = decimal.Min(promo.Value, subtotal)
	case models.PromoFreeShipping:
		result.FreeShipping = true
	}

	return result
}
