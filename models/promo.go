package models

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Promo code types
const (
	PromoPercentage   = "percentage"
	PromoFixed        = "fixed"
	PromoFreeShipping = "free_shipping"
)

// Derived promo statuses. The status is never stored; it is computed from the
// enabled flag and the date window so a code can never stay "active" past its
// expiry.
const (
	PromoActive    = "active"
	PromoScheduled = "scheduled"
	PromoExpired   = "expired"
	PromoDisabled  = "disabled"
)

var promoCodePattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// PromoCode represents a discount code redeemable at checkout
type PromoCode struct {
	ID         string           `gorm:"primaryKey" json:"id"`
	Code       string           `gorm:"uniqueIndex;not null" json:"code"` // uppercase alphanumeric
	Type       string           `gorm:"not null" json:"type"`
	Value      decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"value"`
	MinOrder   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"min_order,omitempty"`
	MaxUses    *int             `json:"max_uses,omitempty"`
	UsedCount  int              `gorm:"not null;default:0" json:"used_count"`
	StartDate  *time.Time       `json:"start_date,omitempty"`
	ExpiryDate *time.Time       `json:"expiry_date,omitempty"`
	Enabled    bool             `gorm:"not null;default:true" json:"enabled"`
	Status     string           `gorm:"-" json:"status,omitempty"` // computed via EffectiveStatus
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// TableName specifies the table name for the PromoCode model
func (PromoCode) TableName() string {
	return "promo_codes"
}

// EffectiveStatus derives the lifecycle status of the code at the given time.
func (p *PromoCode) EffectiveStatus(now time.Time) string {
	if !p.Enabled {
		return PromoDisabled
	}
	if p.StartDate != nil && now.Before(*p.StartDate) {
		return PromoScheduled
	}
	if p.ExpiryDate != nil && now.After(*p.ExpiryDate) {
		return PromoExpired
	}
	return PromoActive
}

// ValidPromoCode reports whether the code string is uppercase alphanumeric.
func ValidPromoCode(code string) bool {
	return promoCodePattern.MatchString(code)
}
