package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a storefront cart line for one user. Name, price and farm tags
// are snapshots taken when the product was added; checkout re-validates them
// against the live catalog.
type CartItem struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	UserID    string          `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID string          `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	FarmID    *string         `json:"farm_id,omitempty"`
	FarmName  string          `json:"farm_name,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the CartItem model
func (CartItem) TableName() string {
	return "cart_items"
}
