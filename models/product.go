package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product categories available in the storefront
const (
	CategoryFruit     = "fruit"
	CategoryVegetable = "vegetable"
	CategorySeed      = "seed"
	CategoryMeat      = "meat"
	CategoryEquipment = "equipment"
	CategoryDairy     = "dairy"
	CategoryGrains    = "grains"
)

// Product lifecycle statuses. Owner submissions start as pending; an admin
// either approves or rejects them, and may toggle active/inactive afterwards.
const (
	ProductPending  = "pending"
	ProductActive   = "active"
	ProductApproved = "approved"
	ProductRejected = "rejected"
	ProductInactive = "inactive"
)

// Product represents a catalog product in the admin-managed partition
type Product struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Category        string          `gorm:"not null;index" json:"category"`
	FarmID          *string         `gorm:"index" json:"farm_id"` // nil means platform-owned
	FarmName        string          `json:"farm_name,omitempty"`
	Status          string          `gorm:"not null;default:'pending'" json:"status"`
	RejectionReason *string         `json:"rejection_reason,omitempty"` // set when status is rejected
	Stock           int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	ImageKey        *string         `json:"image_key,omitempty"`
	ImageURL        *string         `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for image
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// SubmittedProduct is an owner-submitted product awaiting admin review.
// Submissions live in their own partition ("owner_products"); any consumer
// that needs the full catalog must union both partitions and de-duplicate by
// id (see services.MergeCatalog).
type SubmittedProduct struct {
	Product
}

// TableName specifies the table name for the owner submission partition
func (SubmittedProduct) TableName() string {
	return "owner_products"
}

// ValidCategory reports whether the given category is one of the storefront
// categories.
func ValidCategory(category string) bool {
	switch category {
	case CategoryFruit, CategoryVegetable, CategorySeed, CategoryMeat,
		CategoryEquipment, CategoryDairy, CategoryGrains:
		return true
	}
	return false
}

// Visible reports whether the product should appear on the public storefront.
func (p *Product) Visible() bool {
	return p.Status == ProductActive || p.Status == ProductApproved
}
