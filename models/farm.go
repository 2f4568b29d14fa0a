package models

import (
	"time"

	"gorm.io/gorm"
)

// Farm statuses
const (
	FarmActive    = "active"
	FarmSuspended = "suspended"
	FarmInactive  = "inactive"
)

// Farm represents a registered farm and its owner. One owner record maps 1:1
// to a storefront farm identity; products and orders reference it by farm id,
// with a fallback match by farm name when the id is absent.
type Farm struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null;index" json:"name"`
	Type           string         `json:"type"` // e.g. "organic", "dairy", "mixed"
	Location       string         `json:"location"`
	AvatarKey      *string        `json:"avatar_key,omitempty"`
	AvatarURL      *string        `gorm:"-" json:"avatar_url,omitempty"` // computed field, presigned URL for avatar
	OwnerFirstName string         `gorm:"not null" json:"owner_first_name"`
	OwnerLastName  string         `gorm:"not null" json:"owner_last_name"`
	OwnerEmail     string         `gorm:"uniqueIndex;not null" json:"owner_email"`
	OwnerPhone     string         `json:"owner_phone"`
	Status         string         `gorm:"not null;default:'active'" json:"status"`
	RegisteredAt   time.Time      `json:"registered_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Farm model
func (Farm) TableName() string {
	return "farms"
}
