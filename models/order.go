package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. The lifecycle moves forward only; cancelled is reachable
// from any non-terminal state. Orders are never deleted, only status-flagged.
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Delivery options
const (
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
)

// Payment methods
const (
	PaymentCash    = "cash"
	PaymentDigital = "digital"
	PaymentCard    = "card"
)

// statusRank positions each status in the forward lifecycle. Cancelled sits
// outside the chain and is handled separately.
var statusRank = map[string]int{
	OrderPending:    0,
	OrderConfirmed:  1,
	OrderProcessing: 2,
	OrderShipped:    3,
	OrderDelivered:  4,
}

// CanTransition reports whether an order may move from one status to another.
// Forward moves through the lifecycle are allowed; cancellation is allowed
// from any non-terminal state.
func CanTransition(from, to string) bool {
	if from == OrderDelivered || from == OrderCancelled {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// Address is the delivery destination captured at checkout. The email doubles
// as the customer identifier for distinct-customer metrics.
type Address struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	Region   string `json:"region"`
}

// Delivery holds the destination and the priced delivery option
type Delivery struct {
	Address Address         `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Option  string          `json:"option"` // standard or express
	Fee     decimal.Decimal `gorm:"type:decimal(12,2)" json:"fee"`
}

// Totals is the priced breakdown of an order.
// Invariant: Total = Subtotal + Delivery + Tax - Discount, clamped >= 0.
type Totals struct {
	Subtotal decimal.Decimal `gorm:"type:decimal(12,2)" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"type:decimal(12,2)" json:"tax"`
	Delivery decimal.Decimal `gorm:"type:decimal(12,2)" json:"delivery"`
	Discount decimal.Decimal `gorm:"type:decimal(12,2)" json:"discount"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
}

// Order represents a checkout result. Orders are created once and thereafter
// mutated only via status transitions.
type Order struct {
	ID            string      `gorm:"primaryKey" json:"id"`
	UserID        *string     `gorm:"index" json:"user_id,omitempty"` // nil for guest checkout
	Date          time.Time   `gorm:"not null;index" json:"date"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Status        string      `gorm:"not null;default:'pending';index" json:"status"`
	Delivery      Delivery    `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery"`
	Totals        Totals      `gorm:"embedded;embeddedPrefix:totals_" json:"totals"`
	PaymentMethod string      `gorm:"not null" json:"payment_method"`
	PromoCode     *string     `json:"promo_code,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line item snapshot taken at checkout. The farm tags are
// best-effort: items added to a cart before a farm's roster was fully synced
// may carry only the farm name, or no farm signal at all.
type OrderItem struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	OrderID   string          `gorm:"not null;index" json:"order_id"`
	ProductID string          `gorm:"not null;index" json:"product_id"`
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	FarmID    *string         `json:"farm_id,omitempty"`
	FarmName  string          `json:"farm_name,omitempty"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
