package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to confirmed", OrderPending, OrderConfirmed, true},
		{"confirmed to processing", OrderConfirmed, OrderProcessing, true},
		{"processing to shipped", OrderProcessing, OrderShipped, true},
		{"shipped to delivered", OrderShipped, OrderDelivered, true},
		{"skip ahead pending to shipped", OrderPending, OrderShipped, true},
		{"backwards shipped to pending", OrderShipped, OrderPending, false},
		{"backwards delivered to shipped", OrderDelivered, OrderShipped, false},
		{"same status", OrderConfirmed, OrderConfirmed, false},
		{"cancel from pending", OrderPending, OrderCancelled, true},
		{"cancel from shipped", OrderShipped, OrderCancelled, true},
		{"cancel from delivered", OrderDelivered, OrderCancelled, false},
		{"cancel from cancelled", OrderCancelled, OrderCancelled, false},
		{"revive cancelled", OrderCancelled, OrderPending, false},
		{"unknown from", "refunded", OrderShipped, false},
		{"unknown to", OrderPending, "refunded", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}
