package services

import (
	"log"

	"github.com/farmly/farm-market-api/models"
)

// AttributionMatch identifies which signal attributed an order item to a farm.
type AttributionMatch int

const (
	MatchNone      AttributionMatch = iota
	MatchProductID                  // item's product id is in the farm's roster
	MatchFarmID                     // item carries the farm's id
	MatchFarmName                   // fallback: item carries the farm's display name
)

// String returns a short label for the match kind
func (m AttributionMatch) String() string {
	switch m {
	case MatchProductID:
		return "product_id"
	case MatchFarmID:
		return "farm_id"
	case MatchFarmName:
		return "farm_name"
	}
	return "none"
}

// ResolveFarmItem decides whether an order item belongs to the given farm.
// Signals are ranked: a roster match wins, then the item's farm id, then the
// farm name as a documented fallback for items tagged before the farm's
// roster was fully synced. Name-only matches are logged so the underlying
// records can be cleaned up. An item with no matching signal is attributed to
// no farm; that is not an error.
func ResolveFarmItem(item models.OrderItem, farm *models.Farm, roster map[string]bool) (bool, AttributionMatch) {
	if farm == nil {
		return false, MatchNone
	}
	if roster[item.ProductID] {
		return true, MatchProductID
	}
	if item.FarmID != nil && *item.FarmID == farm.ID {
		return true, MatchFarmID
	}
	if item.FarmName != "" && item.FarmName == farm.Name {
		log.Printf("attribution: item %s matched farm %s by name only, product should carry farm_id", item.ProductID, farm.ID)
		return true, MatchFarmName
	}
	return false, MatchNone
}

// IsFarmItem is the boolean form of ResolveFarmItem for callers that do not
// care which signal matched.
func IsFarmItem(item models.OrderItem, farm *models.Farm, roster map[string]bool) bool {
	attributed, _ := ResolveFarmItem(item, farm, roster)
	return attributed
}
