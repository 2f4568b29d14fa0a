package services

import (
	"testing"

	"github.com/farmly/farm-market-api/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func TestResolveFarmItem(t *testing.T) {
	farm := &models.Farm{ID: "farm-1", Name: "Green Acres"}
	roster := map[string]bool{"prod-1": true}

	tests := []struct {
		name       string
		item       models.OrderItem
		wantMatch  AttributionMatch
		attributed bool
	}{
		{
			name:       "roster match",
			item:       models.OrderItem{ProductID: "prod-1"},
			wantMatch:  MatchProductID,
			attributed: true,
		},
		{
			name:       "roster wins over conflicting farm id",
			item:       models.OrderItem{ProductID: "prod-1", FarmID: strPtr("farm-2")},
			wantMatch:  MatchProductID,
			attributed: true,
		},
		{
			name:       "farm id match",
			item:       models.OrderItem{ProductID: "prod-9", FarmID: strPtr("farm-1")},
			wantMatch:  MatchFarmID,
			attributed: true,
		},
		{
			name:       "farm name fallback",
			item:       models.OrderItem{ProductID: "prod-9", FarmName: "Green Acres"},
			wantMatch:  MatchFarmName,
			attributed: true,
		},
		{
			name:       "no signal",
			item:       models.OrderItem{ProductID: "prod-9"},
			wantMatch:  MatchNone,
			attributed: false,
		},
		{
			name:       "wrong farm id and name",
			item:       models.OrderItem{ProductID: "prod-9", FarmID: strPtr("farm-2"), FarmName: "Sunny Fields"},
			wantMatch:  MatchNone,
			attributed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attributed, match := ResolveFarmItem(tt.item, farm, roster)
			assert.Equal(t, tt.attributed, attributed)
			assert.Equal(t, tt.wantMatch, match)
		})
	}
}

func TestResolveFarmItemNilFarm(t *testing.T) {
	attributed, match := ResolveFarmItem(models.OrderItem{ProductID: "prod-1"}, nil, nil)
	assert.False(t, attributed)
	assert.Equal(t, MatchNone, match)
}

func TestAttributionMatchString(t *testing.T) {
	assert.Equal(t, "product_id", MatchProductID.String())
	assert.Equal(t, "farm_id", MatchFarmID.String())
	assert.Equal(t, "farm_name", MatchFarmName.String())
	assert.Equal(t, "none", MatchNone.String())
}
