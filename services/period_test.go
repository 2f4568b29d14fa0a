package services

import (
	"testing"
	"time"

	"github.com/farmly/farm-market-api/models"
	"github.com/stretchr/testify/assert"
)

func TestValidPeriod(t *testing.T) {
	assert.True(t, ValidPeriod("week"))
	assert.True(t, ValidPeriod("month"))
	assert.True(t, ValidPeriod("quarter"))
	assert.True(t, ValidPeriod("year"))
	assert.False(t, ValidPeriod("day"))
	assert.False(t, ValidPeriod(""))
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2026, time.August, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		period    Period
		wantStart time.Time
	}{
		{PeriodWeek, now.AddDate(0, 0, -7)},
		{PeriodMonth, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodQuarter, time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodYear, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			start, end := PeriodRange(tt.period, now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, now, end)
		})
	}
}

func TestPreviousPeriodRange(t *testing.T) {
	now := time.Date(2026, time.August, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		period    Period
		wantStart time.Time
		wantEnd   time.Time
	}{
		{PeriodWeek, now.AddDate(0, 0, -14), now.AddDate(0, 0, -7)},
		// The previous month is the full calendar month, not a rolling 30 days
		{PeriodMonth,
			time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodQuarter,
			time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodYear,
			time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			start, end := PreviousPeriodRange(tt.period, now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestQuarterStartBoundaries(t *testing.T) {
	tests := []struct {
		month time.Month
		want  time.Month
	}{
		{time.January, time.January},
		{time.March, time.January},
		{time.April, time.April},
		{time.June, time.April},
		{time.July, time.July},
		{time.October, time.October},
		{time.December, time.October},
	}

	for _, tt := range tests {
		now := time.Date(2026, tt.month, 15, 0, 0, 0, 0, time.UTC)
		start, _ := PeriodRange(PeriodQuarter, now)
		assert.Equal(t, tt.want, start.Month())
	}
}

func TestOrdersInRange(t *testing.T) {
	start := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	orders := []models.Order{
		{ID: "before", Date: start.Add(-time.Hour)},
		{ID: "at-start", Date: start},
		{ID: "inside", Date: start.AddDate(0, 0, 10)},
		{ID: "at-end", Date: end},
	}

	filtered := OrdersInRange(orders, start, end)

	assert.Len(t, filtered, 2)
	assert.Equal(t, "at-start", filtered[0].ID)
	assert.Equal(t, "inside", filtered[1].ID)
}

func TestGrowth(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		previous string
		want     float64
	}{
		{"both zero", "0", "0", 0},
		{"from zero base", "5", "0", 100},
		{"fifty percent up", "150", "100", 50},
		{"decline", "50", "100", -50},
		{"to zero", "0", "100", -100},
		{"flat", "100", "100", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Growth(dec(tt.current), dec(tt.previous))
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestGrowthCount(t *testing.T) {
	assert.InDelta(t, 100.0, GrowthCount(3, 0), 0.0001)
	assert.InDelta(t, 0.0, GrowthCount(0, 0), 0.0001)
	assert.InDelta(t, -25.0, GrowthCount(3, 4), 0.0001)
}
