package services

import (
	"time"

	"github.com/farmly/farm-market-api/models"
	"github.com/shopspring/decimal"
)

// Period is a dashboard reporting window
type Period string

// Reporting periods. Week is a rolling 7 days; month, quarter and year run
// from the start of the current calendar unit to now.
const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// ValidPeriod reports whether the string names a known reporting period.
func ValidPeriod(p string) bool {
	switch Period(p) {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}
	return false
}

// PeriodRange returns the current reporting window [start, end) ending now.
func PeriodRange(p Period, now time.Time) (time.Time, time.Time) {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), now
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now
	case PeriodQuarter:
		return quarterStart(now), now
	case PeriodYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), now
	}
	return now, now
}

// PreviousPeriodRange returns the window immediately preceding the current
// one: the full prior calendar unit for month, quarter and year, and the 7
// days before the rolling window for week. The previous month is the full
// prior calendar month, not a rolling 30 days.
func PreviousPeriodRange(p Period, now time.Time) (time.Time, time.Time) {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -14), now.AddDate(0, 0, -7)
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start.AddDate(0, -1, 0), start
	case PeriodQuarter:
		start := quarterStart(now)
		return start.AddDate(0, -3, 0), start
	case PeriodYear:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start.AddDate(-1, 0, 0), start
	}
	return now, now
}

func quarterStart(now time.Time) time.Time {
	startMonth := time.Month(((int(now.Month())-1)/3)*3 + 1)
	return time.Date(now.Year(), startMonth, 1, 0, 0, 0, 0, now.Location())
}

// OrdersInRange filters orders to those dated within [start, end).
func OrdersInRange(orders []models.Order, start, end time.Time) []models.Order {
	filtered := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if !order.Date.Before(start) && order.Date.Before(end) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// Growth returns the period-over-period change in percent. Division by zero
// is avoided by policy: any revenue from a zero base counts as +100% growth,
// and zero to zero is 0% growth.
func Growth(current, previous decimal.Decimal) float64 {
	if previous.IsPositive() {
		return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	if current.IsPositive() {
		return 100
	}
	return 0
}

// GrowthCount is Growth over integer counts (order counts, customer counts).
func GrowthCount(current, previous int) float64 {
	return Growth(decimal.NewFromInt(int64(current)), decimal.NewFromInt(int64(previous)))
}
