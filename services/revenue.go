package services

import (
	"sort"

	"github.com/farmly/farm-market-api/models"
	"github.com/shopspring/decimal"
)

// CommissionRate is the platform cut applied to delivered-order farm revenue.
// It is a platform-wide constant, not configurable per farm or promo.
var CommissionRate = decimal.NewFromFloat(0.15)

// ProductSales is a per-product sales rollup for a farm
type ProductSales struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// FarmStats is the financial rollup for one farm over a set of orders
type FarmStats struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	Commission      decimal.Decimal `json:"commission"`
	NetEarnings     decimal.Decimal `json:"net_earnings"`
	TotalOrders     int             `json:"total_orders"`
	DeliveredOrders int             `json:"delivered_orders"`
	OrdersByStatus  map[string]int  `json:"orders_by_status"`
	Customers       int             `json:"customers"`
	TopProducts     []ProductSales  `json:"top_products"`
}

// FarmRevenue folds a set of orders into financial totals for one farm.
//
// Revenue recognition: only delivered orders contribute to revenue,
// commission and net earnings. Every order in the set counts toward the order
// metrics regardless of status or attribution, so an order whose items match
// no farm still shows up in the counts. Customers is the distinct count of
// delivery emails across the whole set.
//
// The fold is pure and keeps no intermediate state; recomputing over the same
// orders always yields identical totals.
func FarmRevenue(orders []models.Order, farm *models.Farm, roster map[string]bool, rate decimal.Decimal) FarmStats {
	stats := FarmStats{
		TotalRevenue:   decimal.Zero,
		Commission:     decimal.Zero,
		NetEarnings:    decimal.Zero,
		OrdersByStatus: make(map[string]int),
		TopProducts:    make([]ProductSales, 0),
	}

	customers := make(map[string]bool)
	sales := make(map[string]*ProductSales)

	for _, order := range orders {
		stats.TotalOrders++
		stats.OrdersByStatus[order.Status]++
		if email := order.Delivery.Address.Email; email != "" {
			customers[email] = true
		}

		if order.Status != models.OrderDelivered {
			continue
		}
		stats.DeliveredOrders++

		for _, item := range order.Items {
			if !IsFarmItem(item, farm, roster) {
				continue
			}
			itemRevenue := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			stats.TotalRevenue = stats.TotalRevenue.Add(itemRevenue)

			if s, ok := sales[item.ProductID]; ok {
				s.QuantitySold += item.Quantity
				s.Revenue = s.Revenue.Add(itemRevenue)
			} else {
				sales[item.ProductID] = &ProductSales{
					ProductID:    item.ProductID,
					Name:         item.Name,
					QuantitySold: item.Quantity,
					Revenue:      itemRevenue,
				}
			}
		}
	}

	stats.Customers = len(customers)
	stats.Commission = stats.TotalRevenue.Mul(rate).Round(2)
	stats.TotalRevenue = stats.TotalRevenue.Round(2)
	stats.NetEarnings = stats.TotalRevenue.Sub(stats.Commission)

	for _, s := range sales {
		s.Revenue = s.Revenue.Round(2)
		stats.TopProducts = append(stats.TopProducts, *s)
	}
	sort.Slice(stats.TopProducts, func(i, j int) bool {
		if stats.TopProducts[i].QuantitySold != stats.TopProducts[j].QuantitySold {
			return stats.TopProducts[i].QuantitySold > stats.TopProducts[j].QuantitySold
		}
		return stats.TopProducts[i].Name < stats.TopProducts[j].Name
	})

	return stats
}

// FarmBreakdownLine is one farm's contribution in the platform rollup
type FarmBreakdownLine struct {
	FarmID      string          `json:"farm_id"`
	FarmName    string          `json:"farm_name"`
	Revenue     decimal.Decimal `json:"revenue"`
	Commission  decimal.Decimal `json:"commission"`
	NetEarnings decimal.Decimal `json:"net_earnings"`
	Orders      int             `json:"orders"`
}

// PlatformStats is the platform-level financial rollup for the admin console
type PlatformStats struct {
	TotalOrders     int                 `json:"total_orders"`
	DeliveredOrders int                 `json:"delivered_orders"`
	OrdersByStatus  map[string]int      `json:"orders_by_status"`
	GrossRevenue    decimal.Decimal     `json:"gross_revenue"`
	Commission      decimal.Decimal     `json:"commission"`
	Customers       int                 `json:"customers"`
	Farms           []FarmBreakdownLine `json:"farms"`
}

// PlatformRevenue computes the admin rollup across all farms. Platform
// earnings are the sum of each farm's commission, not the sum of order
// totals; summing order totals would double count items in multi-farm orders.
func PlatformRevenue(orders []models.Order, farms []models.Farm, catalog []models.Product, rate decimal.Decimal) PlatformStats {
	stats := PlatformStats{
		OrdersByStatus: make(map[string]int),
		GrossRevenue:   decimal.Zero,
		Commission:     decimal.Zero,
		Farms:          make([]FarmBreakdownLine, 0, len(farms)),
	}

	customers := make(map[string]bool)
	for _, order := range orders {
		stats.TotalOrders++
		stats.OrdersByStatus[order.Status]++
		if order.Status == models.OrderDelivered {
			stats.DeliveredOrders++
		}
		if email := order.Delivery.Address.Email; email != "" {
			customers[email] = true
		}
	}
	stats.Customers = len(customers)

	for i := range farms {
		farm := &farms[i]
		roster := FarmRoster(catalog, farm.ID)
		farmStats := FarmRevenue(orders, farm, roster, rate)

		stats.GrossRevenue = stats.GrossRevenue.Add(farmStats.TotalRevenue)
		stats.Commission = stats.Commission.Add(farmStats.Commission)
		stats.Farms = append(stats.Farms, FarmBreakdownLine{
			FarmID:      farm.ID,
			FarmName:    farm.Name,
			Revenue:     farmStats.TotalRevenue,
			Commission:  farmStats.Commission,
			NetEarnings: farmStats.NetEarnings,
			Orders:      ordersWithFarmItems(orders, farm, roster),
		})
	}

	sort.Slice(stats.Farms, func(i, j int) bool {
		return stats.Farms[i].Revenue.GreaterThan(stats.Farms[j].Revenue)
	})

	return stats
}

// ordersWithFarmItems counts orders containing at least one item attributed
// to the farm, independent of status.
func ordersWithFarmItems(orders []models.Order, farm *models.Farm, roster map[string]bool) int {
	count := 0
	for _, order := range orders {
		for _, item := range order.Items {
			if IsFarmItem(item, farm, roster) {
				count++
				break
			}
		}
	}
	return count
}

// CategorySales is a per-category revenue line for a farm
type CategorySales struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// CategoryRevenue folds delivered-order revenue for the farm into per-category
// lines, highest revenue first. Items whose product has left the catalog fall
// under the empty category.
func CategoryRevenue(orders []models.Order, catalog []models.Product, farm *models.Farm, roster map[string]bool) []CategorySales {
	categories := make(map[string]string, len(catalog))
	for _, p := range catalog {
		categories[p.ID] = p.Category
	}

	byCategory := make(map[string]decimal.Decimal)
	for _, order := range orders {
		if order.Status != models.OrderDelivered {
			continue
		}
		for _, item := range order.Items {
			if !IsFarmItem(item, farm, roster) {
				continue
			}
			category := categories[item.ProductID]
			itemRevenue := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			byCategory[category] = byCategory[category].Add(itemRevenue)
		}
	}

	lines := make([]CategorySales, 0, len(byCategory))
	for category, revenue := range byCategory {
		lines = append(lines, CategorySales{Category: category, Revenue: revenue.Round(2)})
	}
	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].Revenue.Equal(lines[j].Revenue) {
			return lines[i].Revenue.GreaterThan(lines[j].Revenue)
		}
		return lines[i].Category < lines[j].Category
	})
	return lines
}

// LowStock returns the catalog products belonging to the farm whose stock is
// at or below the threshold, lowest first.
func LowStock(catalog []models.Product, farmID string, threshold int) []models.Product {
	low := make([]models.Product, 0)
	for _, p := range catalog {
		if p.FarmID != nil && *p.FarmID == farmID && p.Stock <= threshold {
			low = append(low, p)
		}
	}
	sort.Slice(low, func(i, j int) bool {
		return low[i].Stock < low[j].Stock
	})
	return low
}
