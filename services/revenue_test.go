package services

import (
	"testing"

	"github.com/farmly/farm-market-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testOrder(status, email string, items ...models.OrderItem) models.Order {
	order := models.Order{
		Status: status,
		Items:  items,
	}
	order.Delivery.Address.Email = email
	return order
}

func TestFarmRevenueDeliveredOnly(t *testing.T) {
	farm := &models.Farm{ID: "farm-1", Name: "Green Acres"}
	roster := map[string]bool{"prod-1": true, "prod-2": true}

	orders := []models.Order{
		testOrder(models.OrderDelivered, "a@example.com",
			models.OrderItem{ProductID: "prod-1", Name: "Tomatoes", Price: dec("3.50"), Quantity: 4},
		),
		testOrder(models.OrderShipped, "b@example.com",
			models.OrderItem{ProductID: "prod-1", Name: "Tomatoes", Price: dec("3.50"), Quantity: 10},
		),
		testOrder(models.OrderCancelled, "c@example.com",
			models.OrderItem{ProductID: "prod-2", Name: "Eggs", Price: dec("5.00"), Quantity: 2},
		),
	}

	stats := FarmRevenue(orders, farm, roster, CommissionRate)

	// Only the delivered order contributes revenue
	assert.True(t, dec("14.00").Equal(stats.TotalRevenue), "got %s", stats.TotalRevenue)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 1, stats.DeliveredOrders)
	assert.Equal(t, 1, stats.OrdersByStatus[models.OrderShipped])
	assert.Equal(t, 1, stats.OrdersByStatus[models.OrderCancelled])
}

func TestFarmRevenueCommission(t *testing.T) {
	farm := &models.Farm{ID: "farm-1", Name: "Green Acres"}
	roster := map[string]bool{"prod-1": true}

	orders := []models.Order{
		testOrder(models.OrderDelivered, "a@example.com",
			models.OrderItem{ProductID: "prod-1", Name: "Tomatoes", Price: dec("19.99"), Quantity: 3},
		),
	}

	stats := FarmRevenue(orders, farm, roster, CommissionRate)

	assert.True(t, dec("59.97").Equal(stats.TotalRevenue), "got %s", stats.TotalRevenue)
	wantCommission := dec("59.97").Mul(CommissionRate).Round(2)
	assert.True(t, wantCommission.Equal(stats.Commission), "got %s", stats.Commission)
	assert.True(t, stats.TotalRevenue.Sub(stats.Commission).Equal(stats.NetEarnings))
}

func TestFarmRevenueIgnoresOtherFarms(t *testing.T) {
	farm := &models.Farm{ID: "farm-1", Name: "Green Acres"}
	roster := map[string]bool{"prod-1": true}

	orders := []models.Order{
		testOrder(models.OrderDelivered, "a@example.com",
			models.OrderItem{ProductID: "prod-1", Name: "Tomatoes", Price: dec("2.00"), Quantity: 1},
			models.OrderItem{ProductID: "prod-9", Name: "Honey", Price: dec("8.00"), Quantity: 1, FarmID: strPtr("farm-2")},
		),
	}

	stats := FarmRevenue(orders, farm, roster, CommissionRate)
	assert.True(t, dec("2.00").Equal(stats.TotalRevenue), "got %s", stats.TotalRevenue)
}

func TestFarmRevenueDistinctCustomers(t *testing.T) {
	farm := &models.Farm{ID: "farm-1", Name: "Green Acres"}

	orders := []models.Order{
		testOrder(models.OrderDelivered, "a@example.com"),
		testOrder(models.OrderPending, "a@example.com"),
		testOrder(models.OrderShipped, "b@example.com"),
		testOrder(models.OrderPending, ""),
	}

	stats := FarmRevenue(orders, farm, nil, CommissionRate)
	assert.Equal(t, 2, stats.Customers)
}

func TestFarmRevenueTopProducts(t *testing.T) {
	farm := &models.Farm{ID: "farm-1", Name: "Green Acres"}
	roster := map[string]bool{"prod-1": true, "prod-2": true, "prod-3": true}

	orders := []models.Order{
		testOrder(models.OrderDelivered, "a@example.com",
			models.OrderItem{ProductID: "prod-1", Name: "Tomatoes", Price: dec("3.00"), Quantity: 2},
			models.OrderItem{ProductID: "prod-2", Name: "Eggs", Price: dec("5.00"), Quantity: 6},
		),
		testOrder(models.OrderDelivered, "b@example.com",
			models.OrderItem{ProductID: "prod-1", Name: "Tomatoes", Price: dec("3.00"), Quantity: 1},
			models.OrderItem{ProductID: "prod-3", Name: "Apples", Price: dec("1.50"), Quantity: 3},
		),
	}

	stats := FarmRevenue(orders, farm, roster, CommissionRate)

	assert.Len(t, stats.TopProducts, 3)
	assert.Equal(t, "Eggs", stats.TopProducts[0].Name)
	assert.Equal(t, 6, stats.TopProducts[0].QuantitySold)
	// prod-1 and prod-3 both sold 3, ties break by name
	assert.Equal(t, "Apples", stats.TopProducts[1].Name)
	assert.Equal(t, "Tomatoes", stats.TopProducts[2].Name)
	assert.Equal(t, 3, stats.TopProducts[2].QuantitySold)
}

func TestFarmRevenueRecomputeIsStable(t *testing.T) {
	farm := &models.Farm{ID: "farm-1", Name: "Green Acres"}
	roster := map[string]bool{"prod-1": true}

	orders := []models.Order{
		testOrder(models.OrderDelivered, "a@example.com",
			models.OrderItem{ProductID: "prod-1", Name: "Tomatoes", Price: dec("7.77"), Quantity: 3},
		),
		testOrder(models.OrderConfirmed, "b@example.com",
			models.OrderItem{ProductID: "prod-1", Name: "Tomatoes", Price: dec("7.77"), Quantity: 1},
		),
	}

	first := FarmRevenue(orders, farm, roster, CommissionRate)
	second := FarmRevenue(orders, farm, roster, CommissionRate)

	assert.True(t, first.TotalRevenue.Equal(second.TotalRevenue))
	assert.True(t, first.Commission.Equal(second.Commission))
	assert.Equal(t, first.TotalOrders, second.TotalOrders)
	assert.Equal(t, first.Customers, second.Customers)
}

func TestFarmRevenueEmpty(t *testing.T) {
	farm := &models.Farm{ID: "farm-1", Name: "Green Acres"}

	stats := FarmRevenue(nil, farm, nil, CommissionRate)

	assert.True(t, stats.TotalRevenue.IsZero())
	assert.True(t, stats.Commission.IsZero())
	assert.Equal(t, 0, stats.TotalOrders)
	assert.Equal(t, 0, stats.Customers)
	assert.Empty(t, stats.TopProducts)
}

func TestPlatformRevenueSumsFarmCommissions(t *testing.T) {
	farms := []models.Farm{
		{ID: "farm-1", Name: "Green Acres"},
		{ID: "farm-2", Name: "Sunny Fields"},
	}
	catalog := []models.Product{
		{ID: "prod-1", Name: "Tomatoes", FarmID: strPtr("farm-1")},
		{ID: "prod-2", Name: "Honey", FarmID: strPtr("farm-2")},
	}

	orders := []models.Order{
		testOrder(models.OrderDelivered, "a@example.com",
			models.OrderItem{ProductID: "prod-1", Name: "Tomatoes", Price: dec("10.00"), Quantity: 2},
			models.OrderItem{ProductID: "prod-2", Name: "Honey", Price: dec("8.00"), Quantity: 1},
		),
		testOrder(models.OrderDelivered, "b@example.com",
			models.OrderItem{ProductID: "prod-2", Name: "Honey", Price: dec("8.00"), Quantity: 3},
		),
	}

	stats := PlatformRevenue(orders, farms, catalog, CommissionRate)

	assert.Len(t, stats.Farms, 2)
	var sum decimal.Decimal
	for _, line := range stats.Farms {
		sum = sum.Add(line.Commission)
	}
	assert.True(t, sum.Equal(stats.Commission), "platform commission %s != sum of farm commissions %s", stats.Commission, sum)

	// Farms sorted by revenue, highest first
	assert.Equal(t, "farm-2", stats.Farms[0].FarmID)
	assert.True(t, dec("32.00").Equal(stats.Farms[0].Revenue))
	assert.True(t, dec("20.00").Equal(stats.Farms[1].Revenue))

	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 2, stats.DeliveredOrders)
	assert.Equal(t, 2, stats.Customers)
}

func TestCategoryRevenue(t *testing.T) {
	farm := &models.Farm{ID: "farm-1", Name: "Green Acres"}
	roster := map[string]bool{"prod-1": true, "prod-2": true, "prod-3": true}
	farmID := "farm-1"
	catalog := []models.Product{
		{ID: "prod-1", Category: models.CategoryFruit, FarmID: &farmID},
		{ID: "prod-2", Category: models.CategoryFruit, FarmID: &farmID},
		{ID: "prod-3", Category: models.CategoryDairy, FarmID: &farmID},
	}

	orders := []models.Order{
		testOrder(models.OrderDelivered, "a@example.com",
			models.OrderItem{ProductID: "prod-1", Name: "Apples", Price: dec("4.00"), Quantity: 2},
			models.OrderItem{ProductID: "prod-3", Name: "Milk", Price: dec("3.00"), Quantity: 1},
		),
		testOrder(models.OrderDelivered, "b@example.com",
			models.OrderItem{ProductID: "prod-2", Name: "Pears", Price: dec("2.50"), Quantity: 2},
		),
		// Shipped orders contribute nothing
		testOrder(models.OrderShipped, "c@example.com",
			models.OrderItem{ProductID: "prod-1", Name: "Apples", Price: dec("4.00"), Quantity: 10},
		),
	}

	lines := CategoryRevenue(orders, catalog, farm, roster)

	assert.Len(t, lines, 2)
	assert.Equal(t, models.CategoryFruit, lines[0].Category)
	assert.True(t, dec("13.00").Equal(lines[0].Revenue), "got %s", lines[0].Revenue)
	assert.Equal(t, models.CategoryDairy, lines[1].Category)
	assert.True(t, dec("3.00").Equal(lines[1].Revenue), "got %s", lines[1].Revenue)
}

func TestCategoryRevenueEmpty(t *testing.T) {
	farm := &models.Farm{ID: "farm-1"}
	assert.Empty(t, CategoryRevenue(nil, nil, farm, map[string]bool{}))
}

func TestLowStock(t *testing.T) {
	catalog := []models.Product{
		{ID: "prod-1", Name: "Tomatoes", FarmID: strPtr("farm-1"), Stock: 3},
		{ID: "prod-2", Name: "Eggs", FarmID: strPtr("farm-1"), Stock: 20},
		{ID: "prod-3", Name: "Apples", FarmID: strPtr("farm-1"), Stock: 0},
		{ID: "prod-4", Name: "Honey", FarmID: strPtr("farm-2"), Stock: 1},
		{ID: "prod-5", Name: "Seeds", Stock: 2},
	}

	low := LowStock(catalog, "farm-1", 5)

	assert.Len(t, low, 2)
	assert.Equal(t, "Apples", low[0].Name)
	assert.Equal(t, "Tomatoes", low[1].Name)
}
