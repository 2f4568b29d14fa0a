package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/farmly/farm-market-api/config"
	"github.com/farmly/farm-market-api/middleware"
	"github.com/farmly/farm-market-api/models"
	"github.com/farmly/farm-market-api/services"
	"github.com/gin-gonic/gin"
)

// lowStockThreshold flags products the owner should restock
const lowStockThreshold = 5

// loadOrders reads every order with its items. A storage failure degrades to
// an empty set so the dashboards render zero states instead of an error
// banner; the failure is logged, not propagated.
func loadOrders(includeItems bool) []models.Order {
	db := config.GetDB()
	query := db.Order("date DESC")
	if includeItems {
		query = query.Preload("Items")
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		log.Printf("dashboard: failed to read orders, showing empty stats: %v", err)
		return nil
	}
	return orders
}

// AdminDashboard handles GET /api/v1/admin/dashboard - platform-level
// financial rollup with a per-farm breakdown. Platform earnings are the sum
// of farm commissions.
func AdminDashboard(c *gin.Context) {
	db := config.GetDB()

	orders := loadOrders(true)
	catalog := services.LoadCatalog(db)

	var farms []models.Farm
	if err := db.Find(&farms).Error; err != nil {
		log.Printf("dashboard: failed to read farms, showing empty stats: %v", err)
		farms = nil
	}

	// Optional period filter
	if period := c.Query("period"); period != "" {
		if !services.ValidPeriod(period) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_PERIOD",
					"message": "Period must be week, month, quarter or year",
				},
			})
			return
		}
		start, end := services.PeriodRange(services.Period(period), time.Now())
		orders = services.OrdersInRange(orders, start, end)
	}

	stats := services.PlatformRevenue(orders, farms, catalog, services.CommissionRate)

	var pendingCount int64
	if err := db.Model(&models.SubmittedProduct{}).
		Where("status = ?", models.ProductPending).
		Count(&pendingCount).Error; err != nil {
		log.Printf("dashboard: failed to count pending products: %v", err)
		pendingCount = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"stats":             stats,
			"farm_count":        len(farms),
			"pending_approvals": pendingCount,
		},
	})
}

// OwnerDashboard handles GET /api/v1/owner/dashboard - the calling owner's
// farm rollup for a reporting period, with growth against the previous
// period, top products and a low-stock list.
func OwnerDashboard(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	var farm models.Farm
	if err := db.Where("owner_email = ?", identity.Email).First(&farm).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FARM_NOT_FOUND",
				"message": "Farm profile not found. Please register a farm first.",
			},
		})
		return
	}

	period := c.DefaultQuery("period", string(services.PeriodMonth))
	if !services.ValidPeriod(period) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PERIOD",
				"message": "Period must be week, month, quarter or year",
			},
		})
		return
	}

	orders := loadOrders(true)
	catalog := services.LoadCatalog(db)
	roster := services.FarmRoster(catalog, farm.ID)

	now := time.Now()
	currentStart, currentEnd := services.PeriodRange(services.Period(period), now)
	previousStart, previousEnd := services.PreviousPeriodRange(services.Period(period), now)

	current := services.FarmRevenue(services.OrdersInRange(orders, currentStart, currentEnd), &farm, roster, services.CommissionRate)
	previous := services.FarmRevenue(services.OrdersInRange(orders, previousStart, previousEnd), &farm, roster, services.CommissionRate)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"period": period,
			"stats":  current,
			"growth": gin.H{
				"revenue":   services.Growth(current.TotalRevenue, previous.TotalRevenue),
				"orders":    services.GrowthCount(current.TotalOrders, previous.TotalOrders),
				"customers": services.GrowthCount(current.Customers, previous.Customers),
			},
			"revenue_by_category": services.CategoryRevenue(services.OrdersInRange(orders, currentStart, currentEnd), catalog, &farm, roster),
			"low_stock":           services.LowStock(catalog, farm.ID, lowStockThreshold),
		},
	})
}
