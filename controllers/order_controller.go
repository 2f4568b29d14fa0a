package controllers

import (
	"net/http"

	"github.com/farmly/farm-market-api/config"
	"github.com/farmly/farm-market-api/middleware"
	"github.com/farmly/farm-market-api/models"
	"github.com/farmly/farm-market-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateOrderStatusRequest represents the request body for a status
// transition
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// visibleOrders returns the orders the caller may see: customers their own,
// owners the orders containing their farm's items, admins everything.
func visibleOrders(c *gin.Context, identity middleware.Identity) ([]models.Order, bool) {
	db := config.GetDB()

	var orders []models.Order
	query := db.Preload("Items").Order("date DESC")

	switch identity.Role {
	case middleware.RoleAdmin:
		// no filter
	case middleware.RoleOwner:
		// Owner visibility needs attribution against the farm, resolved
		// below after loading
	default:
		query = query.Where("user_id = ?", identity.UserID)
	}

	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return nil, false
	}

	if identity.Role != middleware.RoleOwner {
		return orders, true
	}

	var farm models.Farm
	if err := db.Where("owner_email = ?", identity.Email).First(&farm).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FARM_NOT_FOUND",
				"message": "Farm profile not found. Please register a farm first.",
			},
		})
		return nil, false
	}

	catalog := services.LoadCatalog(db)
	roster := services.FarmRoster(catalog, farm.ID)

	filtered := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		for _, item := range order.Items {
			if services.IsFarmItem(item, &farm, roster) {
				filtered = append(filtered, order)
				break
			}
		}
	}
	return filtered, true
}

// ownerOrderAttributed reports whether at least one item in the order is
// attributed to the farm owned by the given email.
func ownerOrderAttributed(db *gorm.DB, email string, order models.Order) bool {
	var farm models.Farm
	if err := db.Where("owner_email = ?", email).First(&farm).Error; err != nil {
		return false
	}

	catalog := services.LoadCatalog(db)
	roster := services.FarmRoster(catalog, farm.ID)
	for _, item := range order.Items {
		if services.IsFarmItem(item, &farm, roster) {
			return true
		}
	}
	return false
}

// ListOrders handles GET /api/v1/orders - paginated orders, newest first,
// scoped by role
func ListOrders(c *gin.Context) {
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

	orders, ok := visibleOrders(c, identity)
	if !ok {
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := make([]models.Order, 0, len(orders))
		for _, order := range orders {
			if order.Status == status {
				filtered = append(filtered, order)
			}
		}
		orders = filtered
	}

	page, limit := pageParams(c)
	total := int64(len(orders))
	start := (page - 1) * limit
	if start > len(orders) {
		start = len(orders)
	}
	end := start + limit
	if end > len(orders) {
		end = len(orders)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       orders[start:end],
		"pagination": paginationData(page, limit, total),
	})
}

// GetOrder handles GET /api/v1/orders/:id - a single order, same visibility
// rules as the listing
func GetOrder(c *gin.Context) {
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
	var order models.Order
	if err := db.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	canView := false
	switch identity.Role {
	case middleware.RoleAdmin:
		canView = true
	case middleware.RoleOwner:
		canView = ownerOrderAttributed(db, identity.Email, order)
	default:
		canView = order.UserID != nil && *order.UserID == identity.UserID
	}

	if !canView {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to access this order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - moves an order
// forward through its lifecycle or cancels it. Admins and owners can apply
// any valid transition; customers can only cancel their own orders.
func UpdateOrderStatus(c *gin.Context) {
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

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	switch identity.Role {
	case middleware.RoleAdmin:
	case middleware.RoleOwner:
		// Owners may only move orders containing their farm's items
		if !ownerOrderAttributed(db, identity.Email, order) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "You do not have permission to change this order",
				},
			})
			return
		}
	default:
		// Customers may only cancel their own orders
		ownOrder := order.UserID != nil && *order.UserID == identity.UserID
		if !ownOrder || req.Status != models.OrderCancelled {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "You do not have permission to change this order",
				},
			})
			return
		}
	}

	if !models.CanTransition(order.Status, req.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Order cannot move from " + order.Status + " to " + req.Status,
			},
		})
		return
	}

	if err := db.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	order.Status = req.Status

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
