package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/farmly/farm-market-api/config"
	"github.com/farmly/farm-market-api/models"
	"github.com/farmly/farm-market-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePromoRequest represents the request body for creating a promo code
type CreatePromoRequest struct {
	Code       string           `json:"code" binding:"required"`
	Type       string           `json:"type" binding:"required"`
	Value      decimal.Decimal  `json:"value"`
	MinOrder   *decimal.Decimal `json:"min_order"`
	MaxUses    *int             `json:"max_uses"`
	StartDate  *time.Time       `json:"start_date"`
	ExpiryDate *time.Time       `json:"expiry_date"`
}

// ApplyPromoRequest represents the request body for pricing a promo code
// against a cart subtotal
type ApplyPromoRequest struct {
	Code     string          `json:"code" binding:"required"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CreatePromo handles POST /api/v1/admin/promos - creates a promo code
func CreatePromo(c *gin.Context) {
	var req CreatePromoRequest
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

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if !models.ValidPromoCode(code) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CODE",
				"message": "Promo codes must be uppercase letters and digits",
			},
		})
		return
	}

	switch req.Type {
	case models.PromoPercentage:
		if req.Value.IsNegative() || req.Value.GreaterThan(decimal.NewFromInt(100)) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_VALUE",
					"message": "Percentage value must be between 0 and 100",
				},
			})
			return
		}
	case models.PromoFixed:
		if !req.Value.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_VALUE",
					"message": "Fixed discount value must be positive",
				},
			})
			return
		}
	case models.PromoFreeShipping:
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TYPE",
				"message": "Type must be percentage, fixed or free_shipping",
			},
		})
		return
	}

	if req.StartDate != nil && req.ExpiryDate != nil && req.ExpiryDate.Before(*req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DATE_RANGE",
				"message": "Expiry date must not be before start date",
			},
		})
		return
	}

	promo := models.PromoCode{
		ID:         uuid.NewString(),
		Code:       code,
		Type:       req.Type,
		Value:      req.Value,
		MinOrder:   req.MinOrder,
		MaxUses:    req.MaxUses,
		StartDate:  req.StartDate,
		ExpiryDate: req.ExpiryDate,
		Enabled:    true,
	}

	db := config.GetDB()
	if err := db.Create(&promo).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CODE_EXISTS",
				"message": "A promo code with this code already exists",
			},
		})
		return
	}

	promo.Status = promo.EffectiveStatus(time.Now())

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    promo,
	})
}

// ListPromos handles GET /api/v1/admin/promos - all codes with their derived
// status
func ListPromos(c *gin.Context) {
	db := config.GetDB()

	var promos []models.PromoCode
	if err := db.Order("created_at DESC").Find(&promos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch promo codes",
			},
		})
		return
	}

	// Status is derived, never stored; fill it at read time
	now := time.Now()
	for i := range promos {
		promos[i].Status = promos[i].EffectiveStatus(now)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    promos,
	})
}

// SetPromoEnabled handles PATCH /api/v1/admin/promos/:id/enabled - the admin
// on/off switch
func SetPromoEnabled(c *gin.Context) {
	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
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
	var promo models.PromoCode
	if err := db.First(&promo, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROMO_NOT_FOUND",
				"message": "Promo code not found",
			},
		})
		return
	}

	if err := db.Model(&promo).Update("enabled", *req.Enabled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update promo code",
			},
		})
		return
	}

	promo.Enabled = *req.Enabled
	promo.Status = promo.EffectiveStatus(time.Now())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    promo,
	})
}

// ApplyPromo handles POST /api/v1/promos/apply - validates and prices a code
// against a subtotal. This is a read-only preview: usage is counted once per
// order at checkout, so repeated application cannot double-increment.
func ApplyPromo(c *gin.Context) {
	var req ApplyPromoRequest
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
	var promo models.PromoCode
	err := db.Where("code = ?", strings.ToUpper(strings.TrimSpace(req.Code))).First(&promo).Error

	var result services.PromoResult
	if err != nil {
		result = services.PricePromo(nil, req.Subtotal, time.Now())
	} else {
		result = services.PricePromo(&promo, req.Subtotal, time.Now())
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
