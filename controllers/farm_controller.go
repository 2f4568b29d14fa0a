package controllers

import (
	"net/http"
	"time"

	"github.com/farmly/farm-market-api/config"
	"github.com/farmly/farm-market-api/middleware"
	"github.com/farmly/farm-market-api/models"
	"github.com/farmly/farm-market-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterFarmRequest represents the request body for registering a farm
type RegisterFarmRequest struct {
	Name           string `json:"name" binding:"required"`
	Type           string `json:"type"`
	Location       string `json:"location"`
	OwnerFirstName string `json:"owner_first_name" binding:"required"`
	OwnerLastName  string `json:"owner_last_name" binding:"required"`
	OwnerEmail     string `json:"owner_email" binding:"required,email"`
	OwnerPhone     string `json:"owner_phone"`
}

// attachAvatarURL fills the computed avatar URL from the image service
func attachAvatarURL(farm *models.Farm) {
	if farm.AvatarKey == nil {
		return
	}
	if svc := services.GetImageService(); svc != nil {
		if url, err := svc.GetImageURL(*farm.AvatarKey); err == nil && url != "" {
			farm.AvatarURL = &url
		}
	}
}

// RegisterFarm handles POST /api/v1/farms - registers a farm and its owner
func RegisterFarm(c *gin.Context) {
	var req RegisterFarmRequest
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

	// One owner record per farm identity
	var existing models.Farm
	if err := db.Where("owner_email = ?", req.OwnerEmail).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FARM_EXISTS",
				"message": "A farm is already registered for this owner",
			},
		})
		return
	}

	farm := models.Farm{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Type:           req.Type,
		Location:       req.Location,
		OwnerFirstName: req.OwnerFirstName,
		OwnerLastName:  req.OwnerLastName,
		OwnerEmail:     req.OwnerEmail,
		OwnerPhone:     req.OwnerPhone,
		Status:         models.FarmActive,
		RegisteredAt:   time.Now(),
	}

	if err := db.Create(&farm).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to register farm",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    farm,
	})
}

// ListFarms handles GET /api/v1/admin/farms - paginated farm roster for the
// admin console
func ListFarms(c *gin.Context) {
	db := config.GetDB()

	page, limit := pageParams(c)

	query := db.Model(&models.Farm{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count farms",
			},
		})
		return
	}

	var farms []models.Farm
	if err := query.Order("registered_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&farms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch farms",
			},
		})
		return
	}

	for i := range farms {
		attachAvatarURL(&farms[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       farms,
		"pagination": paginationData(page, limit, total),
	})
}

// GetFarm handles GET /api/v1/farms/:id - public farm profile
func GetFarm(c *gin.Context) {
	db := config.GetDB()

	var farm models.Farm
	if err := db.First(&farm, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FARM_NOT_FOUND",
				"message": "Farm not found",
			},
		})
		return
	}

	attachAvatarURL(&farm)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    farm,
	})
}

// GetMyFarm handles GET /api/v1/owner/farm - the calling owner's farm profile
func GetMyFarm(c *gin.Context) {
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

	attachAvatarURL(&farm)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    farm,
	})
}

// SetFarmStatus handles PATCH /api/v1/admin/farms/:id/status - suspend,
// reactivate or retire a farm
func SetFarmStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
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

	switch req.Status {
	case models.FarmActive, models.FarmSuspended, models.FarmInactive:
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Status must be active, suspended or inactive",
			},
		})
		return
	}

	db := config.GetDB()
	var farm models.Farm
	if err := db.First(&farm, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FARM_NOT_FOUND",
				"message": "Farm not found",
			},
		})
		return
	}

	if err := db.Model(&farm).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update farm status",
			},
		})
		return
	}

	farm.Status = req.Status

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    farm,
	})
}
