package controllers

import (
	"net/http"
	"strconv"

	"github.com/farmly/farm-market-api/config"
	"github.com/farmly/farm-market-api/middleware"
	"github.com/farmly/farm-market-api/models"
	"github.com/farmly/farm-market-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SubmitProductRequest represents the request body for an owner product
// submission
type SubmitProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Category string          `json:"category" binding:"required"`
	Stock    int             `json:"stock" binding:"gte=0"`
}

// RejectProductRequest represents the request body for rejecting a submission
type RejectProductRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// SetProductStatusRequest represents the request body for the admin
// active/inactive toggle
type SetProductStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// pageParams reads the page/limit query parameters with the standard defaults
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// paginationData builds the standard pagination envelope
func paginationData(page, limit int, total int64) gin.H {
	totalPages := (total + int64(limit) - 1) / int64(limit)
	return gin.H{
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": totalPages,
	}
}

// ListProducts handles GET /api/v1/products - the public storefront catalog.
// Both product partitions are unioned and de-duplicated by id before
// filtering; only storefront-visible products are returned.
func ListProducts(c *gin.Context) {
	db := config.GetDB()
	catalog := services.LoadCatalog(db)

	category := c.Query("category")
	visible := make([]models.Product, 0, len(catalog))
	for _, p := range catalog {
		if !p.Visible() {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		visible = append(visible, p)
	}

	// Pagination happens after the union; paging the partitions separately
	// would produce duplicate or missing rows
	page, limit := pageParams(c)
	total := int64(len(visible))
	start := (page - 1) * limit
	if start > len(visible) {
		start = len(visible)
	}
	end := start + limit
	if end > len(visible) {
		end = len(visible)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       visible[start:end],
		"pagination": paginationData(page, limit, total),
	})
}

// GetProduct handles GET /api/v1/products/:id - a single storefront product
func GetProduct(c *gin.Context) {
	db := config.GetDB()
	catalog := services.LoadCatalog(db)

	product, found := services.FindCatalogProduct(catalog, c.Param("id"))
	if !found || !product.Visible() {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// SubmitProduct handles POST /api/v1/owner/products - a farm owner submits a
// product for admin review. The submission lands in the owner partition with
// pending status.
func SubmitProduct(c *gin.Context) {
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

	// Find the owner's farm
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

	if farm.Status != models.FarmActive {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FARM_SUSPENDED",
				"message": "Suspended farms cannot submit products",
			},
		})
		return
	}

	// Parse request body
	var req SubmitProductRequest
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

	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CATEGORY",
				"message": "Unknown product category",
			},
		})
		return
	}

	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PRICE",
				"message": "Price must not be negative",
			},
		})
		return
	}

	submission := models.SubmittedProduct{
		Product: models.Product{
			ID:       uuid.NewString(),
			Name:     req.Name,
			Price:    req.Price,
			Category: req.Category,
			FarmID:   &farm.ID,
			FarmName: farm.Name,
			Status:   models.ProductPending,
			Stock:    req.Stock,
		},
	}

	if err := db.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product submission",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    submission,
	})
}

// ListOwnerProducts handles GET /api/v1/owner/products - a farm owner's own
// submissions with their review status
func ListOwnerProducts(c *gin.Context) {
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

	var submissions []models.SubmittedProduct
	if err := db.Where("farm_id = ?", farm.ID).Order("created_at DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch product submissions",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    submissions,
	})
}

// ListPendingProducts handles GET /api/v1/admin/products/pending - the admin
// review queue
func ListPendingProducts(c *gin.Context) {
	db := config.GetDB()

	var pending []models.SubmittedProduct
	if err := db.Where("status = ?", models.ProductPending).Order("created_at ASC").Find(&pending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch pending products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    pending,
	})
}

// ApproveProduct handles POST /api/v1/admin/products/:id/approve - promotes
// an owner submission into the admin partition. The admin copy supersedes the
// submission in every catalog union from here on.
func ApproveProduct(c *gin.Context) {
	db := config.GetDB()

	var submission models.SubmittedProduct
	if err := db.First(&submission, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product submission not found",
			},
		})
		return
	}

	if submission.Status != models.ProductPending {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ALREADY_REVIEWED",
				"message": "Product submission has already been reviewed",
			},
		})
		return
	}

	approved := submission.Product
	approved.Status = models.ProductApproved
	approved.RejectionReason = nil

	// Mirror the review outcome onto the submission so the owner console
	// shows it, and place the approved copy into the admin partition. One
	// transaction: an approved submission without its admin copy would
	// vanish from the storefront union.
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&submission).Update("status", models.ProductApproved).Error; err != nil {
			return err
		}
		return tx.Create(&approved).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to approve product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    approved,
	})
}

// RejectProduct handles POST /api/v1/admin/products/:id/reject - rejects an
// owner submission with a reason
func RejectProduct(c *gin.Context) {
	var req RejectProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "A rejection reason is required",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var submission models.SubmittedProduct
	if err := db.First(&submission, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product submission not found",
			},
		})
		return
	}

	if submission.Status != models.ProductPending {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ALREADY_REVIEWED",
				"message": "Product submission has already been reviewed",
			},
		})
		return
	}

	updates := map[string]interface{}{
		"status":           models.ProductRejected,
		"rejection_reason": req.Reason,
	}
	if err := db.Model(&submission).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to reject product",
			},
		})
		return
	}

	submission.Status = models.ProductRejected
	submission.RejectionReason = &req.Reason

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    submission,
	})
}

// SetProductStatus handles PATCH /api/v1/admin/products/:id/status - the
// admin active/inactive toggle on the admin partition
func SetProductStatus(c *gin.Context) {
	var req SetProductStatusRequest
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

	if req.Status != models.ProductActive && req.Status != models.ProductInactive {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Status must be active or inactive",
			},
		})
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	if err := db.Model(&product).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product status",
			},
		})
		return
	}

	product.Status = req.Status

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}
