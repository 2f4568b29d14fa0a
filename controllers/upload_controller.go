package controllers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/farmly/farm-market-api/config"
	"github.com/farmly/farm-market-api/middleware"
	"github.com/farmly/farm-market-api/models"
	"github.com/farmly/farm-market-api/services"
	"github.com/farmly/farm-market-api/utils"
	"github.com/gin-gonic/gin"
)

// uploadImage reads the multipart "image" field and stores it via the image
// service under the given key prefix
func uploadImage(c *gin.Context, keyPrefix string) (string, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "An image file is required",
			},
		})
		return "", false
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return "", false
	}

	key, err := imageService.UploadImage(fileHeader, keyPrefix)
	if err != nil {
		if uploadErr, ok := err.(*utils.FileUploadError); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return "", false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to store the image",
			},
		})
		return "", false
	}

	return key, true
}

// UploadFarmAvatar handles POST /api/v1/owner/farm/avatar - stores the
// calling owner's farm avatar
func UploadFarmAvatar(c *gin.Context) {
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

	key, ok := uploadImage(c, "avatars")
	if !ok {
		return
	}

	// Replace the previous avatar if there was one
	if farm.AvatarKey != nil {
		if err := services.GetImageService().DeleteImage(*farm.AvatarKey); err != nil {
			log.Printf("warning: failed to delete previous avatar %s: %v", *farm.AvatarKey, err)
		}
	}

	if err := db.Model(&farm).Update("avatar_key", key).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save avatar",
			},
		})
		return
	}

	farm.AvatarKey = &key
	attachAvatarURL(&farm)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    farm,
	})
}

// UploadProductImage handles POST /api/v1/owner/products/:id/image - stores a
// photo for one of the calling owner's product submissions
func UploadProductImage(c *gin.Context) {
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

	var submission models.SubmittedProduct
	if err := db.Where("id = ? AND farm_id = ?", c.Param("id"), farm.ID).First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product submission not found",
			},
		})
		return
	}

	key, ok := uploadImage(c, "products")
	if !ok {
		return
	}

	if err := db.Model(&submission).Update("image_key", key).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save product image",
			},
		})
		return
	}

	submission.ImageKey = &key

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    submission,
	})
}

// GetUploadedImage handles GET /api/v1/uploads/:filename - serves images
// stored by the local filesystem backend
func GetUploadedImage(c *gin.Context) {
	filename := c.Param("filename")

	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Filename is required",
			},
		})
		return
	}

	// Prevent directory traversal
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILENAME",
				"message": "Invalid filename",
			},
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != utils.AllowedImageFormat {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": "Only PNG files are supported",
			},
		})
		return
	}

	filePath := filepath.Join(utils.UploadDir, filename)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_NOT_FOUND",
				"message": "Image not found",
			},
		})
		return
	}

	c.File(filePath)
}
