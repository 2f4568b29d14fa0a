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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Delivery fee schedule and tax rate, platform-wide
var (
	standardDeliveryFee = decimal.NewFromInt(5)
	expressDeliveryFee  = decimal.NewFromInt(15)
	taxRate             = decimal.NewFromFloat(0.08)
)

// CheckoutItemRequest is an inline order line for guest checkout
type CheckoutItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CheckoutAddressRequest is the delivery destination
type CheckoutAddressRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Street   string `json:"street" binding:"required"`
	City     string `json:"city" binding:"required"`
	Region   string `json:"region"`
}

// CheckoutRequest represents the request body for checkout. Identified users
// may omit items to check out their stored cart; guests must supply items
// inline.
type CheckoutRequest struct {
	Items          []CheckoutItemRequest  `json:"items"`
	Address        CheckoutAddressRequest `json:"address" binding:"required"`
	DeliveryOption string                 `json:"delivery_option" binding:"required"`
	PaymentMethod  string                 `json:"payment_method" binding:"required"`
	PromoCode      *string                `json:"promo_code"`
}

// Checkout handles POST /api/v1/checkout - turns the cart (or inline items)
// into one immutable order. Guests are allowed; absence of a session is not
// an error.
func Checkout(c *gin.Context) {
	var req CheckoutRequest
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

	if req.DeliveryOption != models.DeliveryStandard && req.DeliveryOption != models.DeliveryExpress {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DELIVERY_OPTION",
				"message": "Delivery option must be standard or express",
			},
		})
		return
	}

	switch req.PaymentMethod {
	case models.PaymentCash, models.PaymentDigital, models.PaymentCard:
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PAYMENT_METHOD",
				"message": "Payment method must be cash, digital or card",
			},
		})
		return
	}

	db := config.GetDB()
	identity, loggedIn := middleware.GetIdentity(c)

	// Collect the lines to price: the stored cart for identified users,
	// inline items otherwise
	var cartItems []models.CartItem
	fromCart := false
	if len(req.Items) == 0 {
		if !loggedIn {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EMPTY_ORDER",
					"message": "Guest checkout requires order items",
				},
			})
			return
		}
		if err := db.Where("user_id = ?", identity.UserID).Find(&cartItems).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to read cart",
				},
			})
			return
		}
		fromCart = true
	}

	catalog := services.LoadCatalog(db)

	// Re-validate every line against the live catalog and build the order
	// item snapshots
	type pricedLine struct {
		product  models.Product
		quantity int
	}
	var lines []pricedLine

	if fromCart {
		for _, item := range cartItems {
			product, found := services.FindCatalogProduct(catalog, item.ProductID)
			if !found || !product.Visible() {
				c.JSON(http.StatusConflict, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "PRODUCT_UNAVAILABLE",
						"message": "A cart item is no longer available: " + item.Name,
					},
				})
				return
			}
			lines = append(lines, pricedLine{product: product, quantity: item.Quantity})
		}
	} else {
		for _, item := range req.Items {
			product, found := services.FindCatalogProduct(catalog, item.ProductID)
			if !found || !product.Visible() {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "PRODUCT_NOT_FOUND",
						"message": "Product not found: " + item.ProductID,
					},
				})
				return
			}
			lines = append(lines, pricedLine{product: product, quantity: item.Quantity})
		}
	}

	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMPTY_ORDER",
				"message": "There is nothing to check out",
			},
		})
		return
	}

	for _, line := range lines {
		if line.product.Stock < line.quantity {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INSUFFICIENT_STOCK",
					"message": "Not enough stock for " + line.product.Name,
				},
			})
			return
		}
	}

	// Price the order
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.product.Price.Mul(decimal.NewFromInt(int64(line.quantity))))
	}

	fee := standardDeliveryFee
	if req.DeliveryOption == models.DeliveryExpress {
		fee = expressDeliveryFee
	}

	now := time.Now()
	discount := decimal.Zero
	var promo *models.PromoCode
	if req.PromoCode != nil && *req.PromoCode != "" {
		var found models.PromoCode
		err := db.Where("code = ?", *req.PromoCode).First(&found).Error
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_PROMO",
					"message": "Invalid promo code",
				},
			})
			return
		}
		result := services.PricePromo(&found, subtotal, now)
		if !result.Valid {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_PROMO",
					"message": result.Message,
				},
			})
			return
		}
		discount = result.Discount
		if result.FreeShipping {
			fee = decimal.Zero
		}
		promo = &found
	}

	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(fee).Add(tax).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	order := models.Order{
		ID:     uuid.NewString(),
		Date:   now,
		Status: models.OrderPending,
		Delivery: models.Delivery{
			Address: models.Address{
				FullName: req.Address.FullName,
				Email:    req.Address.Email,
				Phone:    req.Address.Phone,
				Street:   req.Address.Street,
				City:     req.Address.City,
				Region:   req.Address.Region,
			},
			Option: req.DeliveryOption,
			Fee:    fee,
		},
		Totals: models.Totals{
			Subtotal: subtotal.Round(2),
			Tax:      tax,
			Delivery: fee,
			Discount: discount,
			Total:    total.Round(2),
		},
		PaymentMethod: req.PaymentMethod,
		PromoCode:     req.PromoCode,
	}
	if loggedIn {
		order.UserID = &identity.UserID
	}

	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: line.product.ID,
			Name:      line.product.Name,
			Price:     line.product.Price,
			Quantity:  line.quantity,
			FarmID:    line.product.FarmID,
			FarmName:  line.product.FarmName,
		})
	}

	// Persist the order, decrement stock and count promo usage in one
	// transaction. The promo counter is incremented exactly once per order;
	// previewing a code never touches it.
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, line := range lines {
			if err := decrementStock(tx, line.product.ID, line.quantity); err != nil {
				return err
			}
		}
		if promo != nil {
			if err := tx.Model(&models.PromoCode{}).
				Where("id = ?", promo.ID).
				Update("used_count", gorm.Expr("used_count + ?", 1)).Error; err != nil {
				return err
			}
		}
		if fromCart {
			if err := tx.Where("user_id = ?", identity.UserID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// decrementStock lowers the stock counter on whichever partition holds the
// product; the admin partition is the source of truth when both do.
func decrementStock(tx *gorm.DB, productID string, quantity int) error {
	result := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	return tx.Model(&models.SubmittedProduct{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock - ?", quantity)).Error
}
