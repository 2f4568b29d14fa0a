package controllers

import (
	"testing"

	"github.com/farmly/farm-market-api/middleware"
	"github.com/farmly/farm-market-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.SubmittedProduct{},
		&models.Order{},
		&models.OrderItem{},
		&models.Farm{},
		&models.PromoCode{},
		&models.Comment{},
		&models.Reply{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// mockSessionMiddleware injects a session identity the same way
// IdentityFromSession does from the session headers
func mockSessionMiddleware(userID, email, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("identity", middleware.Identity{
			UserID: userID,
			Email:  email,
			Role:   role,
		})
		c.Set("user_id", userID)
		c.Next()
	}
}

func strPtr(s string) *string {
	return &s
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// jsonDec parses a decimal that went through the JSON envelope
func jsonDec(t *testing.T, v interface{}) decimal.Decimal {
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected decimal string, got %T (%v)", v, v)
	}
	d, err := decimal.NewFromString(s)
	assert.NoError(t, err)
	return d
}
