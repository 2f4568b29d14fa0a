package main

import (
	"log"
	"net/http"

	"github.com/farmly/farm-market-api/config"
	"github.com/farmly/farm-market-api/controllers"
	"github.com/farmly/farm-market-api/middleware"
	"github.com/farmly/farm-market-api/models"
	"github.com/farmly/farm-market-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Basic logging
	log.Println("Starting Farm Market API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the backing store
	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
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
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Pick the image storage backend
	if cfg.UseS3() {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(services.GetS3Service())
		log.Println("Image storage: S3 bucket", cfg.AWSS3Bucket)
	} else {
		services.InitLocalImageService(cfg.UploadDir)
		log.Println("Image storage: local directory", cfg.UploadDir)
	}

	// Initialize Gin router
	router := setupRouter()

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires the full API surface
func setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(middleware.IdentityFromSession())

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Storefront
		v1.GET("/products", controllers.ListProducts)
		v1.GET("/products/:id", controllers.GetProduct)
		v1.GET("/farms/:id", controllers.GetFarm)
		v1.POST("/farms", controllers.RegisterFarm)
		v1.GET("/posts/:postId/comments", controllers.ListComments)
		v1.POST("/posts/:postId/comments", controllers.CreateComment)
		v1.POST("/promos/apply", controllers.ApplyPromo)
		v1.POST("/checkout", controllers.Checkout)
		v1.GET("/uploads/:filename", controllers.GetUploadedImage)

		// Cart (identified users)
		v1.GET("/cart", controllers.GetCart)
		v1.POST("/cart/items", controllers.AddCartItem)
		v1.PATCH("/cart/items/:id", controllers.UpdateCartItem)
		v1.DELETE("/cart/items/:id", controllers.RemoveCartItem)
		v1.DELETE("/cart", controllers.ClearCart)

		// Orders
		v1.GET("/orders", controllers.ListOrders)
		v1.GET("/orders/:id", controllers.GetOrder)
		v1.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)

		// Farm owner console
		owner := v1.Group("/owner", middleware.RequireRole(middleware.RoleOwner))
		{
			owner.GET("/farm", controllers.GetMyFarm)
			owner.POST("/farm/avatar", controllers.UploadFarmAvatar)
			owner.GET("/products", controllers.ListOwnerProducts)
			owner.POST("/products", controllers.SubmitProduct)
			owner.POST("/products/:id/image", controllers.UploadProductImage)
			owner.GET("/dashboard", controllers.OwnerDashboard)
		}

		// Site admin console
		admin := v1.Group("/admin", middleware.RequireRole(middleware.RoleAdmin))
		{
			admin.GET("/dashboard", controllers.AdminDashboard)
			admin.GET("/farms", controllers.ListFarms)
			admin.PATCH("/farms/:id/status", controllers.SetFarmStatus)
			admin.GET("/products/pending", controllers.ListPendingProducts)
			admin.POST("/products/:id/approve", controllers.ApproveProduct)
			admin.POST("/products/:id/reject", controllers.RejectProduct)
			admin.PATCH("/products/:id/status", controllers.SetProductStatus)
			admin.GET("/promos", controllers.ListPromos)
			admin.POST("/promos", controllers.CreatePromo)
			admin.PATCH("/promos/:id/enabled", controllers.SetPromoEnabled)
		}

		// Blog moderation console
		moderation := v1.Group("/moderation", middleware.RequireRole(middleware.RoleModerator, middleware.RoleAdmin))
		{
			moderation.GET("/comments", controllers.ListAllComments)
			moderation.POST("/comments/:id/spam", controllers.MarkCommentSpam)
			moderation.POST("/comments/:id/restore", controllers.RestoreComment)
			moderation.POST("/comments/:id/replies", controllers.CreateReply)
			moderation.DELETE("/comments/:id/replies/:replyId", controllers.DeleteReply)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Farm Market API is running",
	})
}

// databaseStatus checks store connectivity
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
	})
}
