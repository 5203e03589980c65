// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brightcart/storefront/internal/config"
	"github.com/brightcart/storefront/internal/handlers"
	"github.com/brightcart/storefront/internal/middleware"
	"github.com/brightcart/storefront/internal/services"
	"github.com/brightcart/storefront/internal/utils"
	"github.com/brightcart/storefront/pkg/authz"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)
	customerService := services.NewCustomerService(db)
	productService := services.NewProductService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, notificationService)
	paymentService := services.NewPaymentService(db, cfg, orderService)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService, storageService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	cartHandler := handlers.NewCartHandler(cartService, customerService)
	orderHandler := handlers.NewOrderHandler(orderService, customerService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, orderService, customerService)
	webhookHandler := handlers.NewWebhookHandler(customerService, cfg.Auth.WebhookSecret)

	// Tokens from the identity provider are verified with this shared secret.
	utils.SetIdentitySecret(cfg.Auth.IdentitySecret)

	limiters := middleware.NewLimiters(cfg.RateLimit)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(limiters.General())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Identity provider callbacks (authenticated by HMAC signature, not JWT)
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/identity", webhookHandler.HandleIdentityEvent)
	}

	api := r.Group("/api")
	{
		// Catalog routes
		products := api.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.GetProducts)
			products.GET("/:slug", middleware.OptionalAuth(), productHandler.GetProduct)

			managed := products.Group("")
			managed.Use(middleware.AuthRequired(), middleware.RoleRequired(authz.RoleMerchandiser, authz.RoleAdmin))
			{
				managed.POST("", limiters.Write(), productHandler.CreateProduct)
				managed.PUT("/:id", limiters.Write(), productHandler.UpdateProduct)
				managed.POST("/:id/image", limiters.Upload(), productHandler.UploadProductImage)
			}
		}

		categories := api.Group("/categories")
		{
			categories.GET("", productHandler.GetCategories)
		}

		// Customer routes
		customers := api.Group("/customers")
		customers.Use(middleware.AuthRequired())
		{
			customers.GET("/me", customerHandler.GetCurrentCustomer)
			customers.GET("/:id", customerHandler.GetCustomer)
			customers.PUT("/:id", limiters.Write(), customerHandler.UpdateCustomer)
			customers.POST("", middleware.RoleRequired(authz.RoleAdmin), customerHandler.CreateCustomer)
		}

		// Cart routes
		cart := api.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", limiters.Write(), cartHandler.ClearCart)
			cart.POST("/items", limiters.Write(), cartHandler.AddItem)
			cart.DELETE("/items/:productId", limiters.Write(), cartHandler.RemoveItem)
		}

		// Order routes
		orders := api.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", limiters.Write(), orderHandler.CreateOrder)
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/:id/cancel", limiters.Write(), orderHandler.CancelOrder)
			orders.PUT("/:id/status",
				middleware.RoleRequired(authz.RoleSupport, authz.RoleAdmin),
				limiters.Write(),
				orderHandler.UpdateOrderStatus)
		}

		// Payment routes
		payments := api.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/intent", limiters.Write(), paymentHandler.CreatePaymentIntent)
			payments.POST("/confirm", limiters.Write(), paymentHandler.ConfirmPayment)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
