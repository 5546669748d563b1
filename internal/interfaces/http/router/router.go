package router

import (
	"net/http"

	"github.com/willy-peters/SmartPOS/internal/infrastructure/auth"
	"github.com/willy-peters/SmartPOS/internal/infrastructure/logger"
	"github.com/willy-peters/SmartPOS/internal/interfaces/http/handler"
	"github.com/willy-peters/SmartPOS/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundle everything the router mounts
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Sale    *handler.SaleHandler
	Report  *handler.ReportHandler
}

// New builds the gin engine with all middleware and routes mounted.
// Registration and login are open; everything else requires a valid token,
// and reports additionally require the admin role.
func New(handlers Handlers, jwtService *auth.JWTService, log *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", handlers.Auth.Register)
		authGroup.POST("/login", handlers.Auth.Login)
		authGroup.GET("/me", middleware.JWTAuth(jwtService), handlers.Auth.Profile)
	}

	authenticated := api.Group("")
	authenticated.Use(middleware.JWTAuth(jwtService))

	products := authenticated.Group("/products")
	{
		products.GET("", handlers.Product.List)
		products.GET("/low-stock", handlers.Product.LowStock)
		products.GET("/:id", handlers.Product.Get)
		products.GET("/:id/stock", handlers.Product.Stock)
		products.POST("", handlers.Product.Create)
		products.PATCH("/:id", handlers.Product.Update)
		products.DELETE("/:id", handlers.Product.Retire)
		products.POST("/:id/replenish", handlers.Product.Replenish)
	}

	sales := authenticated.Group("/sales")
	{
		sales.POST("", handlers.Sale.Create)
		sales.GET("", handlers.Sale.List)
		sales.GET("/:id", handlers.Sale.Get)
		sales.GET("/transaction/:transaction_id", handlers.Sale.GetByTransactionID)
	}

	reports := authenticated.Group("/reports")
	reports.Use(middleware.RequireAdmin())
	{
		reports.GET("/sales-summary", handlers.Report.SalesSummary)
		reports.GET("/top-products", handlers.Report.TopProducts)
		reports.GET("/cashier-performance", handlers.Report.CashierPerformance)
		reports.GET("/inventory-status", handlers.Report.InventoryStatus)
	}

	return engine
}
