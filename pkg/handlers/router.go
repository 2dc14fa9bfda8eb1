package handlers

import (
	"net/http"
	"time"

	"github.com/arnavshah/sandwich-orders-api/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Version is reported by the index route
const Version = "3.0.0"

// NewRouter registers every route on a fresh gin engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(logger.Recovery(h.Log), logger.Middleware(h.Log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	// Admin interface - serve static files from embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Sandwich Orders API",
			"version": Version,
		})
	})

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
		admin.PUT("/menu", h.PublishMenu)
		admin.GET("/orders", h.KitchenSheet)
		admin.GET("/orders/export", h.ExportKitchenCSV)
	}

	// Family app Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.GET("/menu", h.GetMenu)
		api.GET("/dates", h.GetDateOptions)
		api.GET("/orders", h.ListOrders)
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/:id", h.GetOrder)
		api.PUT("/orders/:id", h.UpdateOrder)
		api.DELETE("/orders/:id", h.DeleteOrder)
		api.POST("/validate", h.ValidateOrder)
		api.GET("/usage", h.GetMyUsage)
	}

	return r
}
