package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/config"
	orderControllers "github.com/gobazaar/marketplace-api/controllers/order"
	"github.com/gobazaar/marketplace-api/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	orders := r.Group("/orders")
	{
		// Live order events for dashboards
		orders.GET("/ws", orderControllers.OrderFeedHandler)

		auth := orders.Group("", middleware.RequireAuth(cfg.JWTSecret))
		{
			auth.POST("/create", orderControllers.CreateOrderHandler(db))
			auth.GET("/", orderControllers.ListOrdersHandler(db))
		}
	}
}
