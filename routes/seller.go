package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/config"
	productControllers "github.com/gobazaar/marketplace-api/controllers/product"
	"github.com/gobazaar/marketplace-api/middleware"
	"gorm.io/gorm"
)

func SetupSellerRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	seller := r.Group("/seller", middleware.RequireAuth(cfg.JWTSecret))
	{
		seller.GET("/products", productControllers.ListSellerProducts(db))
		seller.POST("/products", productControllers.CreateSellerProduct(db))
		seller.PUT("/products/:id", productControllers.UpdateSellerProduct(db))
		seller.DELETE("/products/:id", productControllers.DeactivateSellerProduct(db))
		seller.GET("/products/export", productControllers.ExportSellerProducts(db))
		seller.GET("/orders", productControllers.ListSellerOrderItems(db))
	}
}
