package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/config"
	productControllers "github.com/gobazaar/marketplace-api/controllers/product"
	"github.com/gobazaar/marketplace-api/middleware"
	"gorm.io/gorm"
)

func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.GET("/products", productControllers.ListProducts(db))
	r.GET("/products/:slug", productControllers.GetProductBySlug(db))
	r.GET("/products/:slug/reviews", productControllers.ListProductReviews(db))
	r.POST("/products/:slug/reviews", middleware.RequireAuth(cfg.JWTSecret), productControllers.CreateProductReview(db))
	r.GET("/categories", productControllers.ListCategories(db))
}
