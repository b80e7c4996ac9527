package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/config"
	adminControllers "github.com/gobazaar/marketplace-api/controllers/admin"
	productControllers "github.com/gobazaar/marketplace-api/controllers/product"
	"github.com/gobazaar/marketplace-api/middleware"
	"gorm.io/gorm"
)

func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.POST("/categories", middleware.RequireAPIKey(cfg.AdminAPIKey), productControllers.CreateCategory(db))

	admin := r.Group("/admin", middleware.RequireAPIKey(cfg.AdminAPIKey))
	{
		admin.GET("/settings", adminControllers.GetSettings(db))
		admin.PUT("/settings", adminControllers.UpdateSettings(db))
	}
}
