package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/config"
	userControllers "github.com/gobazaar/marketplace-api/controllers/user"
	"github.com/gobazaar/marketplace-api/middleware"
	"gorm.io/gorm"
)

func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	me := r.Group("/me", middleware.RequireAuth(cfg.JWTSecret))
	{
		me.GET("", userControllers.GetProfile(db))
		me.PUT("", userControllers.UpdateProfile(db))
	}
}
