package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/config"
	cartControllers "github.com/gobazaar/marketplace-api/controllers/cart"
	"github.com/gobazaar/marketplace-api/middleware"
	"gorm.io/gorm"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	cart := r.Group("/cart", middleware.RequireAuth(cfg.JWTSecret))
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("/add", cartControllers.AddToCart(db))
		cart.PATCH("/update_item", cartControllers.UpdateCartItem(db))
		cart.DELETE("/clear", cartControllers.ClearCart(db))
	}
}
