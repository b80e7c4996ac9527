package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/config"
	voucherControllers "github.com/gobazaar/marketplace-api/controllers/voucher"
	"github.com/gobazaar/marketplace-api/middleware"
	"gorm.io/gorm"
)

func SetupVoucherRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	vouchers := r.Group("/vouchers", middleware.RequireAuth(cfg.JWTSecret))
	{
		vouchers.POST("/purchase", voucherControllers.PurchaseVoucherHandler(db))
		vouchers.GET("", voucherControllers.ListVouchersHandler(db))
	}
}
