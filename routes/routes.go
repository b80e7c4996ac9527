package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/config"
	paymentControllers "github.com/gobazaar/marketplace-api/controllers/payment"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	verifiers := paymentControllers.NewVerifierRegistry(cfg.Gateways)

	SetupCatalogRoutes(r, db, cfg)
	SetupCartRoutes(r, db, cfg)
	SetupOrderRoutes(r, db, cfg)
	SetupPaymentRoutes(r, db, cfg, verifiers)
	SetupVoucherRoutes(r, db, cfg)
	SetupUserRoutes(r, db, cfg)
	SetupSellerRoutes(r, db, cfg)
	SetupAdminRoutes(r, db, cfg)
}
