package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/config"
	paymentControllers "github.com/gobazaar/marketplace-api/controllers/payment"
	"github.com/gobazaar/marketplace-api/middleware"
	"gorm.io/gorm"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, verifiers paymentControllers.VerifierRegistry) {
	payment := r.Group("/payment")
	{
		// Callbacks carry no user auth; the gateway signature is the trust.
		payment.POST("/callback/:gateway", paymentControllers.PaymentCallbackHandler(db, verifiers))

		auth := payment.Group("", middleware.RequireAuth(cfg.JWTSecret))
		{
			auth.POST("/initiate", paymentControllers.InitiatePaymentHandler(db))
			auth.GET("/status/:order_id", paymentControllers.PaymentStatusHandler(db))
		}
	}
}
