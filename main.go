package main

import (
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/config"
	"github.com/gobazaar/marketplace-api/logger"
	"github.com/gobazaar/marketplace-api/models"
	"github.com/gobazaar/marketplace-api/routes"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("invalid configuration: " + err.Error())
	}
	if err := logger.Init(cfg.Env); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	db := initDatabase(cfg)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PlatformSettings{},
		&models.PaymentTransaction{},
		&models.Voucher{},
	); err != nil {
		logger.L().Fatal("automigrate failed", zap.Error(err))
	}

	seedPlatformSettings(db, cfg)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, cfg)

	logger.L().Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		logger.L().Fatal("db connection failed", zap.Error(err))
	}
	return db
}

// seedPlatformSettings creates the singleton settings row on first boot so
// every order is priced under an explicit, validated commission rate.
func seedPlatformSettings(db *gorm.DB, cfg *config.Config) {
	var settings models.PlatformSettings
	err := db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.PlatformSettings{CommissionRate: cfg.DefaultCommissionRate}
		err = db.Create(&settings).Error
	}
	if err != nil {
		logger.L().Fatal("platform settings unavailable", zap.Error(err))
	}
}
