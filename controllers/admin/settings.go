package adminControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SettingsInput struct {
	CommissionRate decimal.Decimal `json:"commission_rate" binding:"required"`
}

// GET /admin/settings
func GetSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := models.LoadPlatformSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// PUT /admin/settings — updates the singleton row, creating it on first use.
// Rate changes apply to orders placed after the update; existing orders keep
// their stored commission.
func UpdateSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SettingsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid input: " + err.Error()})
			return
		}
		if input.CommissionRate.IsNegative() || input.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Commission rate must be within [0,100]."})
			return
		}

		var settings models.PlatformSettings
		err := db.First(&settings).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			settings = models.PlatformSettings{CommissionRate: input.CommissionRate}
			err = db.Create(&settings).Error
		case err == nil:
			settings.CommissionRate = input.CommissionRate
			err = db.Save(&settings).Error
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}
