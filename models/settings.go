package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultCommissionRate applies when no settings row exists yet.
var DefaultCommissionRate = decimal.NewFromInt(5)

// PlatformSettings is a singleton row holding platform-wide configuration.
type PlatformSettings struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);not null;default:5.00" json:"commission_rate"` // percentage
	UpdatedAt      time.Time       `json:"updated_at"`
}

// LoadPlatformSettings returns the settings row, falling back to defaults
// when none has been created yet.
func LoadPlatformSettings(db *gorm.DB) (PlatformSettings, error) {
	var s PlatformSettings
	err := db.First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PlatformSettings{CommissionRate: DefaultCommissionRate}, nil
		}
		return PlatformSettings{}, err
	}
	return s, nil
}
