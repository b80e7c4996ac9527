package models

import "github.com/shopspring/decimal"

// DefaultGSTRate is applied when a category is created without an explicit rate.
var DefaultGSTRate = decimal.NewFromInt(18)

type Category struct {
	ID       uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string          `gorm:"unique;not null" json:"name"`
	Slug     string          `gorm:"unique;not null" json:"slug"`
	GSTRate  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:18.00" json:"gst_rate"` // percentage
	Products []Product       `gorm:"foreignKey:CategoryID" json:"-"`
}
