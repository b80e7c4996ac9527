package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID    string           `gorm:"not null;index" json:"seller_id"`
	Seller      User             `gorm:"foreignKey:SellerID" json:"-"`
	CategoryID  uint             `gorm:"not null;index" json:"category_id"`
	Category    Category         `gorm:"foreignKey:CategoryID" json:"category"`
	Title       string           `gorm:"not null" json:"title"`
	Slug        string           `gorm:"uniqueIndex;not null" json:"slug"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	MRP         *decimal.Decimal `gorm:"type:decimal(10,2)" json:"mrp,omitempty"`
	Stock       int              `gorm:"not null;default:0" json:"stock"`
	IsActive    bool             `gorm:"default:true" json:"is_active"`
	Brand       string           `json:"brand"`
	SKU         string           `json:"sku"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

// GSTAmount is the tax on the base price at the category's current rate.
func (p *Product) GSTAmount() decimal.Decimal {
	return p.Price.Mul(p.Category.GSTRate).Div(decimal.NewFromInt(100))
}

// PriceWithGST is the customer-facing unit price including tax.
func (p *Product) PriceWithGST() decimal.Decimal {
	return p.Price.Add(p.GSTAmount())
}
