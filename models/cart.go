package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"uniqueIndex;not null" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CartID    uint    `gorm:"index;uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uint    `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Qty       int     `gorm:"not null" json:"qty"`
	// PriceSnapshot is the product price at add-to-cart time. Later catalog
	// edits never touch it.
	PriceSnapshot decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_snapshot"`
	AddedAt       time.Time       `json:"added_at"`
}

func (ci *CartItem) Subtotal() decimal.Decimal {
	return ci.PriceSnapshot.Mul(decimal.NewFromInt(int64(ci.Qty)))
}
