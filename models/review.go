package models

import "time"

// Review is one customer's rating of a product. A user reviews a product at
// most once.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_product_user" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"-"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_product_user" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
