package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Voucher struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Code      string          `gorm:"uniqueIndex;size:20;not null" json:"code"`
	Value     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"value"`
	IsUsed    bool            `gorm:"default:false" json:"is_used"`
	UserID    *string         `json:"user_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UsedAt    *time.Time      `json:"used_at,omitempty"`
}
