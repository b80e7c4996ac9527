package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusCreated   OrderStatus = "created"   // placed, awaiting payment
	OrderStatusPaid      OrderStatus = "paid"      // payment confirmed
	OrderStatusShipped   OrderStatus = "shipped"   // out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // customer received the items
	OrderStatusCancelled OrderStatus = "cancelled" // cancelled before shipping

	PaymentStatusPending    PaymentStatus = "pending"    // no payment attempt yet
	PaymentStatusProcessing PaymentStatus = "processing" // gateway attempt in flight
	PaymentStatusCompleted  PaymentStatus = "completed"  // paid successfully
	PaymentStatusFailed     PaymentStatus = "failed"     // last attempt failed
	PaymentStatusRefunded   PaymentStatus = "refunded"   // money returned to customer
)

// Order is an immutable snapshot of a cart at placement time. Totals are
// computed once, when the order is created, and never recomputed from live
// catalog state.
type Order struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           string          `gorm:"not null;index" json:"user_id"`
	User             User            `gorm:"foreignKey:UserID" json:"-"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	GSTAmount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"gst_amount"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"commission_amount"` // seller-side, excluded from total
	Total            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status           OrderStatus     `gorm:"type:varchar(20);default:'created'" json:"status"`
	PaymentStatus    PaymentStatus   `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`
	PaymentMethod    string          `json:"payment_method,omitempty"`
	// PaymentTransactionID points at the latest payment attempt.
	PaymentTransactionID string     `json:"payment_transaction_id,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	ShippedAt            *time.Time `json:"shipped_at,omitempty"`
}

// OrderItem is a frozen copy of a cart line. Title, price, quantity and the
// GST rate in force are snapshotted so the order survives catalog edits.
type OrderItem struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderID       uint            `gorm:"index;not null" json:"order_id"`
	ProductID     uint            `gorm:"not null" json:"product_id"`
	TitleSnapshot string          `gorm:"not null" json:"title_snapshot"`
	PriceSnapshot decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_snapshot"`
	GSTRate       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"gst_rate"`
	Qty           int             `gorm:"not null" json:"qty"`
}

func (oi *OrderItem) Subtotal() decimal.Decimal {
	return oi.PriceSnapshot.Mul(decimal.NewFromInt(int64(oi.Qty)))
}
