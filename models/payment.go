package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Gateway string
type TransactionStatus string

const (
	GatewayRazorpay Gateway = "razorpay"
	GatewayPayU     Gateway = "payu"
	GatewayStripe   Gateway = "stripe"
	GatewayPayPal   Gateway = "paypal"

	TransactionInitiated  TransactionStatus = "initiated"
	TransactionProcessing TransactionStatus = "processing"
	TransactionSuccess    TransactionStatus = "success"
	TransactionFailed     TransactionStatus = "failed"
	TransactionCancelled  TransactionStatus = "cancelled"
)

// ValidGateway reports whether g is one of the supported gateway values.
func ValidGateway(g Gateway) bool {
	switch g {
	case GatewayRazorpay, GatewayPayU, GatewayStripe, GatewayPayPal:
		return true
	}
	return false
}

type PaymentTransaction struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	OrderID       uint              `gorm:"not null;index" json:"order_id"`
	Order         Order             `gorm:"foreignKey:OrderID" json:"-"`
	TransactionID string            `gorm:"uniqueIndex;size:100;not null" json:"transaction_id"`
	Gateway       Gateway           `gorm:"type:varchar(20);not null" json:"gateway"`
	Amount        decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency      string            `gorm:"size:3;default:'INR'" json:"currency"`
	Status        TransactionStatus `gorm:"type:varchar(20);default:'initiated'" json:"status"`
	// GatewayResponse keeps the raw callback payload for audit.
	GatewayResponse string    `gorm:"type:jsonb" json:"gateway_response,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Terminal reports whether the transaction reached a final state. Terminal
// transactions never transition again.
func (t *PaymentTransaction) Terminal() bool {
	switch t.Status {
	case TransactionSuccess, TransactionFailed, TransactionCancelled:
		return true
	}
	return false
}
