package voucherControllers

import (
	"crypto/rand"
	"errors"
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/logger"
	"github.com/gobazaar/marketplace-api/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// codeAlphabet omits 0/O/1/I/L so codes survive being read aloud or retyped.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	codeLength      = 10
	maxCodeAttempts = 10
)

// ErrCodeSpaceExhausted means maxCodeAttempts generated codes all collided.
// The code space is ~8×10^14, so this points at something badly wrong rather
// than bad luck.
var ErrCodeSpaceExhausted = errors.New("could not generate a unique voucher code")

// GenerateCode draws a random code of the given length from the alphabet.
func GenerateCode(length int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// generateUniqueCode retries generation until exists reports a free code,
// bounded by maxCodeAttempts. The storage unique index remains the final
// arbiter against a concurrent issue of the same code.
func generateUniqueCode(exists func(code string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := GenerateCode(codeLength)
		if err != nil {
			return "", err
		}
		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

// Issue creates a voucher of the given value for the user.
func Issue(db *gorm.DB, userID string, value decimal.Decimal) (*models.Voucher, error) {
	code, err := generateUniqueCode(func(code string) (bool, error) {
		var count int64
		err := db.Model(&models.Voucher{}).Where("code = ?", code).Count(&count).Error
		return count > 0, err
	})
	if err != nil {
		return nil, err
	}

	voucher := models.Voucher{
		Code:   code,
		Value:  value,
		UserID: &userID,
	}
	if err := db.Create(&voucher).Error; err != nil {
		return nil, err
	}
	return &voucher, nil
}

type PurchaseInput struct {
	Value decimal.Decimal `json:"value" binding:"required"`
}

// POST /vouchers/purchase
func PurchaseVoucherHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input PurchaseInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid input: " + err.Error()})
			return
		}
		if !input.Value.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Value must be positive."})
			return
		}

		voucher, err := Issue(db, userID, input.Value)
		if err != nil {
			logger.L().Error("voucher issue failed", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to issue voucher"})
			return
		}
		c.JSON(http.StatusCreated, voucher)
	}
}

// GET /vouchers
func ListVouchersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var vouchers []models.Voucher
		if err := db.Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&vouchers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch vouchers"})
			return
		}
		c.JSON(http.StatusOK, vouchers)
	}
}
