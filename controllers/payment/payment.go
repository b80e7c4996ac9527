package paymentControllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/logger"
	"github.com/gobazaar/marketplace-api/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	orderControllers "github.com/gobazaar/marketplace-api/controllers/order"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrPaymentCompleted    = errors.New("order already paid")
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrTransactionIDExhausted means every generated id collided. The id
	// space makes this effectively unreachable outside a broken RNG.
	ErrTransactionIDExhausted = errors.New("could not generate a unique transaction id")
)

const maxIDAttempts = 5

// NewTransactionID builds a gateway-prefixed id, e.g. "RAZORPAY_1f2e3d4c5b6a".
func NewTransactionID(gateway models.Gateway) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return strings.ToUpper(string(gateway)) + "_" + suffix
}

type InitiateInput struct {
	OrderID uint           `json:"order_id" binding:"required"`
	Gateway models.Gateway `json:"payment_gateway" binding:"required"`
}

type InitiateResponse struct {
	TransactionID string                 `json:"transaction_id"`
	OrderID       uint                   `json:"order_id"`
	Amount        string                 `json:"amount"`
	Currency      string                 `json:"currency"`
	Gateway       models.Gateway         `json:"gateway"`
	GatewayData   map[string]interface{} `json:"gateway_data"`
}

// Initiate starts a payment attempt for the order. It creates the
// transaction in state initiated and marks the order as processing; the
// outcome arrives later through the gateway callback, so no network
// round-trip happens here.
func Initiate(db *gorm.DB, userID string, orderID uint, gateway models.Gateway) (*InitiateResponse, error) {
	var order models.Order
	if err := db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.PaymentStatus == models.PaymentStatusCompleted {
		return nil, ErrPaymentCompleted
	}

	var txn models.PaymentTransaction
	err := db.Transaction(func(tx *gorm.DB) error {
		// The unique index on transaction_id is the real guarantee; the loop
		// just retries the astronomically unlikely collision.
		var created bool
		for attempt := 0; attempt < maxIDAttempts; attempt++ {
			txn = models.PaymentTransaction{
				OrderID:       order.ID,
				TransactionID: NewTransactionID(gateway),
				Gateway:       gateway,
				Amount:        order.Total,
				Currency:      "INR",
				Status:        models.TransactionInitiated,
			}
			var count int64
			if err := tx.Model(&models.PaymentTransaction{}).
				Where("transaction_id = ?", txn.TransactionID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(&txn).Error; err != nil {
				return err
			}
			created = true
			break
		}
		if !created {
			return ErrTransactionIDExhausted
		}

		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"payment_status":         models.PaymentStatusProcessing,
			"payment_method":         string(gateway),
			"payment_transaction_id": txn.TransactionID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return &InitiateResponse{
		TransactionID: txn.TransactionID,
		OrderID:       order.ID,
		Amount:        order.Total.StringFixed(2),
		Currency:      "INR",
		Gateway:       gateway,
		GatewayData:   gatewayData(&order, txn.TransactionID, gateway),
	}, nil
}

// gatewayData shapes the checkout parameters each gateway's client widget
// expects. Credentials stay server-side; only public identifiers go out.
func gatewayData(order *models.Order, transactionID string, gateway models.Gateway) map[string]interface{} {
	base := map[string]interface{}{
		"order_id":    order.ID,
		"amount":      order.Total.StringFixed(2),
		"currency":    "INR",
		"description": "Order #" + strconv.FormatUint(uint64(order.ID), 10),
	}

	switch gateway {
	case models.GatewayRazorpay:
		base["razorpay_order_id"] = transactionID
		base["callback_url"] = "/payment/callback/razorpay"
	case models.GatewayPayU:
		base["txnid"] = transactionID
		base["surl"] = "/payment/callback/payu"
		base["furl"] = "/payment/callback/payu"
		base["productinfo"] = base["description"]
	}
	return base
}

// CallbackResult reports what a callback did.
type CallbackResult struct {
	Status           models.TransactionStatus `json:"status"`
	OrderID          uint                     `json:"order_id"`
	TransactionID    string                   `json:"transaction_id"`
	AlreadyProcessed bool                     `json:"already_processed,omitempty"`
}

// HandleCallback applies a gateway callback to its transaction. The raw
// payload is persisted for audit whatever the outcome. Transactions in a
// terminal state are never touched again: a duplicate notification reports
// the existing outcome without re-applying side effects.
func HandleCallback(db *gorm.DB, verifiers VerifierRegistry, gateway models.Gateway, payload map[string]string, raw []byte) (*CallbackResult, error) {
	transactionID := payload["transaction_id"]
	if transactionID == "" {
		transactionID = payload["txnid"]
	}
	if transactionID == "" {
		return nil, ErrTransactionNotFound
	}

	var txn models.PaymentTransaction
	if err := db.Where("transaction_id = ?", transactionID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	if txn.Terminal() {
		return &CallbackResult{
			Status:           txn.Status,
			OrderID:          txn.OrderID,
			TransactionID:    txn.TransactionID,
			AlreadyProcessed: true,
		}, nil
	}

	verified := verifiers.Verify(gateway, payload)

	var order models.Order
	var alreadyProcessed bool
	err := db.Transaction(func(tx *gorm.DB) error {
		// Re-read under a row lock: two racing callbacks serialize here, and
		// the loser sees the row the winner just made terminal.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&txn, "id = ?", txn.ID).Error; err != nil {
			return err
		}
		if txn.Terminal() {
			alreadyProcessed = true
			return nil
		}

		if err := tx.First(&order, "id = ?", txn.OrderID).Error; err != nil {
			return err
		}

		txnStatus := models.TransactionFailed
		orderUpdates := map[string]interface{}{"payment_status": models.PaymentStatusFailed}
		if verified {
			txnStatus = models.TransactionSuccess
			orderUpdates["payment_status"] = models.PaymentStatusCompleted
			// Only a successful payment advances the order itself.
			orderUpdates["status"] = models.OrderStatusPaid
		}

		if err := tx.Model(&models.PaymentTransaction{}).Where("id = ?", txn.ID).Updates(map[string]interface{}{
			"status":           txnStatus,
			"gateway_response": string(raw),
		}).Error; err != nil {
			return err
		}
		txn.Status = txnStatus

		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(orderUpdates).Error
	})
	if err != nil {
		return nil, err
	}

	if alreadyProcessed {
		return &CallbackResult{
			Status:           txn.Status,
			OrderID:          txn.OrderID,
			TransactionID:    txn.TransactionID,
			AlreadyProcessed: true,
		}, nil
	}

	logger.L().Info("payment callback processed",
		zap.String("transaction_id", txn.TransactionID),
		zap.String("gateway", string(gateway)),
		zap.String("status", string(txn.Status)))

	if verified {
		order.Status = models.OrderStatusPaid
		order.PaymentStatus = models.PaymentStatusCompleted
		orderControllers.BroadcastOrderEvent("order_paid", &order)
	}

	return &CallbackResult{
		Status:        txn.Status,
		OrderID:       txn.OrderID,
		TransactionID: txn.TransactionID,
	}, nil
}

type StatusResponse struct {
	OrderID       uint                        `json:"order_id"`
	PaymentStatus models.PaymentStatus        `json:"payment_status"`
	OrderStatus   models.OrderStatus          `json:"order_status"`
	Total         string                      `json:"total"`
	Transactions  []models.PaymentTransaction `json:"transactions"`
}

// Status returns the order's payment state with its full attempt history,
// most recent first. Used by clients polling for the callback outcome.
func Status(db *gorm.DB, userID string, orderID uint) (*StatusResponse, error) {
	var order models.Order
	if err := db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	var transactions []models.PaymentTransaction
	if err := db.Where("order_id = ?", order.ID).
		Order("created_at DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	return &StatusResponse{
		OrderID:       order.ID,
		PaymentStatus: order.PaymentStatus,
		OrderStatus:   order.Status,
		Total:         order.Total.StringFixed(2),
		Transactions:  transactions,
	}, nil
}

// -------- Handlers --------

// POST /payment/initiate
func InitiatePaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input InitiateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid input: " + err.Error()})
			return
		}
		if !models.ValidGateway(input.Gateway) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid gateway."})
			return
		}

		resp, err := Initiate(db, userID, input.OrderID, input.Gateway)
		if err != nil {
			switch {
			case errors.Is(err, ErrOrderNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Order not found."})
			case errors.Is(err, ErrPaymentCompleted):
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Order already paid."})
			default:
				logger.L().Error("payment initiation failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to initiate payment"})
			}
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// POST /payment/callback/:gateway — unauthenticated; trust comes from the
// gateway signature checked by the verifier.
func PaymentCallbackHandler(db *gorm.DB, verifiers VerifierRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		gateway := models.Gateway(c.Param("gateway"))
		if !models.ValidGateway(gateway) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid gateway."})
			return
		}

		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid payload: " + err.Error()})
			return
		}
		raw, _ := json.Marshal(body)

		result, err := HandleCallback(db, verifiers, gateway, flattenPayload(body), raw)
		if err != nil {
			if errors.Is(err, ErrTransactionNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Transaction not found."})
				return
			}
			logger.L().Error("payment callback failed", zap.String("gateway", string(gateway)), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to process callback"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GET /payment/status/:order_id
func PaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid order id."})
			return
		}

		resp, err := Status(db, userID, uint(orderID))
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Order not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch payment status"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// flattenPayload renders top-level payload values as strings for the
// verifiers; nested objects are ignored.
func flattenPayload(body map[string]interface{}) map[string]string {
	out := make(map[string]string, len(body))
	for k, v := range body {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(val)
		}
	}
	return out
}
