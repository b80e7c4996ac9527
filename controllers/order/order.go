package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/inventory"
	"github.com/gobazaar/marketplace-api/logger"
	"github.com/gobazaar/marketplace-api/models"
	"github.com/gobazaar/marketplace-api/pricing"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrCartEmpty = errors.New("cart is empty")

// PlaceOrder converts the user's cart into an immutable order. Stock
// re-checks, stock decrements, order and item creation, total computation and
// cart clearing all run inside one transaction: either everything commits or
// nothing is observable. Stock is re-validated here even though add-to-cart
// checked it, because other buyers may have drained it since.
func PlaceOrder(db *gorm.DB, settings models.PlatformSettings, userID string) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartEmpty
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		var lines []pricing.Line
		var orderItems []models.OrderItem
		for _, item := range cart.Items {
			product, err := inventory.Reserve(tx, item.ProductID, item.Qty)
			if err != nil {
				return err
			}

			lines = append(lines, pricing.Line{
				UnitPrice: item.PriceSnapshot,
				Qty:       item.Qty,
				GSTRate:   product.Category.GSTRate,
			})
			orderItems = append(orderItems, models.OrderItem{
				ProductID:     product.ID,
				TitleSnapshot: product.Title,
				PriceSnapshot: item.PriceSnapshot,
				GSTRate:       product.Category.GSTRate,
				Qty:           item.Qty,
			})
		}

		totals, err := pricing.ComputeOrder(lines, settings.CommissionRate)
		if err != nil {
			return err
		}

		order = models.Order{
			UserID:           userID,
			Items:            orderItems,
			Subtotal:         totals.Subtotal,
			GSTAmount:        totals.GSTAmount.Round(2),
			CommissionAmount: totals.CommissionAmount.Round(2),
			Total:            totals.Total.Round(2),
			Status:           models.OrderStatusCreated,
			PaymentStatus:    models.PaymentStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Empty the cart but keep the cart row for reuse.
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	logger.L().Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.String("user_id", userID),
		zap.String("total", order.Total.String()))
	BroadcastOrderEvent("order_created", &order)

	return &order, nil
}

// POST /orders/create
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		// Settings are read here and handed to the pipeline explicitly, so
		// the whole order is priced under one commission rate.
		settings, err := models.LoadPlatformSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load platform settings"})
			return
		}

		order, err := PlaceOrder(db, settings, userID)
		if err != nil {
			var stockErr *inventory.InsufficientStockError
			switch {
			case errors.Is(err, ErrCartEmpty):
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Cart is empty."})
			case errors.As(err, &stockErr):
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Insufficient stock for " + stockErr.Product + "."})
			default:
				logger.L().Error("order placement failed", zap.String("user_id", userID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to place order"})
			}
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders/
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var orders []models.Order
		if err := db.Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
