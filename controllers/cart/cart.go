package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/models"
	"gorm.io/gorm"
)

type AddToCartInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Qty       int  `json:"qty" binding:"required,min=1"`
}

type UpdateItemInput struct {
	ItemID uint `json:"item_id" binding:"required"`
	Qty    int  `json:"qty"`
}

// getOrCreateCart returns the user's cart, creating the row on first use.
// The cart row persists across checkouts; only its items come and go.
func getOrCreateCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		err = db.Create(&cart).Error
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func loadCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := db.Preload("Items.Product.Category").
		Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// POST /cart/add
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ? AND is_active = ?", input.ProductID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Product does not exist."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to validate product"})
			return
		}

		if product.Stock < input.Qty {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Insufficient stock for " + product.Title + "."})
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch cart"})
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// First add freezes the price; later catalog edits don't move it.
			item = models.CartItem{
				CartID:        cart.ID,
				ProductID:     product.ID,
				Qty:           input.Qty,
				PriceSnapshot: product.Price,
				AddedAt:       time.Now(),
			}
			err = db.Create(&item).Error
		case err == nil:
			item.Qty += input.Qty
			err = db.Save(&item).Error
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update cart"})
			return
		}

		snapshot, err := loadCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, snapshot)
	}
}

// PATCH /cart/update_item
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid input: " + err.Error()})
			return
		}

		// The join keeps users from touching items in someone else's cart.
		var item models.CartItem
		err := db.Joins("JOIN carts ON carts.id = cart_items.cart_id").
			Where("cart_items.id = ? AND carts.user_id = ?", input.ItemID, userID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Item not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch cart item"})
			return
		}

		if input.Qty <= 0 {
			if err := db.Delete(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete item"})
				return
			}
		} else {
			var product models.Product
			if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to validate product"})
				return
			}
			if product.Stock < input.Qty {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Insufficient stock."})
				return
			}
			item.Qty = input.Qty
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update cart item"})
				return
			}
		}

		snapshot, err := loadCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, snapshot)
	}
}

// DELETE /cart/clear
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "Cart cleared."})
	}
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		if _, err := getOrCreateCart(db, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch cart"})
			return
		}
		snapshot, err := loadCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, snapshot)
	}
}
