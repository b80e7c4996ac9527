package productControllers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/models"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

type SellerProductInput struct {
	CategoryID  uint             `json:"category_id" binding:"required"`
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	MRP         *decimal.Decimal `json:"mrp"`
	Stock       int              `json:"stock"`
	Brand       string           `json:"brand"`
}

func newSKU() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return "SKU-" + strings.ToUpper(hex.EncodeToString(buf))
}

// sellerProduct loads a product only if the caller owns it.
func sellerProduct(db *gorm.DB, sellerID, productID string) (*models.Product, error) {
	var product models.Product
	err := db.Where("id = ? AND seller_id = ?", productID, sellerID).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GET /seller/products
func ListSellerProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID := c.GetString("user_id")

		var products []models.Product
		if err := db.Preload("Category").
			Where("seller_id = ?", sellerID).
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// POST /seller/products
func CreateSellerProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID := c.GetString("user_id")

		var input SellerProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() || input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Price and stock must be non-negative."})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ?", input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Category does not exist."})
			return
		}

		product := models.Product{
			SellerID:    sellerID,
			CategoryID:  category.ID,
			Title:       input.Title,
			Slug:        slugify(input.Title),
			Description: input.Description,
			Price:       input.Price,
			MRP:         input.MRP,
			Stock:       input.Stock,
			Brand:       input.Brand,
			SKU:         newSKU(),
			IsActive:    true,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create product"})
			return
		}
		product.Category = category
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /seller/products/:id
func UpdateSellerProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID := c.GetString("user_id")

		product, err := sellerProduct(db, sellerID, c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch product"})
			return
		}

		var input SellerProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() || input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Price and stock must be non-negative."})
			return
		}

		product.CategoryID = input.CategoryID
		product.Title = input.Title
		product.Description = input.Description
		product.Price = input.Price // existing cart snapshots keep the old price
		product.MRP = input.MRP
		product.Stock = input.Stock
		product.Brand = input.Brand
		if err := db.Save(product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /seller/products/:id — deactivates instead of deleting so order
// history keeps resolving.
func DeactivateSellerProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID := c.GetString("user_id")

		product, err := sellerProduct(db, sellerID, c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch product"})
			return
		}

		if err := db.Model(product).Update("is_active", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to deactivate product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "Product deactivated instead of deleting."})
	}
}

// GET /seller/orders — order lines touching the seller's products.
func ListSellerOrderItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID := c.GetString("user_id")

		var items []models.OrderItem
		if err := db.Joins("JOIN products ON products.id = order_items.product_id").
			Where("products.seller_id = ?", sellerID).
			Order("order_items.id DESC").
			Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch order items"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GET /seller/products/export — the seller's catalog as a spreadsheet.
func ExportSellerProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID := c.GetString("user_id")

		var products []models.Product
		if err := db.Preload("Category").
			Where("seller_id = ?", sellerID).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create sheet"})
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range []string{"ID", "SKU", "Title", "Category", "Price", "GSTRate", "PriceWithGST", "Stock", "Active", "CreatedAt"} {
			headerRow.AddCell().SetValue(h)
		}

		for i := range products {
			p := &products[i]
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.SKU)
			row.AddCell().SetValue(p.Title)
			row.AddCell().SetValue(p.Category.Name)
			row.AddCell().SetValue(p.Price.StringFixed(2))
			row.AddCell().SetValue(p.Category.GSTRate.StringFixed(2))
			row.AddCell().SetValue(p.PriceWithGST().StringFixed(2))
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.IsActive)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to write spreadsheet"})
			return
		}
	}
}
