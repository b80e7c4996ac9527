package productControllers

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// slugify lowercases and dashes a title the way URLs want it.
func slugify(s string) string {
	var b strings.Builder
	prevDash := true // suppress leading dash
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		case !prevDash:
			b.WriteRune('-')
			prevDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

type CategoryInput struct {
	Name    string           `json:"name" binding:"required"`
	GSTRate *decimal.Decimal `json:"gst_rate"`
}

// GET /categories
func ListCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// POST /categories (admin)
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid input: " + err.Error()})
			return
		}

		rate := models.DefaultGSTRate
		if input.GSTRate != nil {
			rate = *input.GSTRate
		}
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "GST rate must be within [0,100]."})
			return
		}

		category := models.Category{
			Name:    input.Name,
			Slug:    slugify(input.Name),
			GSTRate: rate,
		}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}
