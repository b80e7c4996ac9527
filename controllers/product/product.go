package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/models"
	"gorm.io/gorm"
)

const defaultPageSize = 12

// GET /products — public catalog listing with filters and pagination.
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categorySlug := c.Query("category")
		search := c.Query("search")
		ordering := c.DefaultQuery("ordering", "created_at desc")

		switch ordering {
		case "price", "price desc", "created_at", "created_at desc", "title":
		default:
			ordering = "created_at desc"
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
		if pageSize < 1 || pageSize > 100 {
			pageSize = defaultPageSize
		}

		query := db.Model(&models.Product{}).
			Preload("Category").
			Where("is_active = ?", true)

		if categorySlug != "" {
			query = query.Joins("JOIN categories ON categories.id = products.category_id").
				Where("categories.slug = ?", categorySlug)
		}
		if search != "" {
			query = query.Where("title ILIKE ?", "%"+search+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch products"})
			return
		}

		var products []models.Product
		if err := query.Order(ordering).
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"count":   total,
			"page":    page,
			"results": products,
		})
	}
}

// GET /products/:slug
func GetProductBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var product models.Product
		if err := db.Preload("Category").
			Where("slug = ? AND is_active = ?", slug, true).
			First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
