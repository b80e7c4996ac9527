package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/models"
	"gorm.io/gorm"
)

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type ReviewResponse struct {
	ID        uint   `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

func activeProductBySlug(db *gorm.DB, slug string) (*models.Product, error) {
	var product models.Product
	err := db.Where("slug = ? AND is_active = ?", slug, true).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GET /products/:slug/reviews — public.
func ListProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := activeProductBySlug(db, c.Param("slug"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch product"})
			return
		}

		var reviews []models.Review
		if err := db.Preload("User").
			Where("product_id = ?", product.ID).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch reviews"})
			return
		}

		out := make([]ReviewResponse, 0, len(reviews))
		for i := range reviews {
			out = append(out, toReviewResponse(&reviews[i]))
		}
		c.JSON(http.StatusOK, out)
	}
}

// POST /products/:slug/reviews
func CreateProductReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		product, err := activeProductBySlug(db, c.Param("slug"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Product not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch product"})
			return
		}

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid input: " + err.Error()})
			return
		}
		if input.Rating < 1 || input.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Rating must be between 1 and 5."})
			return
		}

		var count int64
		if err := db.Model(&models.Review{}).
			Where("product_id = ? AND user_id = ?", product.ID, userID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create review"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "You have already reviewed this product."})
			return
		}

		review := models.Review{
			ProductID: product.ID,
			UserID:    userID,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}
		// The unique index on (product_id, user_id) catches a concurrent
		// double submit the count check missed.
		if err := db.Create(&review).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "You have already reviewed this product."})
			return
		}
		if err := db.Preload("User").First(&review, "id = ?", review.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch review"})
			return
		}
		c.JSON(http.StatusCreated, toReviewResponse(&review))
	}
}

func toReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		UserName:  r.User.Name,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
