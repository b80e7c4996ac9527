package productControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gobazaar/marketplace-api/models"
	"github.com/gobazaar/marketplace-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// asUser fakes the auth middleware by pinning user_id into the context.
func asUser(userID string, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	r.Any("/products/:slug/reviews", handler)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedReviewProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()
	seller := testutil.CreateUser(t, db, "seller")
	category := testutil.CreateCategory(t, db, "gadgets", "18")
	return testutil.CreateProduct(t, db, seller.ID, category.ID, "gizmo", "49.00", 5)
}

func TestCreateProductReview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	product := seedReviewProduct(t, db)
	buyer := testutil.CreateUser(t, db, "buyer")

	r := asUser(buyer.ID, CreateProductReview(db))

	w := do(t, r, http.MethodPost, "/products/gizmo/reviews", `{"rating":4,"comment":"solid"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp ReviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, buyer.ID, resp.UserID)
	assert.Equal(t, "buyer", resp.UserName)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, "solid", resp.Comment)

	var review models.Review
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&review).Error)
	assert.Equal(t, buyer.ID, review.UserID)
}

func TestCreateProductReview_OnePerUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedReviewProduct(t, db)
	buyer := testutil.CreateUser(t, db, "buyer")
	other := testutil.CreateUser(t, db, "other")

	r := asUser(buyer.ID, CreateProductReview(db))

	w := do(t, r, http.MethodPost, "/products/gizmo/reviews", `{"rating":5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/products/gizmo/reviews", `{"rating":1,"comment":"changed my mind"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already reviewed")

	// A different user still gets their own review in.
	w = do(t, asUser(other.ID, CreateProductReview(db)), http.MethodPost,
		"/products/gizmo/reviews", `{"rating":2}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestCreateProductReview_Rejections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	product := seedReviewProduct(t, db)
	buyer := testutil.CreateUser(t, db, "buyer")

	r := asUser(buyer.ID, CreateProductReview(db))

	for _, body := range []string{`{"rating":0}`, `{"rating":6}`} {
		w := do(t, r, http.MethodPost, "/products/gizmo/reviews", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	w := do(t, r, http.MethodPost, "/products/nope/reviews", `{"rating":3}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Deactivated products take no new reviews.
	require.NoError(t, db.Model(product).Update("is_active", false).Error)
	w = do(t, r, http.MethodPost, "/products/gizmo/reviews", `{"rating":3}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListProductReviews(t *testing.T) {
	db := testutil.SetupTestDB(t)
	product := seedReviewProduct(t, db)
	buyer := testutil.CreateUser(t, db, "buyer")
	other := testutil.CreateUser(t, db, "other")

	require.NoError(t, db.Create(&models.Review{
		ProductID: product.ID, UserID: buyer.ID, Rating: 5, Comment: "great",
	}).Error)
	require.NoError(t, db.Create(&models.Review{
		ProductID: product.ID, UserID: other.ID, Rating: 2,
	}).Error)

	r := asUser("", ListProductReviews(db))

	w := do(t, r, http.MethodGet, "/products/gizmo/reviews", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reviews []ReviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	require.Len(t, reviews, 2)
	for _, rev := range reviews {
		assert.NotEmpty(t, rev.UserName)
	}

	w = do(t, r, http.MethodGet, "/products/nope/reviews", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
