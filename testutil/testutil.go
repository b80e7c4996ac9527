// Package testutil spins up a throwaway Postgres for DB-backed tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/gobazaar/marketplace-api/models"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SetupTestDB starts a Postgres container, runs migrations and returns a
// connected gorm handle. The container is torn down via t.Cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("marketplace_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PlatformSettings{},
		&models.PaymentTransaction{},
		&models.Voucher{},
	); err != nil {
		t.Fatalf("automigrate failed: %v", err)
	}

	return db
}

// CreateUser inserts a user with a cart.
func CreateUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	user := &models.User{ID: id, Email: id + "@example.com", Name: id}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	cart := &models.Cart{UserID: id}
	if err := db.Create(cart).Error; err != nil {
		t.Fatalf("failed to create cart: %v", err)
	}
	return user
}

// CreateCategory inserts a category with the given GST percentage.
func CreateCategory(t *testing.T, db *gorm.DB, name, rate string) *models.Category {
	t.Helper()
	r, err := decimal.NewFromString(rate)
	if err != nil {
		t.Fatalf("bad rate %q: %v", rate, err)
	}
	category := &models.Category{Name: name, Slug: name, GSTRate: r}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

// CreateProduct inserts an active product owned by sellerID.
func CreateProduct(t *testing.T, db *gorm.DB, sellerID string, categoryID uint, title, price string, stock int) *models.Product {
	t.Helper()
	p, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("bad price %q: %v", price, err)
	}
	product := &models.Product{
		SellerID:   sellerID,
		CategoryID: categoryID,
		Title:      title,
		Slug:       title,
		Price:      p,
		Stock:      stock,
		IsActive:   true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

// AddCartItem puts qty of the product into the user's cart, snapshotting the
// product's current price.
func AddCartItem(t *testing.T, db *gorm.DB, userID string, product *models.Product, qty int) *models.CartItem {
	t.Helper()
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		t.Fatalf("failed to load cart: %v", err)
	}
	item := &models.CartItem{
		CartID:        cart.ID,
		ProductID:     product.ID,
		Qty:           qty,
		PriceSnapshot: product.Price,
		AddedAt:       time.Now(),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to add cart item: %v", err)
	}
	return item
}
