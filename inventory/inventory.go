// Package inventory guards product stock against concurrent order placement.
package inventory

import (
	"errors"

	"github.com/gobazaar/marketplace-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientStock matches any *InsufficientStockError via errors.Is.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError names the product that could not be reserved.
type InsufficientStockError struct {
	Product string
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock for " + e.Product
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Reserve locks the product row, re-checks availability and decrements stock
// by qty. It must run inside the transaction that creates the order: the row
// lock is what keeps two concurrent buyers from both draining the same stock,
// and the enclosing rollback is what undoes the decrement when a later line
// fails.
func Reserve(tx *gorm.DB, productID uint, qty int) (*models.Product, error) {
	var product models.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Category").
		First(&product, "id = ?", productID).Error; err != nil {
		return nil, err
	}

	if product.Stock < qty {
		return nil, &InsufficientStockError{Product: product.Title}
	}

	product.Stock -= qty
	if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("stock", product.Stock).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
