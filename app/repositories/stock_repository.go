package repositories

import (
	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
	"gorm.io/gorm"
)

// StockRepository guards product stock. All decrements go through Reserve
// so concurrent orders can never take the count below zero.
type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// WithTx returns a copy bound to the given transaction handle.
func (r *StockRepository) WithTx(tx *gorm.DB) *StockRepository {
	return &StockRepository{db: tx}
}

// Reserve atomically decrements stock for a product, failing when fewer
// than quantity units remain. The guard lives in the UPDATE's WHERE clause,
// so two racing orders for the last units cannot both succeed. A product
// that does not exist matches zero rows and reports the same conflict.
func (r *StockRepository) Reserve(productID uint, quantity int) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict("insufficient stock for product %d", productID)
	}
	return nil
}

// Release returns previously reserved units, used when an order is
// cancelled before fulfilment.
func (r *StockRepository) Release(productID uint, quantity int) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", quantity)).Error
}
