package repositories

import (
	"errors"

	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Find(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Items.Product").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order")
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) All() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("created_at desc").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// UpdateStatus persists a status change as a single column update.
func (r *OrderRepository) UpdateStatus(id uint, status models.OrderStatus) error {
	return r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}
