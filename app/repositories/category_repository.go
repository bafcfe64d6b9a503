package repositories

import (
	"errors"

	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name asc").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Find(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category")
		}
		return nil, err
	}
	return &category, nil
}

// ChildrenOf returns the ids of the direct children of the given category.
func (r *CategoryRepository) ChildrenOf(id uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Category{}).
		Where("parent_id = ?", id).
		Pluck("id", &ids).Error
	return ids, err
}

// SiblingExists reports whether a category with the given name already
// lives under the given parent, excluding excludeID.
func (r *CategoryRepository) SiblingExists(parentID *uint, name string, excludeID uint) (bool, error) {
	q := r.db.Model(&models.Category{}).Where("name = ?", name)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *CategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}
