package repositories

import (
	"errors"

	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductFilter narrows a product listing. CategoryIDs is the already
// resolved descendant set, so the repository never walks the tree itself.
type ProductFilter struct {
	CategoryIDs []uint
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStock     bool
	Featured    *bool
	Search      string
	Sort        string
	Page        int
	PerPage     int
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

var productSorts = map[string]string{
	"price_asc":  "price asc",
	"price_desc": "price desc",
	"newest":     "created_at desc",
	"name":       "name asc",
}

// List returns a filtered page of products plus the unpaged total.
func (r *ProductRepository) List(f ProductFilter) ([]models.Product, int64, error) {
	q := r.db.Model(&models.Product{})

	if len(f.CategoryIDs) > 0 {
		q = q.Where("category_id IN ?", f.CategoryIDs)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.InStock {
		q = q.Where("stock > 0")
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := productSorts[f.Sort]
	if !ok {
		order = "created_at desc"
	}
	page, perPage := f.Page, f.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var products []models.Product
	err := q.Preload("Category").
		Order(order).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error
	return products, total, err
}

func (r *ProductRepository) Find(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, err
	}
	return &product, nil
}

// FindForUpdate loads a product inside the caller's transaction.
func (r *ProductRepository) FindForUpdate(tx *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := tx.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *ProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *ProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// CountInCategories reports how many products reference any of the ids.
// Used to refuse deleting a category that still has products.
func (r *ProductRepository) CountInCategories(ids []uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Where("category_id IN ?", ids).
		Count(&count).Error
	return count, err
}
