package services

import (
	"fmt"
	"time"

	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/app/repositories"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/cache"
	"github.com/shopspring/decimal"
)

const (
	productCachePrefix = "catalog:products:"
	catalogCacheTTL    = 5 * time.Minute
)

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name        string          `json:"name"        validate:"required,max=255"`
	Description string          `json:"description" validate:"nullable"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"       validate:"gte=0"`
	CategoryID  uint            `json:"category_id" validate:"required"`
	ImageURL    string          `json:"image_url"   validate:"nullable,url"`
	Featured    bool            `json:"featured"`
}

// ListProductsQuery carries the decoded listing filters. CategoryID of
// zero means no category filter; OnlyCategory narrows a category filter to
// the category itself, excluding its subtree.
type ListProductsQuery struct {
	CategoryID   uint
	OnlyCategory bool
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	InStock      bool
	Featured     *bool
	Search       string
	Sort         string
	Page         int
	PerPage      int
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`
}

type ProductService struct {
	products   *repositories.ProductRepository
	categories *CategoryService
}

func NewProductService(products *repositories.ProductRepository, categories *CategoryService) *ProductService {
	return &ProductService{products: products, categories: categories}
}

// List returns a filtered page of products. A category filter matches the
// category and everything below it in the tree. Pages are cached per query
// shape and invalidated when any product or category changes.
func (s *ProductService) List(q ListProductsQuery) (*ProductPage, error) {
	key := listCacheKey(q)
	var page ProductPage
	if cache.Get(key, &page) {
		return &page, nil
	}

	filter := repositories.ProductFilter{
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		InStock:  q.InStock,
		Featured: q.Featured,
		Search:   q.Search,
		Sort:     q.Sort,
		Page:     q.Page,
		PerPage:  q.PerPage,
	}
	if q.CategoryID != 0 {
		if q.OnlyCategory {
			if _, err := s.categories.Find(q.CategoryID); err != nil {
				return nil, err
			}
			filter.CategoryIDs = []uint{q.CategoryID}
		} else {
			ids, err := s.categories.DescendantSet(q.CategoryID)
			if err != nil {
				return nil, err
			}
			filter.CategoryIDs = ids
		}
	}

	products, total, err := s.products.List(filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	page = ProductPage{
		Products: products,
		Total:    total,
		Page:     filter.Page,
		PerPage:  filter.PerPage,
	}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PerPage < 1 || page.PerPage > 100 {
		page.PerPage = 20
	}
	cache.Set(key, page, catalogCacheTTL)
	return &page, nil
}

func (s *ProductService) Find(id uint) (*models.Product, error) {
	key := fmt.Sprintf("%sid:%d", productCachePrefix, id)
	var product models.Product
	if cache.Get(key, &product) {
		return &product, nil
	}
	p, err := s.products.Find(id)
	if err != nil {
		return nil, err
	}
	cache.Set(key, p, catalogCacheTTL)
	return p, nil
}

func (s *ProductService) Create(in ProductInput) (*models.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	if _, err := s.categories.Find(in.CategoryID); err != nil {
		return nil, apperr.ValidationField("category_id", "category does not exist")
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		ImageURL:    in.ImageURL,
		Featured:    in.Featured,
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	cache.ForgetPrefix(productCachePrefix)
	return product, nil
}

func (s *ProductService) Update(id uint, in ProductInput) (*models.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	product, err := s.products.Find(id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != product.CategoryID {
		if _, err := s.categories.Find(in.CategoryID); err != nil {
			return nil, apperr.ValidationField("category_id", "category does not exist")
		}
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Stock = in.Stock
	product.CategoryID = in.CategoryID
	product.ImageURL = in.ImageURL
	product.Featured = in.Featured
	if err := s.products.Update(product); err != nil {
		return nil, err
	}
	cache.ForgetPrefix(productCachePrefix)
	return product, nil
}

func (s *ProductService) Delete(id uint) error {
	if _, err := s.products.Find(id); err != nil {
		return err
	}
	if err := s.products.Delete(id); err != nil {
		return err
	}
	cache.ForgetPrefix(productCachePrefix)
	return nil
}

func validateProductInput(in ProductInput) error {
	if in.Price.IsNegative() {
		return apperr.ValidationField("price", "price cannot be negative")
	}
	if in.Stock < 0 {
		return apperr.ValidationField("stock", "stock cannot be negative")
	}
	return nil
}

func listCacheKey(q ListProductsQuery) string {
	min, max := "", ""
	if q.MinPrice != nil {
		min = q.MinPrice.String()
	}
	if q.MaxPrice != nil {
		max = q.MaxPrice.String()
	}
	featured := ""
	if q.Featured != nil {
		featured = fmt.Sprintf("%t", *q.Featured)
	}
	return fmt.Sprintf("%slist:c%d.%t:p%s-%s:s%t:f%s:q%s:o%s:%d:%d",
		productCachePrefix, q.CategoryID, q.OnlyCategory, min, max, q.InStock, featured,
		q.Search, q.Sort, q.Page, q.PerPage)
}
