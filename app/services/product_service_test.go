package services

import (
	"testing"

	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) *ProductService {
	_, products, _, _ := newRepos(db)
	return NewProductService(products, newCategoryService(db))
}

func seedCatalog(t *testing.T, db *gorm.DB) (electronics, audio, books *models.Category) {
	t.Helper()
	electronics = seedCategory(t, db, "Electronics", nil)
	audio = seedCategory(t, db, "Audio", &electronics.ID)
	books = seedCategory(t, db, "Books", nil)

	seedProduct(t, db, "Smartphone", "499.99", 25, electronics.ID)
	seedProduct(t, db, "Laptop", "1199.00", 0, electronics.ID)
	seedProduct(t, db, "Headphones", "79.99", 50, audio.ID)
	seedProduct(t, db, "Clean Code", "34.99", 40, books.ID)
	return
}

func TestListFiltersByCategorySubtree(t *testing.T) {
	db := testDB(t)
	electronics, audio, _ := seedCatalog(t, db)
	svc := newProductService(db)

	page, err := svc.List(ListProductsQuery{CategoryID: electronics.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total, "subtree filter includes Audio products")

	page, err = svc.List(ListProductsQuery{CategoryID: audio.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, "Headphones", page.Products[0].Name)

	_, err = svc.List(ListProductsQuery{CategoryID: 999})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	page, err = svc.List(ListProductsQuery{CategoryID: electronics.ID, OnlyCategory: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total, "non-recursive filter excludes Audio products")
}

func TestListFiltersByPriceStockAndSearch(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	svc := newProductService(db)

	min := mustDecimal(t, "50")
	max := mustDecimal(t, "600")
	page, err := svc.List(ListProductsQuery{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total) // Smartphone, Headphones

	page, err = svc.List(ListProductsQuery{InStock: true})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total, "Laptop at zero stock is excluded")

	page, err = svc.List(ListProductsQuery{Search: "phone"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total) // Smartphone, Headphones

	page, err = svc.List(ListProductsQuery{Sort: "price_asc"})
	require.NoError(t, err)
	require.NotEmpty(t, page.Products)
	assert.Equal(t, "Clean Code", page.Products[0].Name)
}

func TestListPaginates(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	svc := newProductService(db)

	page, err := svc.List(ListProductsQuery{Sort: "name", Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Total)
	assert.Len(t, page.Products, 2)

	page2, err := svc.List(ListProductsQuery{Sort: "name", Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Products, 2)
	assert.NotEqual(t, page.Products[0].ID, page2.Products[0].ID)
}

func TestCreateProductValidations(t *testing.T) {
	db := testDB(t)
	cat := seedCategory(t, db, "Electronics", nil)
	svc := newProductService(db)

	_, err := svc.Create(ProductInput{Name: "Smartphone", Price: mustDecimal(t, "-1"), CategoryID: cat.ID})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Create(ProductInput{Name: "Smartphone", Price: mustDecimal(t, "499.99"), CategoryID: 999})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	product, err := svc.Create(ProductInput{
		Name:       "Smartphone",
		Price:      mustDecimal(t, "499.99"),
		Stock:      25,
		CategoryID: cat.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
}
