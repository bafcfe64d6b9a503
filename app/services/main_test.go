package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database per test. The pool is capped at
// a single connection so concurrent transactions serialize at the handle
// instead of tripping over sqlite's file locking.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Contact{},
	))
	return db
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{Name: "Abebe", Phone: "+251911234567"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string, parentID *uint) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, ParentID: parentID}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price string, stock int, categoryID uint) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		Price:      mustDecimal(t, price),
		Stock:      stock,
		CategoryID: categoryID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func newRepos(db *gorm.DB) (
	*repositories.OrderRepository,
	*repositories.ProductRepository,
	*repositories.StockRepository,
	*repositories.CategoryRepository,
) {
	return repositories.NewOrderRepository(db),
		repositories.NewProductRepository(db),
		repositories.NewStockRepository(db),
		repositories.NewCategoryRepository(db)
}
