package repositories

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

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

	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) *models.Product {
	t.Helper()
	category := &models.Category{Name: "Electronics"}
	require.NoError(t, db.Create(category).Error)
	product := &models.Product{
		Name:       "Smartphone",
		Price:      decimal.RequireFromString("499.99"),
		Stock:      stock,
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestReserveDecrementsExactly(t *testing.T) {
	db := testDB(t)
	product := seedProduct(t, db, 10)
	repo := NewStockRepository(db)

	require.NoError(t, repo.Reserve(product.ID, 4))

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 6, got.Stock)

	// taking the rest down to zero is allowed
	require.NoError(t, repo.Reserve(product.ID, 6))
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 0, got.Stock)

	// and one more unit is a conflict
	err := repo.Reserve(product.ID, 1)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestReserveInsufficientStockLeavesCountUntouched(t *testing.T) {
	db := testDB(t)
	product := seedProduct(t, db, 3)
	repo := NewStockRepository(db)

	err := repo.Reserve(product.ID, 5)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 3, got.Stock)
}

func TestReserveMissingProductIsConflict(t *testing.T) {
	db := testDB(t)
	repo := NewStockRepository(db)

	err := repo.Reserve(12345, 1)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestReserveRacesNeverOversell(t *testing.T) {
	db := testDB(t)
	product := seedProduct(t, db, 10)
	repo := NewStockRepository(db)

	var wg sync.WaitGroup
	results := make([]error, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.Reserve(product.ID, 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 10, succeeded, "exactly the available units are reserved")

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 0, got.Stock)
}

func TestReleaseReturnsUnits(t *testing.T) {
	db := testDB(t)
	product := seedProduct(t, db, 5)
	repo := NewStockRepository(db)

	require.NoError(t, repo.Reserve(product.ID, 5))
	require.NoError(t, repo.Release(product.ID, 2))

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 2, got.Stock)
}
