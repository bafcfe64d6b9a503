package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Wege0921/prodev-be-ecommerce/app/controllers"
	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/app/repositories"
	"github.com/Wege0921/prodev-be-ecommerce/app/services"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/auth"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/router"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type apiFixture struct {
	db      *gorm.DB
	handler http.Handler
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(
		sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{}, &models.Contact{},
	))

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	stockRepo := repositories.NewStockRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	categorySvc := services.NewCategoryService(categoryRepo, productRepo)
	productSvc := services.NewProductService(productRepo, categorySvc)
	orderSvc := services.NewOrderService(db, orderRepo, productRepo, stockRepo)
	authSvc := services.NewAuthService(userRepo)
	userSvc := services.NewUserService(userRepo)
	contactSvc := services.NewContactService(contactRepo)

	r := router.New()
	Register(r, Controllers{
		Auth:       controllers.NewAuthController(authSvc, userSvc),
		Products:   controllers.NewProductController(productSvc),
		Categories: controllers.NewCategoryController(categorySvc),
		Orders:     controllers.NewOrderController(orderSvc),
		Contacts:   controllers.NewContactController(contactSvc),
	})

	return &apiFixture{db: db, handler: r.Handler()}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) tokenFor(t *testing.T, isAdmin bool) (string, *models.User) {
	t.Helper()
	phone := "+251911000001"
	if isAdmin {
		phone = "+251911000002"
	}
	user := &models.User{Name: "Test", Phone: phone, IsAdmin: isAdmin}
	require.NoError(t, f.db.Create(user).Error)
	token, err := auth.GenerateToken(user.ID, user.IsAdmin)
	require.NoError(t, err)
	return token, user
}

func (f *apiFixture) seedProduct(t *testing.T, stock int) *models.Product {
	t.Helper()
	category := &models.Category{Name: "Electronics"}
	require.NoError(t, f.db.Create(category).Error)
	product := &models.Product{
		Name:       "Smartphone",
		Price:      decimal.RequireFromString("499.99"),
		Stock:      stock,
		CategoryID: category.ID,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func TestPublicCatalogueNeedsNoAuth(t *testing.T) {
	f := newAPIFixture(t)
	f.seedProduct(t, 10)

	rec := f.do(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderEndpointsRequireAuth(t *testing.T) {
	f := newAPIFixture(t)
	product := f.seedProduct(t, 10)

	body := map[string]any{
		"delivery_address": "Bole",
		"lines":            []map[string]any{{"product_id": product.ID, "quantity": 1}},
	}

	rec := f.do(t, http.MethodPost, "/api/orders", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _ := f.tokenFor(t, false)
	rec = f.do(t, http.MethodPost, "/api/orders", token, body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/orders", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateOrderConflictMapsTo409(t *testing.T) {
	f := newAPIFixture(t)
	product := f.seedProduct(t, 2)
	token, _ := f.tokenFor(t, false)

	body := map[string]any{
		"delivery_address": "Bole",
		"lines":            []map[string]any{{"product_id": product.ID, "quantity": 5}},
	}
	rec := f.do(t, http.MethodPost, "/api/orders", token, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminGateOnStatusTransition(t *testing.T) {
	f := newAPIFixture(t)
	product := f.seedProduct(t, 10)

	userToken, _ := f.tokenFor(t, false)
	rec := f.do(t, http.MethodPost, "/api/orders", userToken, map[string]any{
		"delivery_address": "Bole",
		"lines":            []map[string]any{{"product_id": product.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := fmt.Sprintf("/api/admin/orders/%d/status", created.Data.ID)

	rec = f.do(t, http.MethodPatch, path, userToken, map[string]string{"status": "PAID"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, _ := f.tokenFor(t, true)
	rec = f.do(t, http.MethodPatch, path, adminToken, map[string]string{"status": "PAID"})
	assert.Equal(t, http.StatusOK, rec.Code)

	// invalid target maps to 422
	rec = f.do(t, http.MethodPatch, path, adminToken, map[string]string{"status": "REFUNDED"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// illegal but known target maps to 409
	rec = f.do(t, http.MethodPatch, path, adminToken, map[string]string{"status": "PENDING"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUsersOnlySeeTheirOwnOrders(t *testing.T) {
	f := newAPIFixture(t)
	product := f.seedProduct(t, 10)

	ownerToken, _ := f.tokenFor(t, false)
	rec := f.do(t, http.MethodPost, "/api/orders", ownerToken, map[string]any{
		"delivery_address": "Bole",
		"lines":            []map[string]any{{"product_id": product.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	other := &models.User{Name: "Other", Phone: "+251911000003"}
	require.NoError(t, f.db.Create(other).Error)
	otherToken, err := auth.GenerateToken(other.ID, false)
	require.NoError(t, err)

	path := fmt.Sprintf("/api/orders/%d", created.Data.ID)
	rec = f.do(t, http.MethodGet, path, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "foreign orders read as missing")

	rec = f.do(t, http.MethodGet, path, ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContactSubmitAndAdminList(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "Abebe",
		"message": "Do you deliver to Adama?",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	// missing message is a validation error
	rec = f.do(t, http.MethodPost, "/api/contact", "", map[string]string{"name": "Abebe"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	userToken, _ := f.tokenFor(t, false)
	rec = f.do(t, http.MethodGet, "/api/admin/contacts", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, _ := f.tokenFor(t, true)
	rec = f.do(t, http.MethodGet, "/api/admin/contacts", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var contact models.Contact
	require.NoError(t, f.db.First(&contact).Error)
	rec = f.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/contacts/%d/resolve", contact.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, f.db.First(&contact, contact.ID).Error)
	assert.True(t, contact.Resolved)

	rec = f.do(t, http.MethodPatch, "/api/admin/contacts/999/resolve", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
