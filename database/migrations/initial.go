package migrations

import (
	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_categories_table", &CreateCategoriesTable{})
	migration.Register("20260301000002_create_products_table", &CreateProductsTable{})
	migration.Register("20260301000003_create_orders_tables", &CreateOrdersTables{})
	migration.Register("20260301000004_create_contacts_table", &CreateContactsTable{})
}

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{})
}

func (m *CreateCategoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("categories")
}

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}

type CreateContactsTable struct{}

func (m *CreateContactsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Contact{})
}

func (m *CreateContactsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("contacts")
}
