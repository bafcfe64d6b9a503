package seeders

import (
	"github.com/Wege0921/prodev-be-ecommerce/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	Register("store", SeedStore)
}

type seedProduct struct {
	name     string
	price    string
	stock    int
	imageURL string
	featured bool
}

var seedCatalog = []struct {
	category string
	products []seedProduct
}{
	{"Electronics", []seedProduct{
		{"Smartphone", "499.99", 25, "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=800", true},
		{"Laptop", "1199.00", 10, "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=800", true},
		{"Headphones", "79.99", 50, "https://images.unsplash.com/photo-1518444075430-7db54d7e12a9?w=800", false},
	}},
	{"Home", []seedProduct{
		{"Vacuum Cleaner", "149.99", 15, "https://images.unsplash.com/photo-1598300053656-01a6526ddfd2?w=800", false},
		{"Blender", "39.99", 30, "https://images.unsplash.com/photo-1603031613617-9e14c9b5d1b0?w=800", false},
	}},
	{"Books", []seedProduct{
		{"The Go Programming Language", "29.99", 100, "https://images.unsplash.com/photo-1519682337058-a94d519337bc?w=800", false},
		{"Clean Code", "34.99", 40, "https://images.unsplash.com/photo-1528207776546-365bb710ee93?w=800", true},
	}},
}

// SeedStore inserts the sample catalogue. Idempotent: existing categories
// and products are left alone, so it is safe to run on every deploy.
func SeedStore(db *gorm.DB) error {
	for _, entry := range seedCatalog {
		category := models.Category{Name: entry.category}
		err := db.Where("name = ? AND parent_id IS NULL", entry.category).
			FirstOrCreate(&category).Error
		if err != nil {
			return err
		}

		for _, p := range entry.products {
			price, err := decimal.NewFromString(p.price)
			if err != nil {
				return err
			}
			product := models.Product{
				Name:        p.name,
				Description: p.name,
				Price:       price,
				Stock:       p.stock,
				CategoryID:  category.ID,
				ImageURL:    p.imageURL,
				Featured:    p.featured,
			}
			err = db.Where("name = ? AND category_id = ?", p.name, category.ID).
				FirstOrCreate(&product).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}
