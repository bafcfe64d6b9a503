package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable item. Stock is the number of units available and is
// only ever decremented through the stock repository's conditional update.
type Product struct {
	gorm.Model
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Description string          `gorm:"type:text"               json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0"      json:"stock"`
	CategoryID  uint            `gorm:"not null;index"          json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID"   json:"category,omitempty"`
	ImageURL    string          `gorm:"size:1024"               json:"image_url"`
	Featured    bool            `gorm:"not null;default:false;index" json:"featured"`
}
