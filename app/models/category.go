package models

import "gorm.io/gorm"

// Category is a node in the product taxonomy. ParentID is nil for roots.
// The (parent_id, name) pair is unique so siblings never share a name.
type Category struct {
	gorm.Model
	Name     string    `gorm:"size:255;not null;uniqueIndex:idx_categories_parent_name" json:"name"`
	ParentID *uint     `gorm:"uniqueIndex:idx_categories_parent_name"                   json:"parent_id"`
	Parent   *Category `gorm:"foreignKey:ParentID"                                      json:"-"`
}
