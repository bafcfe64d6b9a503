package models

import "gorm.io/gorm"

// User is a store customer or admin. Phone doubles as the login username
// and is stored normalized to E.164; Password holds the bcrypt hash of the
// 6-digit PIN. GoogleID is set for accounts federated through Google.
type User struct {
	gorm.Model
	Name     string  `gorm:"size:255"                       json:"name"`
	Phone    string  `gorm:"size:20;uniqueIndex;not null"   json:"phone"`
	Email    string  `gorm:"size:255;index"                 json:"email"`
	Password string  `gorm:"size:255"                       json:"-"` // hashed, never serialised
	GoogleID *string `gorm:"size:128;uniqueIndex"           json:"-"`
	IsAdmin  bool    `gorm:"not null;default:false"         json:"is_admin"`
}
