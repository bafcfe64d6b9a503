package models

import "gorm.io/gorm"

// Contact is a message submitted through the public contact form. Resolved
// is flipped by an admin once the message has been handled.
type Contact struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"  json:"name"`
	Email    string `gorm:"size:255"           json:"email"`
	Phone    string `gorm:"size:20"            json:"phone"`
	Subject  string `gorm:"size:255"           json:"subject"`
	Message  string `gorm:"type:text;not null" json:"message"`
	Resolved bool   `gorm:"default:false"      json:"resolved"`
}
