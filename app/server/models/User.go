package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	// Account identity
	Username string `gorm:"column:username;uniqueIndex"` // globally unique handle
	Email    string `gorm:"column:email;uniqueIndex"`    // globally unique address

	// Credentials, argon2id hash only
	Password string `gorm:"column:password"`

	// Profile
	ImageURL string `gorm:"column:image_url"`
	Verified bool   `gorm:"column:verified"`
	IsActive bool   `gorm:"column:is_active;default:true"`
}
