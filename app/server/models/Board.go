package models

import "gorm.io/gorm"

type Board struct {
	gorm.Model

	Title       string `gorm:"column:title"`
	Symbol      string `gorm:"column:symbol"`
	Description string `gorm:"column:description"`
	Slug        string `gorm:"column:slug;uniqueIndex"` // flat namespace, referenced by posts at create time
	IsAdmin     bool   `gorm:"column:is_admin"`

	// Deleting a user only detaches their boards
	AddedByID *uint `gorm:"column:added_by_id;index"`
	AddedBy   *User `gorm:"foreignKey:AddedByID;constraint:OnDelete:SET NULL"`
}
