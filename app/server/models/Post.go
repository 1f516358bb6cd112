package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Post struct {
	gorm.Model

	// Raw input
	Source    string `gorm:"column:source;type:text"` // pasted text, or a label for URL posts
	SourceURL string `gorm:"column:source_url"`       // article address for URL posts
	PostType  string `gorm:"column:post_type"`        // "Text" or "URL"

	// Extracted by the summarizer
	Title    string         `gorm:"column:title"`
	Summary  string         `gorm:"column:summary;type:text"`
	Text     string         `gorm:"column:text;type:text"`
	Keywords pq.StringArray `gorm:"column:keywords;type:text[]"`
	Tags     pq.StringArray `gorm:"column:tags;type:text[]"`

	Slug string `gorm:"column:slug;uniqueIndex"`

	BoardID uint  `gorm:"column:board_id;index"`
	Board   Board `gorm:"foreignKey:BoardID"`

	// Deleting a user cascades their posts
	AddedByID uint `gorm:"column:added_by_id;index"`
	AddedBy   User `gorm:"foreignKey:AddedByID;constraint:OnDelete:CASCADE"`

	// LikeCount must always equal len(LikedBy); the two move in one statement
	LikeCount int           `gorm:"column:like_count;default:0"`
	LikedBy   pq.Int64Array `gorm:"column:liked_by;type:bigint[];default:'{}'"`
}
