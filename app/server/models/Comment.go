package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Comment struct {
	gorm.Model

	PostID uint `gorm:"column:post_id;index;uniqueIndex:idx_comment_post_slug,priority:1"`
	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`

	// Materialized thread path. Slug is unique per post so leaf collisions
	// surface as duplicate-key errors and can be retried.
	Slug     string `gorm:"column:slug;uniqueIndex:idx_comment_post_slug,priority:2"`
	FullSlug string `gorm:"column:full_slug;index"` // sorting by this walks the tree depth first

	Comment string `gorm:"column:comment;type:text"`

	AddedByID uint `gorm:"column:added_by_id;index"`
	AddedBy   User `gorm:"foreignKey:AddedByID"`

	// Same invariant as Post: LikeCount == len(LikedBy)
	LikeCount int           `gorm:"column:like_count;default:0"`
	LikedBy   pq.Int64Array `gorm:"column:liked_by;type:bigint[];default:'{}'"`
}
