package types

import "time"

type CommentRequest struct {
	PostID  uint   `json:"post_id"`
	SlugID  string `json:"slug_id"` // parent comment slug; empty means root
	Comment string `json:"comment"`
}

type CommentInfo struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	Slug      string    `json:"slug"`
	FullSlug  string    `json:"full_slug"`
	Comment   string    `json:"comment"`
	AddedBy   uint      `json:"added_by"`
	LikeCount int       `json:"like_count"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_date"`
}

type CommentListResponse struct {
	Data    []CommentInfo `json:"data"`
	Message string        `json:"message"`
	Count   int           `json:"count"`
}
