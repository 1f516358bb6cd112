package types

import "time"

type PostRequest struct {
	Source    string `json:"source"`
	SourceURL string `json:"source_url"`
	Board     string `json:"board"` // board slug
	Title     string `json:"title"`
}

type PostInfo struct {
	ID         uint       `json:"id"`
	Title      string     `json:"title"`
	Source     string     `json:"source"`
	SourceURL  string     `json:"source_url"`
	PostType   string     `json:"type"`
	Summary    string     `json:"summary"`
	Text       string     `json:"text"`
	Slug       string     `json:"slug"`
	Keywords   []string   `json:"keywords"`
	Tags       []string   `json:"tags"`
	Board      *BoardInfo `json:"board,omitempty"`
	AddedBy    uint       `json:"added_by"`
	LikeCount  int        `json:"like_count"`
	Liked      bool       `json:"liked"`
	CreatedAt  time.Time  `json:"created_date"`
	ModifiedAt time.Time  `json:"modified_date"`
}

type PostListResponse struct {
	Data    []PostInfo `json:"data"`
	Message string     `json:"message"`
	Count   int        `json:"count"`
}

type PostResponse struct {
	Data    PostInfo `json:"data"`
	Message string   `json:"message"`
}
