package types

import "time"

type BoardRequest struct {
	Title       string `json:"title"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
}

type BoardInfo struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Symbol      string    `json:"symbol"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	IsAdmin     bool      `json:"is_admin"`
	AddedBy     *uint     `json:"added_by"`
	CreatedAt   time.Time `json:"created_date"`
	ModifiedAt  time.Time `json:"modified_date"`
}

type BoardCreated struct {
	ID      uint      `json:"id"`
	Message string    `json:"message"`
	Board   BoardInfo `json:"board"`
}

type BoardListResponse struct {
	Data    []BoardInfo `json:"data"`
	Message string      `json:"message"`
	Count   int         `json:"count"`
}

type BoardResponse struct {
	Data    BoardInfo `json:"data"`
	Message string    `json:"message"`
}
