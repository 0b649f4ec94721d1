package models

import "time"

type Article struct {
	ID           int64     `db:"id"            json:"id"`
	Title        string    `db:"title"         json:"title"`
	Slug         string    `db:"slug"          json:"slug"`
	Content      string    `db:"content"       json:"content"`
	Category     string    `db:"category"      json:"category"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updated_at"`
	IsFeatured   bool      `db:"is_featured"   json:"is_featured"`
	Status       string    `db:"status"        json:"status"`
	ThumbnailURL *string   `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
}

// swagger:model ArticleRequest
type ArticleRequest struct {
	Title        string  `json:"title"    example:"Как писать middleware в Go"`
	Slug         string  `json:"slug,omitempty"`
	Content      string  `json:"content"  example:"Текст статьи"`
	Category     string  `json:"category" example:"backend"`
	IsFeatured   bool    `json:"is_featured"`
	Status       string  `json:"status"   example:"draft"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}

// ListFilter — фильтры публичного списка статей.
type ListFilter struct {
	Category string
	Status   string
	Limit    int
	Offset   int
}

type TokenResponse struct {
	Token string `json:"token"`
}
