package models

import (
	"time"
)

// Article represents an article users can comment on. Articles are read-only
// as far as this service is concerned.
type Article struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ArticleCacheTag is the invalidation tag shared by every cached comment
// page of one article.
func ArticleCacheTag(articleID string) string {
	return "article:" + articleID
}
