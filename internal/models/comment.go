package models

import (
	"time"
)

// Comment statuses. A comment starts out pending and transitions exactly
// once, to published or rejected, by the moderation job.
const (
	CommentStatusPending   = "pending"
	CommentStatusPublished = "published"
	CommentStatusRejected  = "rejected"
)

// MaxCommentLength is the maximum allowed comment content length
const MaxCommentLength = 2000

// Comment represents a comment on an article
type Comment struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CommentWithAuthor is a comment joined with its author's display name
type CommentWithAuthor struct {
	Comment
	AuthorName string `json:"-"`
}

// CommentView is the API projection of a comment
type CommentView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      UserView  `json:"user"`
}

// Pagination describes one page of a paginated listing. From and To are the
// 1-based indexes of the first and last item on the page; both are null when
// the page is empty.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	PerPage     int  `json:"per_page"`
	Total       int  `json:"total"`
	LastPage    int  `json:"last_page"`
	From        *int `json:"from"`
	To          *int `json:"to"`
}

// CommentPage is a snapshot of one page of an article's comments, exactly as
// served (and cached) by the comment listing endpoint.
type CommentPage struct {
	Data       []CommentView `json:"data"`
	Pagination Pagination    `json:"pagination"`
}
