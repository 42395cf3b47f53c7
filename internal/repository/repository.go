package repository

import (
	"context"

	"github.com/article-comments-api/internal/database"
	"github.com/article-comments-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	GetByID(ctx context.Context, id string) (*models.Article, error)
	List(ctx context.Context) ([]*models.Article, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	// ListByArticle returns one page of an article's comments, newest first,
	// together with the total number of comments for the article. No status
	// filter is applied: pending and rejected comments are listed alongside
	// published ones.
	ListByArticle(ctx context.Context, articleID string, page, perPage int) ([]*models.CommentWithAuthor, int, error)
	// UpdateStatusIfPending transitions the comment to the given status only
	// if it is still pending. It reports whether a row was actually updated,
	// so concurrent duplicate moderation jobs cannot double-transition.
	UpdateStatusIfPending(ctx context.Context, id, status string) (bool, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Article ArticleRepository
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
	}
}
