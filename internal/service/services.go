package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/article-comments-api/internal/cache"
	"github.com/article-comments-api/internal/config"
	"github.com/article-comments-api/internal/models"
	"github.com/article-comments-api/internal/repository"
)

// Service-level sentinel errors, translated to HTTP statuses by the API layer
var (
	ErrArticleNotFound    = errors.New("article not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Enqueuer schedules an asynchronous moderation job for a comment
type Enqueuer interface {
	Enqueue(commentID string)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	// Logout revokes the given bearer token so it can no longer authenticate.
	Logout(token string)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// ArticleService defines the interface for article read operations
type ArticleService interface {
	List(ctx context.Context) ([]*models.Article, error)
	Get(ctx context.Context, id string) (*models.Article, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	// Submit persists a pending comment and enqueues exactly one moderation
	// job for it, returning the new comment's id.
	Submit(ctx context.Context, articleID, userID, content string) (string, error)
	// List serves one page of an article's comments through the read-through
	// cache.
	List(ctx context.Context, articleID string, page, perPage int) (*models.CommentPage, error)
}

// Services holds all service interfaces
type Services struct {
	Auth    AuthService
	Article ArticleService
	Comment CommentService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, store *cache.Store, queue Enqueuer, modCfg config.ModerationConfig, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Auth:    newAuthService(repos.User, &cfg.Auth, log),
		Article: newArticleService(repos.Article),
		Comment: newCommentService(repos, store, queue, modCfg, log),
	}
}
