package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/article-comments-api/internal/cache"
	"github.com/article-comments-api/internal/config"
	"github.com/article-comments-api/internal/models"
	"github.com/article-comments-api/internal/repository"
)

// MaxPerPage caps the page size of comment listings. Larger requests are
// silently clamped, not rejected.
const MaxPerPage = 50

// commentService is the concrete implementation of CommentService
type commentService struct {
	articles repository.ArticleRepository
	comments repository.CommentRepository
	cache    *cache.Store
	queue    Enqueuer
	cfg      config.ModerationConfig
	log      zerolog.Logger
}

func newCommentService(repos *repository.Repositories, store *cache.Store, queue Enqueuer, cfg config.ModerationConfig, log zerolog.Logger) *commentService {
	return &commentService{
		articles: repos.Article,
		comments: repos.Comment,
		cache:    store,
		queue:    queue,
		cfg:      cfg,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// Submit persists the comment with status pending, then publishes the
// creation by enqueueing one moderation job. The enqueue happens after the
// persist has succeeded, never inside it; the job's own pending check
// absorbs any duplicate delivery.
func (s *commentService) Submit(ctx context.Context, articleID, userID, content string) (string, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return "", fmt.Errorf("failed to look up article: %w", err)
	}
	if article == nil {
		return "", ErrArticleNotFound
	}

	comment := &models.Comment{
		ID:        uuid.New().String(),
		ArticleID: article.ID,
		UserID:    userID,
		Content:   content,
		Status:    models.CommentStatusPending,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return "", fmt.Errorf("failed to create comment: %w", err)
	}

	s.queue.Enqueue(comment.ID)

	s.log.Info().
		Str("comment_id", comment.ID).
		Str("article_id", article.ID).
		Msg("Comment submitted for moderation")

	return comment.ID, nil
}

// List serves one page of the article's comments through the read-through
// cache. page and perPage are clamped before the cache key is built, so the
// same logical request always maps to the same entry.
func (s *commentService) List(ctx context.Context, articleID string, page, perPage int) (*models.CommentPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	tag := models.ArticleCacheTag(articleID)
	key := fmt.Sprintf("comments:article:%s:page:%d:per_page:%d", articleID, page, perPage)

	result, err := s.cache.Remember(tag, key, s.cfg.CacheTTL(), func() (any, error) {
		return s.buildPage(ctx, articleID, page, perPage)
	})
	if err != nil {
		return nil, err
	}

	return result.(*models.CommentPage), nil
}

// buildPage runs the paginated query and assembles the snapshot that gets
// cached. All statuses are included; the moderation status is part of the
// response.
func (s *commentService) buildPage(ctx context.Context, articleID string, page, perPage int) (*models.CommentPage, error) {
	comments, total, err := s.comments.ListByArticle(ctx, articleID, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, models.CommentView{
			ID:        c.ID,
			Content:   c.Content,
			Status:    c.Status,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
			User:      models.UserView{ID: c.UserID, Name: c.AuthorName},
		})
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	var from, to *int
	if len(views) > 0 {
		first := (page-1)*perPage + 1
		last := first + len(views) - 1
		from, to = &first, &last
	}

	return &models.CommentPage{
		Data: views,
		Pagination: models.Pagination{
			CurrentPage: page,
			PerPage:     perPage,
			Total:       total,
			LastPage:    lastPage,
			From:        from,
			To:          to,
		},
	}, nil
}
