package moderation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/article-comments-api/internal/config"
	"github.com/article-comments-api/internal/models"
	"github.com/article-comments-api/internal/repository"
)

// CacheInvalidator evicts all cache entries under a tag
type CacheInvalidator interface {
	Invalidate(tag string)
}

// Moderator is the handler behind the asynchronous comment moderation job.
// It classifies a pending comment, writes the terminal status and then
// invalidates the article's cached comment pages.
type Moderator struct {
	comments repository.CommentRepository
	cache    CacheInvalidator
	cfg      config.ModerationConfig
	log      zerolog.Logger
}

// NewModerator creates a Moderator
func NewModerator(comments repository.CommentRepository, cache CacheInvalidator, cfg config.ModerationConfig, log zerolog.Logger) *Moderator {
	return &Moderator{
		comments: comments,
		cache:    cache,
		cfg:      cfg,
		log:      log.With().Str("component", "moderator").Logger(),
	}
}

// Moderate processes one comment. A non-nil error means the attempt failed
// for infrastructure reasons and the job should be retried; a comment that is
// no longer pending is a successful no-op, which makes duplicate deliveries
// of the same job harmless.
func (m *Moderator) Moderate(ctx context.Context, commentID string) error {
	comment, err := m.comments.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to load comment %s: %w", commentID, err)
	}
	if comment == nil {
		return fmt.Errorf("comment %s not found", commentID)
	}

	if comment.Status != models.CommentStatusPending {
		m.log.Info().
			Str("comment_id", comment.ID).
			Str("status", comment.Status).
			Msg("Comment moderation skipped - not pending")
		return nil
	}

	newStatus := models.CommentStatusPublished
	if m.classify(comment.Content) == Rejected {
		newStatus = models.CommentStatusRejected
	}

	transitioned, err := m.comments.UpdateStatusIfPending(ctx, comment.ID, newStatus)
	if err != nil {
		return fmt.Errorf("failed to update status of comment %s: %w", comment.ID, err)
	}
	if !transitioned {
		// A concurrent duplicate got there first; its run owns the
		// cache invalidation.
		m.log.Info().
			Str("comment_id", comment.ID).
			Msg("Comment already transitioned by another run")
		return nil
	}

	// The status write is committed at this point, so a reader that sees
	// the fresh cache partition always re-reads the new status.
	m.cache.Invalidate(models.ArticleCacheTag(comment.ArticleID))

	m.log.Info().
		Str("comment_id", comment.ID).
		Str("article_id", comment.ArticleID).
		Str("status", newStatus).
		Msg("Comment moderated")

	return nil
}

// classify reads the banned-word list from live configuration and classifies
// content against it.
func (m *Moderator) classify(content string) Decision {
	bannedWords := m.cfg.BannedWords()
	if _, ok := coerceWordList(bannedWords); !ok {
		m.log.Warn().
			Interface("value", bannedWords).
			Msg("banned_words is not a list, treating as empty")
	}

	return Classify(content, bannedWords)
}
