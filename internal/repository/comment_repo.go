package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/article-comments-api/internal/database"
	"github.com/article-comments-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, article_id, user_id, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.ArticleID, comment.UserID, comment.Content,
		comment.Status, comment.CreatedAt, comment.UpdatedAt,
	)
	return err
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `SELECT id, article_id, user_id, content, status, created_at, updated_at FROM comments WHERE id = $1`

	var comment models.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.ArticleID, &comment.UserID, &comment.Content,
		&comment.Status, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListByArticle returns one page of an article's comments ordered by creation
// time descending, joined with the author's name, plus the total count.
func (r *commentRepo) ListByArticle(ctx context.Context, articleID string, page, perPage int) ([]*models.CommentWithAuthor, int, error) {
	offset := (page - 1) * perPage

	query := `
		SELECT c.id, c.article_id, c.user_id, c.content, c.status, c.created_at, c.updated_at, u.name
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.article_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, articleID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var comments []*models.CommentWithAuthor
	for rows.Next() {
		var c models.CommentWithAuthor
		err := rows.Scan(
			&c.ID, &c.ArticleID, &c.UserID, &c.Content, &c.Status,
			&c.CreatedAt, &c.UpdatedAt, &c.AuthorName,
		)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE article_id = $1`, articleID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// UpdateStatusIfPending performs the single-row conditional status transition.
func (r *commentRepo) UpdateStatusIfPending(ctx context.Context, id, status string) (bool, error) {
	query := `UPDATE comments SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id, models.CommentStatusPending)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}
