package repository

import (
	"context"
	"database/sql"

	"github.com/article-comments-api/internal/database"
	"github.com/article-comments-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := `SELECT id, title, body, created_at, updated_at FROM articles WHERE id = $1`

	var article models.Article
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Title, &article.Body,
		&article.CreatedAt, &article.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &article, nil
}

// List retrieves all articles, newest first
func (r *articleRepo) List(ctx context.Context) ([]*models.Article, error) {
	query := `SELECT id, title, body, created_at, updated_at FROM articles ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		var article models.Article
		err := rows.Scan(
			&article.ID, &article.Title, &article.Body,
			&article.CreatedAt, &article.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		articles = append(articles, &article)
	}

	return articles, rows.Err()
}
