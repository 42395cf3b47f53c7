package service

import (
	"context"

	"github.com/article-comments-api/internal/models"
	"github.com/article-comments-api/internal/repository"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
}

func newArticleService(articles repository.ArticleRepository) *articleService {
	return &articleService{articles: articles}
}

// List returns all articles, newest first
func (s *articleService) List(ctx context.Context) ([]*models.Article, error) {
	return s.articles.List(ctx)
}

// Get returns the article or ErrArticleNotFound
func (s *articleService) Get(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}
