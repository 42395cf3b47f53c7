package mocks

import (
	"context"
	"sort"

	"github.com/article-comments-api/internal/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users       map[string]*models.User
	EmailToUser map[string]*models.User
	GetError    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[string]*models.User),
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Add(user *models.User) {
	m.Users[user.ID] = user
	m.EmailToUser[user.Email] = user
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.EmailToUser[email], nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles map[string]*models.Article
	GetError error
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
	}
}

func (m *MockArticleRepository) Add(article *models.Article) {
	m.Articles[article.ID] = article
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Articles[id], nil
}

func (m *MockArticleRepository) List(ctx context.Context) ([]*models.Article, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	articles := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		articles = append(articles, a)
	}
	// Newest first, matching the real query's ORDER BY created_at DESC.
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	return articles, nil
}

// MockCommentRepository is a mock implementation of CommentRepository.
// It keeps comments in insertion order and resolves author names through
// the users map, mirroring the join done by the real repository.
type MockCommentRepository struct {
	Comments    []*models.Comment
	AuthorNames map[string]string

	CreateError error
	GetError    error
	UpdateError error

	ListCalls   int
	UpdateCalls int
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		AuthorNames: make(map[string]string),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Comments = append(m.Comments, comment)
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, c := range m.Comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID string, page, perPage int) ([]*models.CommentWithAuthor, int, error) {
	m.ListCalls++
	if m.GetError != nil {
		return nil, 0, m.GetError
	}

	var all []*models.CommentWithAuthor
	for _, c := range m.Comments {
		if c.ArticleID != articleID {
			continue
		}
		all = append(all, &models.CommentWithAuthor{
			Comment:    *c,
			AuthorName: m.AuthorNames[c.UserID],
		})
	}
	// Newest first, matching the real query's ORDER BY created_at DESC.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	offset := (page - 1) * perPage
	if offset >= total {
		return nil, total, nil
	}
	end := offset + perPage
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *MockCommentRepository) UpdateStatusIfPending(ctx context.Context, id, status string) (bool, error) {
	m.UpdateCalls++
	if m.UpdateError != nil {
		return false, m.UpdateError
	}
	for _, c := range m.Comments {
		if c.ID == id {
			if c.Status != models.CommentStatusPending {
				return false, nil
			}
			c.Status = status
			return true, nil
		}
	}
	return false, nil
}
