package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/article-comments-api/internal/cache"
	"github.com/article-comments-api/internal/mocks"
	"github.com/article-comments-api/internal/models"
	"github.com/article-comments-api/internal/repository"
)

type commentFixture struct {
	svc      *commentService
	articles *mocks.MockArticleRepository
	comments *mocks.MockCommentRepository
	queue    *mocks.MockEnqueuer
	store    *cache.Store
}

func newCommentFixture() *commentFixture {
	articles := mocks.NewMockArticleRepository()
	comments := mocks.NewMockCommentRepository()
	queue := mocks.NewMockEnqueuer()
	store := cache.New()

	repos := &repository.Repositories{Article: articles, Comment: comments}
	cfg := mocks.StaticModerationConfig{TTL: time.Minute, Limit: 10}

	return &commentFixture{
		svc:      newCommentService(repos, store, queue, cfg, zerolog.Nop()),
		articles: articles,
		comments: comments,
		queue:    queue,
		store:    store,
	}
}

func (f *commentFixture) addArticle(id string) {
	f.articles.Add(&models.Article{ID: id, Title: "t", Body: "b"})
}

// seedComments inserts n published comments with descending recency, the
// first inserted being the newest.
func (f *commentFixture) seedComments(articleID string, n int) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		f.comments.Comments = append(f.comments.Comments, &models.Comment{
			ID:        fmt.Sprintf("c%d", i+1),
			ArticleID: articleID,
			UserID:    "u1",
			Content:   fmt.Sprintf("comment %d", i+1),
			Status:    models.CommentStatusPublished,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}
	f.comments.AuthorNames["u1"] = "John Doe"
}

func TestSubmitCreatesPendingAndEnqueues(t *testing.T) {
	f := newCommentFixture()
	f.addArticle("a1")

	id, err := f.svc.Submit(context.Background(), "a1", "u1", "hello there")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if id == "" {
		t.Fatal("Submit returned an empty comment id")
	}

	if len(f.comments.Comments) != 1 {
		t.Fatalf("stored %d comments, want 1", len(f.comments.Comments))
	}
	stored := f.comments.Comments[0]
	if stored.Status != models.CommentStatusPending {
		t.Errorf("status = %q, want %q", stored.Status, models.CommentStatusPending)
	}
	if stored.ID != id {
		t.Errorf("stored id = %q, want %q", stored.ID, id)
	}

	if enqueued := f.queue.Enqueued(); len(enqueued) != 1 || enqueued[0] != id {
		t.Errorf("enqueued = %v, want [%s]", enqueued, id)
	}
}

func TestSubmitUnknownArticle(t *testing.T) {
	f := newCommentFixture()

	if _, err := f.svc.Submit(context.Background(), "missing", "u1", "hello"); !errors.Is(err, ErrArticleNotFound) {
		t.Errorf("Submit error = %v, want ErrArticleNotFound", err)
	}
	if len(f.queue.Enqueued()) != 0 {
		t.Error("no job should be enqueued when the article does not exist")
	}
}

func TestSubmitCreateFailureDoesNotEnqueue(t *testing.T) {
	f := newCommentFixture()
	f.addArticle("a1")
	f.comments.CreateError = errors.New("insert failed")

	if _, err := f.svc.Submit(context.Background(), "a1", "u1", "hello"); err == nil {
		t.Error("expected error when the insert fails")
	}
	if len(f.queue.Enqueued()) != 0 {
		t.Error("no job should be enqueued when the insert fails")
	}
}

func TestListClampsPagination(t *testing.T) {
	f := newCommentFixture()
	f.addArticle("a1")
	f.seedComments("a1", 3)

	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{"zero page", 0, 10, 1, 10},
		{"negative page", -5, 10, 1, 10},
		{"zero per_page", 1, 0, 1, 1},
		{"oversized per_page", 1, 100, 1, 50},
		{"in range", 2, 25, 2, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.svc.List(context.Background(), "a1", tt.page, tt.perPage)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if page.Pagination.CurrentPage != tt.wantPage {
				t.Errorf("current_page = %d, want %d", page.Pagination.CurrentPage, tt.wantPage)
			}
			if page.Pagination.PerPage != tt.wantPerPage {
				t.Errorf("per_page = %d, want %d", page.Pagination.PerPage, tt.wantPerPage)
			}
		})
	}
}

func TestListPaginationMetadata(t *testing.T) {
	f := newCommentFixture()
	f.addArticle("a1")
	f.seedComments("a1", 5)

	page, err := f.svc.List(context.Background(), "a1", 3, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(page.Data) != 1 {
		t.Fatalf("page has %d items, want 1", len(page.Data))
	}
	p := page.Pagination
	if p.Total != 5 || p.LastPage != 3 {
		t.Errorf("total = %d, last_page = %d; want 5, 3", p.Total, p.LastPage)
	}
	if p.From == nil || *p.From != 5 || p.To == nil || *p.To != 5 {
		t.Errorf("from/to = %v/%v, want 5/5", p.From, p.To)
	}
}

func TestListEmptyPage(t *testing.T) {
	f := newCommentFixture()
	f.addArticle("a1")

	page, err := f.svc.List(context.Background(), "a1", 1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(page.Data) != 0 {
		t.Errorf("page has %d items, want 0", len(page.Data))
	}
	p := page.Pagination
	if p.Total != 0 || p.LastPage != 1 {
		t.Errorf("total = %d, last_page = %d; want 0, 1", p.Total, p.LastPage)
	}
	if p.From != nil || p.To != nil {
		t.Errorf("from/to = %v/%v, want nil/nil", p.From, p.To)
	}
}

func TestListIsCached(t *testing.T) {
	f := newCommentFixture()
	f.addArticle("a1")
	f.seedComments("a1", 3)

	for i := 0; i < 3; i++ {
		if _, err := f.svc.List(context.Background(), "a1", 1, 10); err != nil {
			t.Fatalf("List failed: %v", err)
		}
	}

	if f.comments.ListCalls != 1 {
		t.Errorf("repository queried %d times, want 1 (read-through cache)", f.comments.ListCalls)
	}
}

func TestListDistinctPagesAreDistinctEntries(t *testing.T) {
	f := newCommentFixture()
	f.addArticle("a1")
	f.seedComments("a1", 5)

	if _, err := f.svc.List(context.Background(), "a1", 1, 2); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if _, err := f.svc.List(context.Background(), "a1", 2, 2); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if f.comments.ListCalls != 2 {
		t.Errorf("repository queried %d times, want 2 (one per page)", f.comments.ListCalls)
	}
}

func TestListReflectsModerationAfterInvalidation(t *testing.T) {
	f := newCommentFixture()
	f.addArticle("a1")
	f.comments.Comments = append(f.comments.Comments, &models.Comment{
		ID:        "c1",
		ArticleID: "a1",
		UserID:    "u1",
		Content:   "waiting for review",
		Status:    models.CommentStatusPending,
	})

	page, err := f.svc.List(context.Background(), "a1", 1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Data[0].Status != models.CommentStatusPending {
		t.Fatalf("status = %q, want pending", page.Data[0].Status)
	}

	// Moderation transitions the comment and invalidates the article tag.
	if _, err := f.comments.UpdateStatusIfPending(context.Background(), "c1", models.CommentStatusPublished); err != nil {
		t.Fatalf("UpdateStatusIfPending failed: %v", err)
	}
	f.store.Invalidate(models.ArticleCacheTag("a1"))

	page, err = f.svc.List(context.Background(), "a1", 1, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Data[0].Status != models.CommentStatusPublished {
		t.Errorf("status = %q, want published after invalidation", page.Data[0].Status)
	}
}

func TestListRepositoryErrorNotCached(t *testing.T) {
	f := newCommentFixture()
	f.addArticle("a1")
	f.seedComments("a1", 2)
	f.comments.GetError = errors.New("query failed")

	if _, err := f.svc.List(context.Background(), "a1", 1, 10); err == nil {
		t.Fatal("expected error when the query fails")
	}

	f.comments.GetError = nil
	page, err := f.svc.List(context.Background(), "a1", 1, 10)
	if err != nil {
		t.Fatalf("List after recovery failed: %v", err)
	}
	if len(page.Data) != 2 {
		t.Errorf("page has %d items, want 2", len(page.Data))
	}
}
