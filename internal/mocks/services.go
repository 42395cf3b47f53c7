package mocks

import (
	"sync"
	"time"
)

// MockEnqueuer records comment IDs handed to the moderation queue
type MockEnqueuer struct {
	mu  sync.Mutex
	IDs []string
}

func NewMockEnqueuer() *MockEnqueuer {
	return &MockEnqueuer{}
}

func (m *MockEnqueuer) Enqueue(commentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IDs = append(m.IDs, commentID)
}

func (m *MockEnqueuer) Enqueued() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.IDs...)
}

// MockInvalidator records cache tags that were invalidated
type MockInvalidator struct {
	mu   sync.Mutex
	Tags []string
}

func NewMockInvalidator() *MockInvalidator {
	return &MockInvalidator{}
}

func (m *MockInvalidator) Invalidate(tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tags = append(m.Tags, tag)
}

func (m *MockInvalidator) Invalidated() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Tags...)
}

// StaticModerationConfig returns fixed moderation settings. Words is typed
// loosely so tests can feed malformed values through the same path the
// live configuration uses.
type StaticModerationConfig struct {
	TTL   time.Duration
	Limit int
	Words any
}

func (c StaticModerationConfig) CacheTTL() time.Duration { return c.TTL }
func (c StaticModerationConfig) RateLimit() int          { return c.Limit }
func (c StaticModerationConfig) BannedWords() any        { return c.Words }
