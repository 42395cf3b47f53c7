package api

import (
	"sync"
	"time"

	"github.com/article-comments-api/internal/config"
)

// rateLimitWindow is the length of one fixed rate-limit window
const rateLimitWindow = time.Minute

type window struct {
	start time.Time
	count int
}

// rateLimiter counts submissions per key in fixed windows. The limit itself
// comes from live configuration on every call, so it can change without a
// restart.
type rateLimiter struct {
	cfg config.ModerationConfig
	now func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

func newRateLimiter(cfg config.ModerationConfig) *rateLimiter {
	return &rateLimiter{
		cfg:     cfg,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// allow reports whether another request from key fits in the current window
func (rl *rateLimiter) allow(key string) bool {
	limit := rl.cfg.RateLimit()
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rateLimitWindow {
		rl.windows[key] = &window{start: now, count: 1}
		return true
	}

	if w.count >= limit {
		return false
	}

	w.count++
	return true
}
