package cache

import (
	"errors"
	"testing"
	"time"
)

// newTestStore returns a Store with a controllable clock
func newTestStore() (*Store, *time.Time) {
	s := New()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestGetMiss(t *testing.T) {
	s, _ := newTestStore()

	if _, ok := s.Get("article:1", "page:1"); ok {
		t.Error("expected miss on empty store")
	}
}

func TestSetAndGet(t *testing.T) {
	s, _ := newTestStore()

	s.Set("article:1", "page:1", "payload", time.Minute)

	v, ok := s.Get("article:1", "page:1")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if v != "payload" {
		t.Errorf("value = %v, want payload", v)
	}
}

func TestExpiry(t *testing.T) {
	s, now := newTestStore()

	s.Set("article:1", "page:1", "payload", time.Minute)

	*now = now.Add(59 * time.Second)
	if _, ok := s.Get("article:1", "page:1"); !ok {
		t.Error("expected hit before the TTL elapses")
	}

	*now = now.Add(2 * time.Second)
	if _, ok := s.Get("article:1", "page:1"); ok {
		t.Error("expected miss after the TTL elapses")
	}
}

func TestInvalidateEvictsWholeTag(t *testing.T) {
	s, _ := newTestStore()

	s.Set("article:1", "page:1", "a", time.Minute)
	s.Set("article:1", "page:2", "b", time.Minute)
	s.Set("article:2", "page:1", "c", time.Minute)

	s.Invalidate("article:1")

	if _, ok := s.Get("article:1", "page:1"); ok {
		t.Error("page:1 should be gone after invalidation")
	}
	if _, ok := s.Get("article:1", "page:2"); ok {
		t.Error("page:2 should be gone after invalidation")
	}
	if _, ok := s.Get("article:2", "page:1"); !ok {
		t.Error("other tags must survive invalidation")
	}
}

func TestSetAfterInvalidate(t *testing.T) {
	s, _ := newTestStore()

	s.Set("article:1", "page:1", "old", time.Minute)
	s.Invalidate("article:1")
	s.Set("article:1", "page:1", "new", time.Minute)

	v, ok := s.Get("article:1", "page:1")
	if !ok || v != "new" {
		t.Errorf("Get = %v, %v; want new, true", v, ok)
	}
}

func TestRememberFillsOnMissOnly(t *testing.T) {
	s, _ := newTestStore()

	fills := 0
	fill := func() (any, error) {
		fills++
		return "computed", nil
	}

	for i := 0; i < 3; i++ {
		v, err := s.Remember("article:1", "page:1", time.Minute, fill)
		if err != nil {
			t.Fatalf("Remember failed: %v", err)
		}
		if v != "computed" {
			t.Errorf("value = %v, want computed", v)
		}
	}

	if fills != 1 {
		t.Errorf("fill ran %d times, want 1", fills)
	}
}

func TestRememberErrorNotCached(t *testing.T) {
	s, _ := newTestStore()

	fillErr := errors.New("query failed")
	if _, err := s.Remember("article:1", "page:1", time.Minute, func() (any, error) {
		return nil, fillErr
	}); !errors.Is(err, fillErr) {
		t.Errorf("Remember error = %v, want %v", err, fillErr)
	}

	// The failure must not poison the key.
	v, err := s.Remember("article:1", "page:1", time.Minute, func() (any, error) {
		return "recovered", nil
	})
	if err != nil || v != "recovered" {
		t.Errorf("Remember after failure = %v, %v; want recovered, nil", v, err)
	}
}

func TestLenSweepsExpiredAndOrphaned(t *testing.T) {
	s, now := newTestStore()

	s.Set("article:1", "page:1", "a", time.Minute)
	s.Set("article:2", "page:1", "b", time.Hour)

	*now = now.Add(2 * time.Minute)
	if got := s.Len(); got != 1 {
		t.Errorf("Len after expiry = %d, want 1", got)
	}
}
