package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("DB host = %q, want localhost", cfg.Database.Host)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.Auth.TokenTTL)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when JWT_SECRET is missing")
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: "5433", User: "app", Password: "pw",
		Name: "comments", SSLMode: "disable",
	}

	want := "host=db port=5433 user=app password=pw dbname=comments sslmode=disable"
	if got := cfg.GetDSN(); got != want {
		t.Errorf("GetDSN = %q, want %q", got, want)
	}
}

func TestModerationConfigDefaults(t *testing.T) {
	cfg := NewModerationConfig()

	if got := cfg.CacheTTL(); got != 60*time.Second {
		t.Errorf("CacheTTL = %v, want 60s", got)
	}
	if got := cfg.RateLimit(); got != 10 {
		t.Errorf("RateLimit = %d, want 10", got)
	}

	want := []string{"spam", "abuse", "inappropriate", "offensive"}
	if got := cfg.BannedWords(); !reflect.DeepEqual(got, want) {
		t.Errorf("BannedWords = %v, want %v", got, want)
	}
}

func TestModerationConfigReadsLiveValues(t *testing.T) {
	cfg := NewModerationConfig()

	t.Setenv("COMMENT_CACHE_TTL", "5m")
	t.Setenv("COMMENT_RATE_LIMIT", "3")
	t.Setenv("BANNED_WORDS", "foo, bar ,baz")

	if got := cfg.CacheTTL(); got != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", got)
	}
	if got := cfg.RateLimit(); got != 3 {
		t.Errorf("RateLimit = %d, want 3", got)
	}
	want := []string{"foo", "bar", "baz"}
	if got := cfg.BannedWords(); !reflect.DeepEqual(got, want) {
		t.Errorf("BannedWords = %v, want %v", got, want)
	}
}

func TestModerationConfigIgnoresEmptyWords(t *testing.T) {
	cfg := NewModerationConfig()

	t.Setenv("BANNED_WORDS", "spam,, ,abuse")

	want := []string{"spam", "abuse"}
	if got := cfg.BannedWords(); !reflect.DeepEqual(got, want) {
		t.Errorf("BannedWords = %v, want %v", got, want)
	}
}
