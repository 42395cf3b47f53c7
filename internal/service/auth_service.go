package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/article-comments-api/internal/config"
	"github.com/article-comments-api/internal/models"
	"github.com/article-comments-api/internal/repository"
)

// authService issues and verifies HS256 bearer tokens. Logout revokes a
// token by its jti; revoked ids are kept in memory until they would have
// expired anyway.
type authService struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> token expiry
}

func newAuthService(users repository.UserRepository, cfg *config.AuthConfig, log zerolog.Logger) *authService {
	return &authService{
		users:   users,
		secret:  []byte(cfg.JWTSecret),
		ttl:     cfg.TokenTTL,
		log:     log.With().Str("service", "auth").Logger(),
		revoked: make(map[string]time.Time),
	}
}

// Login verifies the credentials and returns a signed token
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("User logged in")
	return token, nil
}

// Logout revokes the token by adding its jti to the revocation set
func (s *authService) Logout(token string) {
	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[claims.ID] = time.Now().Add(s.ttl)

	// Drop revocations for tokens that have expired on their own.
	now := time.Now()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
}

// Authenticate parses and verifies a bearer token and returns its user
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	s.mu.Lock()
	_, isRevoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if isRevoked {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return user, nil
}
