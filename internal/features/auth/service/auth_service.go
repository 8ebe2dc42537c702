package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"shipping-analytics/internal/core/cache"
)

var (
	// ErrInvalidPassword indicates the dashboard password did not match.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidSession indicates the session token is unknown or expired.
	ErrInvalidSession = errors.New("invalid session")
)

// AuthService gates the dashboard behind a single shared password and issues
// opaque session tokens. The token doubles as the session identifier that
// isolates uploaded data between browsers.
type AuthService struct {
	passwordHash []byte
	cache        cache.Cache
	ttl          time.Duration
	logger       *zap.Logger
}

// NewAuthService creates the service. passwordHash is a bcrypt hash.
func NewAuthService(passwordHash string, c cache.Cache, ttl time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		passwordHash: []byte(passwordHash),
		cache:        c,
		ttl:          ttl,
		logger:       logger,
	}
}

func tokenKey(token string) string {
	return "auth:token:" + token
}

// Login validates the password and issues a fresh session token.
func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		s.logger.Warn("login rejected")
		return "", ErrInvalidPassword
	}

	token := uuid.NewString()
	if err := s.cache.Set(ctx, tokenKey(token), []byte("1"), s.ttl); err != nil {
		return "", fmt.Errorf("store session token: %w", err)
	}

	s.logger.Info("session issued", zap.String("session", token))
	return token, nil
}

// Validate checks a session token and slides its expiry forward.
func (s *AuthService) Validate(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidSession
	}
	if _, err := s.cache.Get(ctx, tokenKey(token)); err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return ErrInvalidSession
		}
		return fmt.Errorf("validate session token: %w", err)
	}
	if err := s.cache.Set(ctx, tokenKey(token), []byte("1"), s.ttl); err != nil {
		return fmt.Errorf("refresh session token: %w", err)
	}
	return nil
}

// Logout revokes a session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.cache.Delete(ctx, tokenKey(token)); err != nil {
		return fmt.Errorf("revoke session token: %w", err)
	}
	s.logger.Info("session revoked", zap.String("session", token))
	return nil
}
