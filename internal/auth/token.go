// Package auth manages tokens for the Meridian compute API.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/meridian-cloud/compute-client/internal/constants"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// TokenManager provides auth tokens for outgoing requests.
type TokenManager interface {
	// GetToken returns a valid token, obtaining or refreshing one as needed.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken forces a token refresh.
	RefreshToken(ctx context.Context) error
	// SetToken replaces the current token.
	SetToken(token string, expiresAt time.Time)
}

// Token is an issued auth token with its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Expired reports whether the token needs refreshing. The expiry skew
// makes the client refresh slightly before the provider would reject it.
func (t *Token) Expired() bool {
	if t.ExpiresAt.IsZero() {
		return false
	}

	return time.Now().After(t.ExpiresAt.Add(-constants.TokenExpirySkew))
}

// tokenStore is a mutex-guarded holder for the current token.
type tokenStore struct {
	mu    sync.RWMutex
	token *Token
}

func (s *tokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *tokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// StaticTokenManager provides a fixed token.
type StaticTokenManager struct {
	store tokenStore
}

// NewStaticTokenManager creates a manager around a pre-issued token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	manager := &StaticTokenManager{}
	manager.store.Set(&Token{Value: token})

	return manager
}

// GetToken returns the static token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token == nil {
		return "", nil
	}

	return token.Value, nil
}

// RefreshToken fails: a static token has nothing to refresh against.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return compute.ErrStaticTokenCannotRefresh
}

// SetToken replaces the static token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{Value: token, ExpiresAt: expiresAt})
}
