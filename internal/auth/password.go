package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/meridian-cloud/compute-client/internal/constants"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// PasswordConfig configures the password authentication flow.
type PasswordConfig struct {
	// TokenURL is the full token endpoint,
	// e.g. "https://compute.example.com/v2/auth/tokens".
	TokenURL string
	Username string
	Password string
}

// PasswordTokenManager obtains tokens from the provider's token endpoint
// using username/password credentials and refreshes them before expiry.
// The token request rides on a plain http.Client: auth stays off the
// retrying API transport.
type PasswordTokenManager struct {
	config     *PasswordConfig
	httpClient *http.Client
	store      tokenStore
	refreshMu  sync.Mutex
}

// NewPasswordTokenManager creates a password-flow token manager.
func NewPasswordTokenManager(config *PasswordConfig) *PasswordTokenManager {
	return &PasswordTokenManager{
		config: config,
		httpClient: &http.Client{
			Timeout: constants.ShortHTTPTimeout,
		},
	}
}

// GetToken returns a valid token, requesting a fresh one when the cached
// token is missing or about to expire.
func (m *PasswordTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token != nil && !token.Expired() {
		return token.Value, nil
	}

	if err := m.RefreshToken(ctx); err != nil {
		return "", err
	}

	return m.store.Get().Value, nil
}

// RefreshToken requests a fresh token from the token endpoint.
func (m *PasswordTokenManager) RefreshToken(ctx context.Context) error {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if token := m.store.Get(); token != nil && !token.Expired() {
		return nil
	}

	if m.config.Username == "" || m.config.Password == "" {
		return compute.ErrCredentialsRequired
	}

	token, err := m.requestToken(ctx)
	if err != nil {
		return err
	}

	m.store.Set(token)

	return nil
}

// SetToken replaces the cached token.
func (m *PasswordTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{Value: token, ExpiresAt: expiresAt})
}

type tokenRequest struct {
	Auth struct {
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"auth"`
}

type tokenResponse struct {
	Token struct {
		ExpiresAt time.Time `json:"expires_at"`
	} `json:"token"`
}

func (m *PasswordTokenManager) requestToken(ctx context.Context) (*Token, error) {
	var reqBody tokenRequest

	reqBody.Auth.Username = m.config.Username
	reqBody.Auth.Password = m.config.Password

	encoded, err := json.Marshal(&reqBody)
	if err != nil {
		return nil, fmt.Errorf("encoding token request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("building token request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if httpResp.StatusCode >= 400 {
		return nil, compute.ParseResponseError(httpResp.StatusCode, body)
	}

	value := httpResp.Header.Get("X-Subject-Token")
	if value == "" {
		return nil, compute.ErrNoTokenInResponse
	}

	var respBody tokenResponse
	if err := json.Unmarshal(body, &respBody); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	return &Token{Value: value, ExpiresAt: respBody.Token.ExpiresAt}, nil
}
