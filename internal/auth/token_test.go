package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-cloud/compute-client/internal/auth"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

func TestStaticTokenManager_GetToken(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("fixed-token")

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fixed-token", token)
}

func TestStaticTokenManager_RefreshFails(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("fixed-token")

	err := manager.RefreshToken(context.Background())
	require.ErrorIs(t, err, compute.ErrStaticTokenCannotRefresh)
}

func TestStaticTokenManager_SetToken(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("old-token")
	manager.SetToken("new-token", time.Now().Add(time.Hour))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-token", token)
}

func TestToken_Expired(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		token    *auth.Token
		expected bool
	}{
		{
			name:     "no expiry never expires",
			token:    &auth.Token{Value: "t"},
			expected: false,
		},
		{
			name:     "future expiry",
			token:    &auth.Token{Value: "t", ExpiresAt: time.Now().Add(time.Hour)},
			expected: false,
		},
		{
			name:     "past expiry",
			token:    &auth.Token{Value: "t", ExpiresAt: time.Now().Add(-time.Minute)},
			expected: true,
		},
		{
			name:     "within skew window",
			token:    &auth.Token{Value: "t", ExpiresAt: time.Now().Add(5 * time.Second)},
			expected: true,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.token.Expired())
		})
	}
}
