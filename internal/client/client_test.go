package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-cloud/compute-client/internal/auth"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

func TestNew_EmptyEndpoint(t *testing.T) {
	_, err := New(context.Background(), &compute.Config{})
	require.ErrorIs(t, err, compute.ErrEndpointRequired)
}

func TestNew_TokenWinsOverPassword(t *testing.T) {
	client, err := New(context.Background(), &compute.Config{
		APIEndpoint: "https://compute.example.com",
		Token:       "pre-issued",
		Username:    "admin",
		Password:    "secret",
	})
	require.NoError(t, err)

	_, ok := client.GetTokenManager().(*auth.StaticTokenManager)
	assert.True(t, ok)
}

func TestNew_PasswordCredentials(t *testing.T) {
	client, err := New(context.Background(), &compute.Config{
		APIEndpoint: "https://compute.example.com",
		Username:    "admin",
		Password:    "secret",
		TokenURL:    "https://compute.example.com/v2/auth/tokens",
	})
	require.NoError(t, err)

	_, ok := client.GetTokenManager().(*auth.PasswordTokenManager)
	assert.True(t, ok)
}

func TestNew_NoCredentials(t *testing.T) {
	client, err := New(context.Background(), &compute.Config{
		APIEndpoint: "https://compute.example.com",
	})
	require.NoError(t, err)
	assert.Nil(t, client.GetTokenManager())

	_, err = client.GetToken(context.Background())
	require.ErrorIs(t, err, compute.ErrCredentialsRequired)
}

func TestNew_InvalidCacheConfig(t *testing.T) {
	_, err := New(context.Background(), &compute.Config{
		APIEndpoint: "https://compute.example.com",
		Cache:       &compute.CacheConfig{Type: "redis"},
	})
	require.ErrorIs(t, err, compute.ErrUnsupportedCacheType)
}

func TestNewWithTokenManager(t *testing.T) {
	manager := auth.NewStaticTokenManager("custom-token")

	client, err := NewWithTokenManager(&compute.Config{
		APIEndpoint: "https://compute.example.com",
	}, manager)
	require.NoError(t, err)

	token, err := client.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "custom-token", token)
}

func TestClient_ResourceClientsInitialized(t *testing.T) {
	client := NewTestClient("https://compute.example.com")

	assert.NotNil(t, client.Servers())
	assert.NotNil(t, client.Flavors())
	assert.NotNil(t, client.Images())
	assert.NotNil(t, client.Keypairs())
	assert.NotNil(t, client.Limits())
	assert.NotNil(t, client.Hypervisors())
}
