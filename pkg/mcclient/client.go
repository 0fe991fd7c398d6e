// Package mcclient provides the main entry point for creating Meridian compute API clients
package mcclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/meridian-cloud/compute-client/internal/client"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// New creates a new Meridian compute API client.
func New(ctx context.Context, config *compute.Config) (compute.Client, error) {
	if config == nil {
		return nil, compute.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, compute.ErrEndpointRequired
	}

	// Normalize API endpoint
	apiEndpoint := strings.TrimSuffix(config.APIEndpoint, "/")
	if !strings.HasPrefix(apiEndpoint, "http://") && !strings.HasPrefix(apiEndpoint, "https://") {
		apiEndpoint = "https://" + apiEndpoint
	}

	config.APIEndpoint = apiEndpoint

	// The token endpoint lives alongside the compute API unless the caller
	// points somewhere else
	if needsAuth(config) && config.TokenURL == "" {
		config.TokenURL = apiEndpoint + "/v2/auth/tokens"
	}

	computeClient, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return computeClient, nil
}

// needsAuth checks if the config requires authentication.
func needsAuth(config *compute.Config) bool {
	return config.Token == "" && config.Username != ""
}

// NewWithEndpoint creates a new client with just an API endpoint (no auth).
func NewWithEndpoint(ctx context.Context, endpoint string) (compute.Client, error) {
	return New(ctx, &compute.Config{
		APIEndpoint: endpoint,
	})
}

// NewWithToken creates a new client with an API endpoint and auth token.
func NewWithToken(ctx context.Context, endpoint, token string) (compute.Client, error) {
	return New(ctx, &compute.Config{
		APIEndpoint: endpoint,
		Token:       token,
	})
}

// NewWithPassword creates a new client using username/password authentication.
func NewWithPassword(ctx context.Context, endpoint, username, password string) (compute.Client, error) {
	return New(ctx, &compute.Config{
		APIEndpoint: endpoint,
		Username:    username,
		Password:    password,
	})
}
