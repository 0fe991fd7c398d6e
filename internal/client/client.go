// Package client implements the compute.Client interface on top of the
// internal HTTP executor.
package client

import (
	"context"
	"fmt"

	"github.com/meridian-cloud/compute-client/internal/auth"
	"github.com/meridian-cloud/compute-client/internal/constants"
	"github.com/meridian-cloud/compute-client/internal/http"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// Client implements the compute.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       compute.Logger

	// Resource clients
	servers     compute.ServersClient
	flavors     compute.FlavorsClient
	images      compute.ImagesClient
	keypairs    compute.KeypairsClient
	limits      compute.LimitsClient
	hypervisors compute.HypervisorsClient
}

// createTokenManager creates the appropriate token manager for the
// configured credentials. A pre-issued token wins over username/password.
func createTokenManager(config *compute.Config) auth.TokenManager {
	if config.Token != "" {
		return auth.NewStaticTokenManager(config.Token)
	}

	if config.Username != "" && config.Password != "" {
		return auth.NewPasswordTokenManager(&auth.PasswordConfig{
			TokenURL: config.TokenURL,
			Username: config.Username,
			Password: config.Password,
		})
	}

	return nil // No authentication
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *compute.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.Cache != nil {
		cache, err := compute.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating cache: %w", err)
		}

		httpOpts = append(httpOpts, http.WithCache(cache, config.Cache.Policy))
	}

	return httpOpts, nil
}

// New creates a new compute API client.
func New(ctx context.Context, config *compute.Config) (*Client, error) {
	if config.APIEndpoint == "" {
		return nil, compute.ErrEndpointRequired
	}

	tokenManager := createTokenManager(config)

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(config.APIEndpoint, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.APIEndpoint,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTokenManager creates a new compute API client with a custom
// token manager.
func NewWithTokenManager(config *compute.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config.APIEndpoint == "" {
		return nil, compute.ErrEndpointRequired
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(config.APIEndpoint, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.APIEndpoint,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// GetToken returns the current auth token from the token manager.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", compute.ErrCredentialsRequired
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("getting token: %w", err)
	}

	return token, nil
}

// Resource client accessors

// Servers implements compute.Client.Servers.
func (c *Client) Servers() compute.ServersClient {
	return c.servers
}

// Flavors implements compute.Client.Flavors.
func (c *Client) Flavors() compute.FlavorsClient {
	return c.flavors
}

// Images implements compute.Client.Images.
func (c *Client) Images() compute.ImagesClient {
	return c.images
}

// Keypairs implements compute.Client.Keypairs.
func (c *Client) Keypairs() compute.KeypairsClient {
	return c.keypairs
}

// Limits implements compute.Client.Limits.
func (c *Client) Limits() compute.LimitsClient {
	return c.limits
}

// Hypervisors implements compute.Client.Hypervisors.
func (c *Client) Hypervisors() compute.HypervisorsClient {
	return c.hypervisors
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.servers = NewServersClient(c.httpClient)
	c.flavors = NewFlavorsClient(c.httpClient)
	c.images = NewImagesClient(c.httpClient)
	c.keypairs = NewKeypairsClient(c.httpClient)
	c.limits = NewLimitsClient(c.httpClient)
	c.hypervisors = NewHypervisorsClient(c.httpClient)
}

// loggerAdapter adapts compute.Logger to http.Logger.
type loggerAdapter struct {
	logger compute.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
