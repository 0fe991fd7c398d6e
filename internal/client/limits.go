package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meridian-cloud/compute-client/internal/http"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// LimitsClient implements compute.LimitsClient
type LimitsClient struct {
	httpClient *http.Client
}

// NewLimitsClient creates a new limits client
func NewLimitsClient(httpClient *http.Client) *LimitsClient {
	return &LimitsClient{
		httpClient: httpClient,
	}
}

// Get implements compute.LimitsClient.Get
func (c *LimitsClient) Get(ctx context.Context) (*compute.Limits, error) {
	resp, err := c.httpClient.Get(ctx, "/v2/limits", nil)
	if err != nil {
		return nil, fmt.Errorf("getting limits: %w", err)
	}

	var result struct {
		Limits compute.Limits `json:"limits"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing limits response: %w", err)
	}

	return &result.Limits, nil
}
