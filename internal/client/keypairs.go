package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/meridian-cloud/compute-client/internal/http"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// KeypairsClient implements compute.KeypairsClient
type KeypairsClient struct {
	httpClient *http.Client
}

// NewKeypairsClient creates a new keypairs client
func NewKeypairsClient(httpClient *http.Client) *KeypairsClient {
	return &KeypairsClient{
		httpClient: httpClient,
	}
}

// List implements compute.KeypairsClient.List
func (c *KeypairsClient) List(ctx context.Context, params *compute.QueryParams) (*compute.KeypairList, error) {
	return c.ListWithPath(ctx, "/v2/os-keypairs", params)
}

// ListWithPath fetches one page of keypairs from the given path. The API
// wraps each list item in its own envelope, so items are unwrapped here
// before they reach the caller.
func (c *KeypairsClient) ListWithPath(ctx context.Context, path string, params *compute.QueryParams) (*compute.KeypairList, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing keypairs: %w", err)
	}

	var result struct {
		Keypairs []struct {
			Keypair compute.Keypair `json:"keypair"`
		} `json:"keypairs"`
		Links []compute.Link `json:"keypairs_links"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing keypairs list response: %w", err)
	}

	keypairs := make([]compute.Keypair, len(result.Keypairs))
	for i, item := range result.Keypairs {
		keypairs[i] = item.Keypair
	}

	return &compute.KeypairList{Resources: keypairs, Links: result.Links}, nil
}

// Get implements compute.KeypairsClient.Get
func (c *KeypairsClient) Get(ctx context.Context, name string) (*compute.Keypair, error) {
	path := fmt.Sprintf("/v2/os-keypairs/%s", name)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting keypair: %w", err)
	}

	var result struct {
		Keypair compute.Keypair `json:"keypair"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing keypair response: %w", err)
	}

	return &result.Keypair, nil
}

// Create implements compute.KeypairsClient.Create
func (c *KeypairsClient) Create(ctx context.Context, request *compute.KeypairCreateRequest) (*compute.Keypair, error) {
	if request.Name == "" {
		return nil, compute.ErrKeypairNameRequired
	}

	body := map[string]interface{}{"keypair": request}

	resp, err := c.httpClient.Post(ctx, "/v2/os-keypairs", body)
	if err != nil {
		return nil, fmt.Errorf("creating keypair: %w", err)
	}

	var result struct {
		Keypair compute.Keypair `json:"keypair"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing keypair response: %w", err)
	}

	return &result.Keypair, nil
}

// Delete implements compute.KeypairsClient.Delete
func (c *KeypairsClient) Delete(ctx context.Context, name string) error {
	path := fmt.Sprintf("/v2/os-keypairs/%s", name)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting keypair: %w", err)
	}

	return nil
}
