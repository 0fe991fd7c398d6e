package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/meridian-cloud/compute-client/internal/http"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// FlavorsClient implements compute.FlavorsClient
type FlavorsClient struct {
	httpClient *http.Client
}

// NewFlavorsClient creates a new flavors client
func NewFlavorsClient(httpClient *http.Client) *FlavorsClient {
	return &FlavorsClient{
		httpClient: httpClient,
	}
}

// List implements compute.FlavorsClient.List
func (c *FlavorsClient) List(ctx context.Context, params *compute.QueryParams) (*compute.FlavorList, error) {
	return c.ListWithPath(ctx, "/v2/flavors", params)
}

// ListDetail implements compute.FlavorsClient.ListDetail
func (c *FlavorsClient) ListDetail(ctx context.Context, params *compute.QueryParams) (*compute.FlavorList, error) {
	return c.ListWithPath(ctx, "/v2/flavors/detail", params)
}

// ListWithPath fetches one page of flavors from the given path.
func (c *FlavorsClient) ListWithPath(ctx context.Context, path string, params *compute.QueryParams) (*compute.FlavorList, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing flavors: %w", err)
	}

	var result struct {
		Flavors []compute.Flavor `json:"flavors"`
		Links   []compute.Link   `json:"flavors_links"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing flavors list response: %w", err)
	}

	return &compute.FlavorList{Resources: result.Flavors, Links: result.Links}, nil
}

// Get implements compute.FlavorsClient.Get
func (c *FlavorsClient) Get(ctx context.Context, id string) (*compute.Flavor, error) {
	path := fmt.Sprintf("/v2/flavors/%s", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting flavor: %w", err)
	}

	var result struct {
		Flavor compute.Flavor `json:"flavor"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing flavor response: %w", err)
	}

	return &result.Flavor, nil
}

// Create implements compute.FlavorsClient.Create
func (c *FlavorsClient) Create(ctx context.Context, request *compute.FlavorCreateRequest) (*compute.Flavor, error) {
	if request.Name == "" {
		return nil, compute.ErrFlavorNameRequired
	}

	body := map[string]interface{}{"flavor": request}

	resp, err := c.httpClient.Post(ctx, "/v2/flavors", body)
	if err != nil {
		return nil, fmt.Errorf("creating flavor: %w", err)
	}

	var result struct {
		Flavor compute.Flavor `json:"flavor"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing flavor response: %w", err)
	}

	return &result.Flavor, nil
}

// Delete implements compute.FlavorsClient.Delete
func (c *FlavorsClient) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("/v2/flavors/%s", id)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting flavor: %w", err)
	}

	return nil
}
