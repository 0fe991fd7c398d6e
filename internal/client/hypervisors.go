package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/meridian-cloud/compute-client/internal/http"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// HypervisorsClient implements compute.HypervisorsClient
type HypervisorsClient struct {
	httpClient *http.Client
}

// NewHypervisorsClient creates a new hypervisors client
func NewHypervisorsClient(httpClient *http.Client) *HypervisorsClient {
	return &HypervisorsClient{
		httpClient: httpClient,
	}
}

// List implements compute.HypervisorsClient.List
func (c *HypervisorsClient) List(ctx context.Context, params *compute.QueryParams) (*compute.HypervisorList, error) {
	return c.ListWithPath(ctx, "/v2/os-hypervisors", params)
}

// ListDetail implements compute.HypervisorsClient.ListDetail
func (c *HypervisorsClient) ListDetail(ctx context.Context, params *compute.QueryParams) (*compute.HypervisorList, error) {
	return c.ListWithPath(ctx, "/v2/os-hypervisors/detail", params)
}

// ListWithPath fetches one page of hypervisors from the given path.
func (c *HypervisorsClient) ListWithPath(ctx context.Context, path string, params *compute.QueryParams) (*compute.HypervisorList, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing hypervisors: %w", err)
	}

	var result struct {
		Hypervisors []compute.Hypervisor `json:"hypervisors"`
		Links       []compute.Link       `json:"hypervisors_links"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing hypervisors list response: %w", err)
	}

	return &compute.HypervisorList{Resources: result.Hypervisors, Links: result.Links}, nil
}

// Get implements compute.HypervisorsClient.Get
func (c *HypervisorsClient) Get(ctx context.Context, id string) (*compute.Hypervisor, error) {
	path := fmt.Sprintf("/v2/os-hypervisors/%s", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting hypervisor: %w", err)
	}

	var result struct {
		Hypervisor compute.Hypervisor `json:"hypervisor"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing hypervisor response: %w", err)
	}

	return &result.Hypervisor, nil
}

// Statistics implements compute.HypervisorsClient.Statistics
func (c *HypervisorsClient) Statistics(ctx context.Context) (*compute.HypervisorStatistics, error) {
	resp, err := c.httpClient.Get(ctx, "/v2/os-hypervisors/statistics", nil)
	if err != nil {
		return nil, fmt.Errorf("getting hypervisor statistics: %w", err)
	}

	var result struct {
		Statistics compute.HypervisorStatistics `json:"hypervisor_statistics"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing hypervisor statistics response: %w", err)
	}

	return &result.Statistics, nil
}
