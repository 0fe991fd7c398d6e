package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/meridian-cloud/compute-client/internal/http"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// ImagesClient implements compute.ImagesClient
type ImagesClient struct {
	httpClient *http.Client
}

// NewImagesClient creates a new images client
func NewImagesClient(httpClient *http.Client) *ImagesClient {
	return &ImagesClient{
		httpClient: httpClient,
	}
}

// List implements compute.ImagesClient.List
func (c *ImagesClient) List(ctx context.Context, params *compute.QueryParams) (*compute.ImageList, error) {
	return c.ListWithPath(ctx, "/v2/images", params)
}

// ListDetail implements compute.ImagesClient.ListDetail
func (c *ImagesClient) ListDetail(ctx context.Context, params *compute.QueryParams) (*compute.ImageList, error) {
	return c.ListWithPath(ctx, "/v2/images/detail", params)
}

// ListWithPath fetches one page of images from the given path.
func (c *ImagesClient) ListWithPath(ctx context.Context, path string, params *compute.QueryParams) (*compute.ImageList, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}

	var result struct {
		Images []compute.Image `json:"images"`
		Links  []compute.Link  `json:"images_links"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing images list response: %w", err)
	}

	return &compute.ImageList{Resources: result.Images, Links: result.Links}, nil
}

// Get implements compute.ImagesClient.Get
func (c *ImagesClient) Get(ctx context.Context, id string) (*compute.Image, error) {
	path := fmt.Sprintf("/v2/images/%s", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting image: %w", err)
	}

	var result struct {
		Image compute.Image `json:"image"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing image response: %w", err)
	}

	return &result.Image, nil
}

// Delete implements compute.ImagesClient.Delete
func (c *ImagesClient) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("/v2/images/%s", id)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}

	return nil
}
