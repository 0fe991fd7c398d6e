package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/meridian-cloud/compute-client/internal/http"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// ServersClient implements compute.ServersClient
type ServersClient struct {
	httpClient *http.Client
}

// NewServersClient creates a new servers client
func NewServersClient(httpClient *http.Client) *ServersClient {
	return &ServersClient{
		httpClient: httpClient,
	}
}

// Create implements compute.ServersClient.Create
func (c *ServersClient) Create(ctx context.Context, request *compute.ServerCreateRequest) (*compute.Server, error) {
	body := map[string]interface{}{"server": request}

	resp, err := c.httpClient.Post(ctx, "/v2/servers", body)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}

	var result struct {
		Server compute.Server `json:"server"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing server response: %w", err)
	}

	return &result.Server, nil
}

// Get implements compute.ServersClient.Get
func (c *ServersClient) Get(ctx context.Context, id string) (*compute.Server, error) {
	path := fmt.Sprintf("/v2/servers/%s", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting server: %w", err)
	}

	var result struct {
		Server compute.Server `json:"server"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing server response: %w", err)
	}

	return &result.Server, nil
}

// List implements compute.ServersClient.List
func (c *ServersClient) List(ctx context.Context, params *compute.QueryParams) (*compute.ServerList, error) {
	return c.ListWithPath(ctx, "/v2/servers", params)
}

// ListWithPath fetches one page of servers from the given path. The path
// may be a pagination "next" href, in which case params must be nil so
// the href's own query is used untouched.
func (c *ServersClient) ListWithPath(ctx context.Context, path string, params *compute.QueryParams) (*compute.ServerList, error) {
	var query url.Values
	if params != nil {
		query = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing servers: %w", err)
	}

	var result struct {
		Servers []compute.Server `json:"servers"`
		Links   []compute.Link   `json:"servers_links"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing servers list response: %w", err)
	}

	return &compute.ServerList{Resources: result.Servers, Links: result.Links}, nil
}

// Update implements compute.ServersClient.Update
func (c *ServersClient) Update(ctx context.Context, id string, request *compute.ServerUpdateRequest) (*compute.Server, error) {
	path := fmt.Sprintf("/v2/servers/%s", id)
	body := map[string]interface{}{"server": request}

	resp, err := c.httpClient.Put(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating server: %w", err)
	}

	var result struct {
		Server compute.Server `json:"server"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing server response: %w", err)
	}

	return &result.Server, nil
}

// Delete implements compute.ServersClient.Delete
func (c *ServersClient) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("/v2/servers/%s", id)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting server: %w", err)
	}

	return nil
}

// Start implements compute.ServersClient.Start
func (c *ServersClient) Start(ctx context.Context, id string) error {
	err := c.action(ctx, id, map[string]interface{}{"os-start": nil})
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	return nil
}

// Stop implements compute.ServersClient.Stop
func (c *ServersClient) Stop(ctx context.Context, id string) error {
	err := c.action(ctx, id, map[string]interface{}{"os-stop": nil})
	if err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}

	return nil
}

// Reboot implements compute.ServersClient.Reboot
func (c *ServersClient) Reboot(ctx context.Context, id string, rebootType string) error {
	if rebootType != compute.RebootSoft && rebootType != compute.RebootHard {
		return compute.ErrInvalidRebootType
	}

	err := c.action(ctx, id, map[string]interface{}{
		"reboot": map[string]string{"type": rebootType},
	})
	if err != nil {
		return fmt.Errorf("rebooting server: %w", err)
	}

	return nil
}

// Rebuild implements compute.ServersClient.Rebuild
func (c *ServersClient) Rebuild(ctx context.Context, id string, request *compute.ServerRebuildRequest) (*compute.Server, error) {
	path := fmt.Sprintf("/v2/servers/%s/action", id)
	body := map[string]interface{}{"rebuild": request}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("rebuilding server: %w", err)
	}

	var result struct {
		Server compute.Server `json:"server"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing server response: %w", err)
	}

	return &result.Server, nil
}

// Resize implements compute.ServersClient.Resize
func (c *ServersClient) Resize(ctx context.Context, id string, flavorRef string) error {
	err := c.action(ctx, id, map[string]interface{}{
		"resize": compute.ServerResizeRequest{FlavorRef: flavorRef},
	})
	if err != nil {
		return fmt.Errorf("resizing server: %w", err)
	}

	return nil
}

// action posts to the server's action sub-resource.
func (c *ServersClient) action(ctx context.Context, id string, body map[string]interface{}) error {
	path := fmt.Sprintf("/v2/servers/%s/action", id)

	_, err := c.httpClient.Post(ctx, path, body)

	return err
}
