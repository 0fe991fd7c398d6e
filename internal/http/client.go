// Package http implements the request executor for the Meridian compute
// API: URL construction, auth header injection, transport retries for
// transient failures, and mapping of non-success responses onto the
// compute error types.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/meridian-cloud/compute-client/internal/auth"
	"github.com/meridian-cloud/compute-client/internal/constants"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// Logger interface for HTTP-level logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents an HTTP request to the API.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an HTTP response from the API.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client executes requests against the API.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	logger       Logger
	debug        bool
	userAgent    string
	cache        compute.Cache
	cachePolicy  *compute.CachingPolicy
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes transport retries for transient failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithCache enables response caching for requests the policy accepts.
// List requests are never cacheable under the stock policies; enumeration
// always reaches the provider.
func WithCache(cache compute.Cache, policy *compute.CachingPolicy) Option {
	return func(c *Client) {
		c.cache = cache

		if policy == nil {
			policy = compute.DefaultCachingPolicy()
		}

		c.cachePolicy = policy
	}
}

// NewClient creates a new API client. tokenManager may be nil, in which
// case requests are sent unauthenticated.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
		userAgent:    "meridian-compute-client/1.0",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a request. Non-2xx responses are returned along with a
// *compute.ResponseError carrying the status and parsed error body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.buildURL(req)

	cacheKey := fullURL
	if cached := c.cachedResponse(ctx, req.Method, fullURL, cacheKey); cached != nil {
		return cached, nil
	}

	httpReq, err := c.buildRequest(ctx, req, fullURL)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing %s %s: %w", req.Method, req.Path, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
		})
	}

	if resp.StatusCode >= 400 {
		return resp, compute.ParseResponseError(resp.StatusCode, body)
	}

	c.storeResponse(ctx, req.Method, fullURL, cacheKey, resp)

	return resp, nil
}

// Get executes a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post executes a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put executes a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch executes a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete executes a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// PostRaw executes a POST request with a pre-encoded body and content type.
func (c *Client) PostRaw(ctx context.Context, path string, body []byte, contentType string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:  http.MethodPost,
		Path:    path,
		Body:    json.RawMessage(body),
		Headers: map[string]string{"Content-Type": contentType},
	})
}

// buildURL resolves the request target. Absolute paths are used verbatim
// so that pagination can follow a page's "next" href exactly.
func (c *Client) buildURL(req *Request) string {
	target := req.Path
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = c.baseURL + req.Path
	}

	if len(req.Query) > 0 {
		separator := "?"
		if strings.Contains(target, "?") {
			separator = "&"
		}

		target += separator + req.Query.Encode()
	}

	return target
}

func (c *Client) buildRequest(ctx context.Context, req *Request, fullURL string) (*retryablehttp.Request, error) {
	var rawBody interface{}

	hasBody := req.Body != nil

	if hasBody {
		if raw, ok := req.Body.(json.RawMessage); ok {
			rawBody = []byte(raw)
		} else {
			encoded, err := json.Marshal(req.Body)
			if err != nil {
				return nil, fmt.Errorf("encoding request body: %w", err)
			}

			rawBody = encoded
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if hasBody {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting auth token: %w", err)
		}

		if token != "" {
			httpReq.Header.Set("X-Auth-Token", token)
		}
	}

	return httpReq, nil
}

func (c *Client) cachedResponse(ctx context.Context, method, path, key string) *Response {
	if c.cache == nil || c.cachePolicy == nil || !c.cachePolicy.ShouldCache(method, strippedPath(path, c.baseURL)) {
		return nil
	}

	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	return &Response{StatusCode: http.StatusOK, Body: entry.Value}
}

func (c *Client) storeResponse(ctx context.Context, method, path, key string, resp *Response) {
	if c.cache == nil || c.cachePolicy == nil || !c.cachePolicy.ShouldCache(method, strippedPath(path, c.baseURL)) {
		return
	}

	now := time.Now()
	_ = c.cache.Set(ctx, key, &compute.CacheEntry{
		Value:     resp.Body,
		ETag:      resp.Headers.Get("ETag"),
		StoredAt:  now,
		ExpiresAt: now.Add(c.cachePolicy.TTL),
	})
}

// strippedPath reduces a full URL back to its path for policy matching.
func strippedPath(fullURL, baseURL string) string {
	path := strings.TrimPrefix(fullURL, baseURL)
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}

	return path
}
