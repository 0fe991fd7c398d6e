package compute

import (
	"context"
	"time"
)

// ServersClient manages compute instances.
type ServersClient interface {
	Create(ctx context.Context, request *ServerCreateRequest) (*Server, error)
	Get(ctx context.Context, id string) (*Server, error)
	List(ctx context.Context, params *QueryParams) (*ServerList, error)
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*ServerList, error)
	Update(ctx context.Context, id string, request *ServerUpdateRequest) (*Server, error)
	Delete(ctx context.Context, id string) error
	Start(ctx context.Context, id string) error
	Stop(ctx context.Context, id string) error
	Reboot(ctx context.Context, id string, rebootType string) error
	Rebuild(ctx context.Context, id string, request *ServerRebuildRequest) (*Server, error)
	Resize(ctx context.Context, id string, flavorRef string) error
}

// FlavorsClient manages hardware configurations.
type FlavorsClient interface {
	List(ctx context.Context, params *QueryParams) (*FlavorList, error)
	ListDetail(ctx context.Context, params *QueryParams) (*FlavorList, error)
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*FlavorList, error)
	Get(ctx context.Context, id string) (*Flavor, error)
	Create(ctx context.Context, request *FlavorCreateRequest) (*Flavor, error)
	Delete(ctx context.Context, id string) error
}

// ImagesClient manages machine images.
type ImagesClient interface {
	List(ctx context.Context, params *QueryParams) (*ImageList, error)
	ListDetail(ctx context.Context, params *QueryParams) (*ImageList, error)
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*ImageList, error)
	Get(ctx context.Context, id string) (*Image, error)
	Delete(ctx context.Context, id string) error
}

// KeypairsClient manages SSH keypairs.
type KeypairsClient interface {
	List(ctx context.Context, params *QueryParams) (*KeypairList, error)
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*KeypairList, error)
	Get(ctx context.Context, name string) (*Keypair, error)
	Create(ctx context.Context, request *KeypairCreateRequest) (*Keypair, error)
	Delete(ctx context.Context, name string) error
}

// LimitsClient reads tenant quota and rate limits.
type LimitsClient interface {
	Get(ctx context.Context) (*Limits, error)
}

// HypervisorsClient reads compute host inventory and usage.
type HypervisorsClient interface {
	List(ctx context.Context, params *QueryParams) (*HypervisorList, error)
	ListDetail(ctx context.Context, params *QueryParams) (*HypervisorList, error)
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*HypervisorList, error)
	Get(ctx context.Context, id string) (*Hypervisor, error)
	Statistics(ctx context.Context) (*HypervisorStatistics, error)
}

// Client provides access to all resource-specific clients.
type Client interface {
	Servers() ServersClient
	Flavors() FlavorsClient
	Images() ImagesClient
	Keypairs() KeypairsClient
	Limits() LimitsClient
	Hypervisors() HypervisorsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a compute.Client.
//
// # Authentication precedence
//
//  1. Token: if set, it is used directly as a static X-Auth-Token.
//  2. Username/Password: the client obtains a token from TokenURL and
//     refreshes it when it expires.
//  3. No credentials: requests are sent without authentication.
//
// If authentication is required and TokenURL is empty, mcclient.New
// derives it from the API endpoint as "<endpoint>/v2/auth/tokens".
//
// # Timeouts and retries
//
// Per-request timeouts should be controlled via the context passed to
// client methods. Transport retries for transient failures (>=500, 429,
// connection errors) can be tuned via RetryMax/RetryWaitMin/RetryWaitMax;
// the resource and pagination layers never retry on their own.
type Config struct {
	// APIEndpoint is the base URL for the compute API,
	// e.g. "https://compute.example.com". mcclient.New normalizes this
	// value by trimming a trailing slash and adding "https://" if no
	// scheme is present.
	APIEndpoint string

	// Token, if set, is used directly as a static auth token.
	Token string
	// Username and Password select the password authentication flow.
	Username string
	Password string
	// TokenURL is the full token endpoint. If empty and authentication is
	// required, mcclient.New derives it from the API endpoint.
	TokenURL string

	// RetryMax is the maximum number of transport retries for transient
	// failures. If 0, a sensible default is used.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger
	// is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Cache optionally enables response caching for detail GETs. List
	// pages are never cached: every enumeration starts from a fresh
	// request cycle.
	Cache *CacheConfig
}
