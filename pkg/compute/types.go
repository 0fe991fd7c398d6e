package compute

// Resource represents the base structure shared by Meridian compute resources.
type Resource struct {
	ID    string `json:"id"              yaml:"id"`
	Links []Link `json:"links,omitempty" yaml:"links,omitempty"`
}

// Link represents a single rel-tagged hyperlink.
type Link struct {
	Href string `json:"href" yaml:"href"`
	Rel  string `json:"rel"  yaml:"rel"`
}

// Link relations used by the API.
const (
	RelSelf     = "self"
	RelBookmark = "bookmark"
	RelNext     = "next"
)

// ListResponse represents one page of a listed collection: the decoded
// items plus the page-level links. The "next" link, when present, points
// at the follow-up request for the rest of the collection.
type ListResponse[T any] struct {
	Resources []T    `json:"resources"       yaml:"resources"`
	Links     []Link `json:"links,omitempty" yaml:"links,omitempty"`
}

// NextLink returns the page's "next" link, or nil when this is the last page.
func (l *ListResponse[T]) NextLink() *Link {
	for i := range l.Links {
		if l.Links[i].Rel == RelNext {
			return &l.Links[i]
		}
	}

	return nil
}

// Metadata represents free-form string metadata attached to a resource.
type Metadata map[string]string

// ServerList represents a paginated list of Server resources.
type ServerList = ListResponse[Server]

// FlavorList represents a paginated list of Flavor resources.
type FlavorList = ListResponse[Flavor]

// ImageList represents a paginated list of Image resources.
type ImageList = ListResponse[Image]

// KeypairList represents a paginated list of Keypair resources.
type KeypairList = ListResponse[Keypair]

// HypervisorList represents a paginated list of Hypervisor resources.
type HypervisorList = ListResponse[Hypervisor]
