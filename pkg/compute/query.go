package compute

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParams represents query options for list requests. Filter keys are
// passed through to the API as-is; they are request-specific and not
// validated against any resource schema.
type QueryParams struct {
	// Limit caps the number of items per page (the provider may cap lower).
	Limit int
	// Marker resumes listing after the item with this ID.
	Marker string
	// SortKey and SortDir order the result set.
	SortKey string
	SortDir string
	// AllTenants requests resources across tenants (admin only).
	AllTenants bool
	// Filters holds arbitrary filter parameters, e.g. name, status.
	Filters map[string][]string
}

// NewQueryParams creates a new QueryParams with initialized maps.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithLimit sets the page size.
func (q *QueryParams) WithLimit(limit int) *QueryParams {
	q.Limit = limit

	return q
}

// WithMarker sets the pagination marker.
func (q *QueryParams) WithMarker(marker string) *QueryParams {
	q.Marker = marker

	return q
}

// WithSort sets the sort key and direction.
func (q *QueryParams) WithSort(key, dir string) *QueryParams {
	q.SortKey = key
	q.SortDir = dir

	return q
}

// WithAllTenants requests cross-tenant results.
func (q *QueryParams) WithAllTenants() *QueryParams {
	q.AllTenants = true

	return q
}

// WithFilter appends values to a filter parameter.
func (q *QueryParams) WithFilter(key string, values ...string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}

	q.Filters[key] = append(q.Filters[key], values...)

	return q
}

// ToValues converts the params to url.Values for the request.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.Marker != "" {
		values.Set("marker", q.Marker)
	}

	if q.SortKey != "" {
		values.Set("sort_key", q.SortKey)
	}

	if q.SortDir != "" {
		values.Set("sort_dir", q.SortDir)
	}

	if q.AllTenants {
		values.Set("all_tenants", "true")
	}

	for key, vals := range q.Filters {
		if len(vals) > 0 {
			values.Set(key, strings.Join(vals, ","))
		}
	}

	return values
}
