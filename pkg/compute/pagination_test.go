package compute_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-cloud/compute-client/pkg/compute"
)

var errBackendDown = errors.New("backend down")

type testResource struct {
	ID   string
	Name string
}

// pageClient serves a fixed chain of pages keyed by path and counts every
// request so tests can assert laziness.
type pageClient struct {
	pages    map[string]*compute.ListResponse[testResource]
	failures map[string]error
	requests []string
	params   []*compute.QueryParams
}

func (c *pageClient) ListWithPath(ctx context.Context, path string, params *compute.QueryParams) (*compute.ListResponse[testResource], error) {
	c.requests = append(c.requests, path)
	c.params = append(c.params, params)

	if err, ok := c.failures[path]; ok {
		return nil, err
	}

	page, ok := c.pages[path]
	if !ok {
		return &compute.ListResponse[testResource]{}, nil
	}

	return page, nil
}

func nextLink(href string) []compute.Link {
	return []compute.Link{{Href: href, Rel: compute.RelNext}}
}

func threePageClient() *pageClient {
	return &pageClient{
		pages: map[string]*compute.ListResponse[testResource]{
			"/v2/servers": {
				Resources: []testResource{{ID: "1"}, {ID: "2"}},
				Links:     nextLink("/v2/servers?marker=2"),
			},
			"/v2/servers?marker=2": {
				Resources: []testResource{{ID: "3"}, {ID: "4"}},
				Links:     nextLink("/v2/servers?marker=4"),
			},
			"/v2/servers?marker=4": {
				Resources: []testResource{{ID: "5"}},
			},
		},
	}
}

func TestPaginationIterator_SinglePage(t *testing.T) {
	t.Parallel()

	client := &pageClient{
		pages: map[string]*compute.ListResponse[testResource]{
			"/v2/servers": {
				Resources: []testResource{{ID: "1"}, {ID: "2"}},
			},
		},
	}

	ctx := context.Background()
	iterator := compute.NewPaginationIterator[testResource](ctx, client, "/v2/servers", nil)

	// No request before the first pull
	assert.Empty(t, client.requests)

	item, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "1", item.ID)

	item, err = iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "2", item.ID)

	assert.False(t, iterator.HasNext())

	_, err = iterator.Next()
	require.ErrorIs(t, err, compute.ErrNoMoreItems)

	// Items on one page cost exactly one request
	assert.Equal(t, []string{"/v2/servers"}, client.requests)
}

func TestPaginationIterator_FollowsNextLinks(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	ctx := context.Background()
	iterator := compute.NewPaginationIterator[testResource](ctx, client, "/v2/servers", nil)

	var ids []string

	for iterator.HasNext() {
		item, err := iterator.Next()
		require.NoError(t, err)

		ids = append(ids, item.ID)
	}

	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids)
	assert.Equal(t, []string{"/v2/servers", "/v2/servers?marker=2", "/v2/servers?marker=4"}, client.requests)
}

func TestPaginationIterator_ParamsOnInitialRequestOnly(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	ctx := context.Background()
	params := compute.NewQueryParams().WithLimit(2)
	iterator := compute.NewPaginationIterator[testResource](ctx, client, "/v2/servers", params)

	_, err := iterator.All()
	require.NoError(t, err)

	require.Len(t, client.params, 3)
	assert.Same(t, params, client.params[0])
	assert.Nil(t, client.params[1])
	assert.Nil(t, client.params[2])
}

func TestPaginationIterator_FetchErrorDeliveredOnce(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	client.failures = map[string]error{"/v2/servers?marker=2": errBackendDown}

	ctx := context.Background()
	iterator := compute.NewPaginationIterator[testResource](ctx, client, "/v2/servers", nil)

	// First page items arrive untouched
	item, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "1", item.ID)

	item, err = iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "2", item.ID)

	// Crossing the boundary surfaces the failure exactly once
	assert.True(t, iterator.HasNext())

	_, err = iterator.Next()
	require.ErrorIs(t, err, errBackendDown)

	assert.False(t, iterator.HasNext())

	_, err = iterator.Next()
	require.ErrorIs(t, err, compute.ErrNoMoreItems)
}

func TestPaginationIterator_EmptyPageWithNextLinkTerminates(t *testing.T) {
	t.Parallel()

	client := &pageClient{
		pages: map[string]*compute.ListResponse[testResource]{
			"/v2/servers": {
				Resources: []testResource{{ID: "1"}},
				Links:     nextLink("/v2/servers?marker=1"),
			},
			"/v2/servers?marker=1": {
				Resources: []testResource{},
				Links:     nextLink("/v2/servers?marker=1"),
			},
		},
	}

	ctx := context.Background()
	iterator := compute.NewPaginationIterator[testResource](ctx, client, "/v2/servers", nil)

	items, err := iterator.All()
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// The empty page's next link is not followed
	assert.Equal(t, []string{"/v2/servers", "/v2/servers?marker=1"}, client.requests)
}

func TestPaginationIterator_EmptyCollection(t *testing.T) {
	t.Parallel()

	client := &pageClient{
		pages: map[string]*compute.ListResponse[testResource]{
			"/v2/servers": {Resources: []testResource{}},
		},
	}

	ctx := context.Background()
	iterator := compute.NewPaginationIterator[testResource](ctx, client, "/v2/servers", nil)

	assert.False(t, iterator.HasNext())

	_, err := iterator.Next()
	require.ErrorIs(t, err, compute.ErrNoMoreItems)
}

func TestPaginationIterator_All(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	ctx := context.Background()
	iterator := compute.NewPaginationIterator[testResource](ctx, client, "/v2/servers", nil)

	items, err := iterator.All()
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestPaginationIterator_AllReturnsPartialOnError(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	client.failures = map[string]error{"/v2/servers?marker=4": errBackendDown}

	ctx := context.Background()
	iterator := compute.NewPaginationIterator[testResource](ctx, client, "/v2/servers", nil)

	items, err := iterator.All()
	require.ErrorIs(t, err, errBackendDown)
	assert.Len(t, items, 4)
}

func TestPaginationIterator_ForEach(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	ctx := context.Background()
	iterator := compute.NewPaginationIterator[testResource](ctx, client, "/v2/servers", nil)

	var count int

	err := iterator.ForEach(func(item testResource) error {
		count++

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestPaginationIterator_ForEachStopsOnCallbackError(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	ctx := context.Background()
	iterator := compute.NewPaginationIterator[testResource](ctx, client, "/v2/servers", nil)

	var count int

	err := iterator.ForEach(func(item testResource) error {
		count++
		if count == 3 {
			return errBackendDown
		}

		return nil
	})
	require.ErrorIs(t, err, errBackendDown)
	assert.Equal(t, 3, count)
}

func TestMapIterator(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	ctx := context.Background()
	iterator := compute.NewPaginationIterator[testResource](ctx, client, "/v2/servers", nil)
	mapped := compute.MapIterator(iterator, func(item testResource) string {
		return item.ID
	})

	ids, err := mapped.All()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids)
}

func TestMapIterator_MatchesPlainEnumeration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	plain := compute.NewPaginationIterator[testResource](ctx, threePageClient(), "/v2/servers", nil)
	items, err := plain.All()
	require.NoError(t, err)

	mapped := compute.MapIterator(
		compute.NewPaginationIterator[testResource](ctx, threePageClient(), "/v2/servers", nil),
		func(item testResource) string { return item.ID },
	)
	ids, err := mapped.All()
	require.NoError(t, err)

	require.Len(t, ids, len(items))

	for i, item := range items {
		assert.Equal(t, item.ID, ids[i])
	}
}

func TestMapIterator_PropagatesError(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	client.failures = map[string]error{"/v2/servers?marker=2": errBackendDown}

	ctx := context.Background()
	mapped := compute.MapIterator(
		compute.NewPaginationIterator[testResource](ctx, client, "/v2/servers", nil),
		func(item testResource) string { return item.ID },
	)

	ids, err := mapped.All()
	require.ErrorIs(t, err, errBackendDown)
	assert.Equal(t, []string{"1", "2"}, ids)
}

func TestFetchAllPages(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	ctx := context.Background()

	items, err := compute.FetchAllPages[testResource](ctx, client, "/v2/servers", nil, nil)
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Len(t, client.requests, 3)
}

func TestFetchAllPages_MaxPages(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	ctx := context.Background()

	items, err := compute.FetchAllPages[testResource](ctx, client, "/v2/servers", nil,
		&compute.PaginationOptions{MaxPages: 2})
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Len(t, client.requests, 2)
}

func TestFetchAllPages_PageSizeDoesNotMutateParams(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	ctx := context.Background()
	params := compute.NewQueryParams().WithMarker("0")

	_, err := compute.FetchAllPages[testResource](ctx, client, "/v2/servers", params,
		&compute.PaginationOptions{PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, 0, params.Limit)
	require.NotEmpty(t, client.params)
	assert.Equal(t, 2, client.params[0].Limit)
	assert.Equal(t, "0", client.params[0].Marker)
}

func TestStreamPages(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	ctx := context.Background()

	var pages [][]testResource

	for result := range compute.StreamPages[testResource](ctx, client, "/v2/servers", nil, nil) {
		require.NoError(t, result.Err)

		pages = append(pages, result.Items)
	}

	require.Len(t, pages, 3)
	assert.Len(t, pages[0], 2)
	assert.Len(t, pages[1], 2)
	assert.Len(t, pages[2], 1)
}

func TestStreamPages_DeliversError(t *testing.T) {
	t.Parallel()

	client := threePageClient()
	client.failures = map[string]error{"/v2/servers?marker=2": errBackendDown}

	ctx := context.Background()

	var (
		pages   int
		lastErr error
	)

	for result := range compute.StreamPages[testResource](ctx, client, "/v2/servers", nil, nil) {
		if result.Err != nil {
			lastErr = result.Err

			continue
		}

		pages++
	}

	assert.Equal(t, 1, pages)
	require.ErrorIs(t, lastErr, errBackendDown)
}

func TestListResponse_NextLink(t *testing.T) {
	t.Parallel()

	page := &compute.ListResponse[testResource]{
		Links: []compute.Link{
			{Href: "/v2/servers/1", Rel: compute.RelSelf},
			{Href: "/v2/servers?marker=1", Rel: compute.RelNext},
		},
	}

	next := page.NextLink()
	require.NotNil(t, next)
	assert.Equal(t, "/v2/servers?marker=1", next.Href)

	empty := &compute.ListResponse[testResource]{
		Links: []compute.Link{{Href: "/v2/servers/1", Rel: compute.RelSelf}},
	}
	assert.Nil(t, empty.NextLink())
}
