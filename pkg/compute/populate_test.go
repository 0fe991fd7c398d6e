package compute_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-cloud/compute-client/pkg/compute"
)

func TestPopulateFromMap_PartialMap(t *testing.T) {
	t.Parallel()

	var server compute.Server

	err := compute.PopulateFromMap(&server, map[string]any{"id": "srv-1"}, nil)
	require.NoError(t, err)

	// Only the given key is set
	assert.Equal(t, "srv-1", server.ID)
	assert.Empty(t, server.Name)
	assert.Empty(t, server.Status)
	assert.True(t, server.Created.IsZero())
}

func TestPopulateFromMap_FullServer(t *testing.T) {
	t.Parallel()

	var server compute.Server

	src := map[string]any{
		"id":        "srv-1",
		"name":      "web-01",
		"status":    "ACTIVE",
		"tenant_id": "tenant-7",
		"created":   "2024-03-01T12:00:00Z",
		"metadata":  map[string]any{"role": "web"},
	}

	err := compute.PopulateFromMap(&server, src, nil)
	require.NoError(t, err)

	assert.Equal(t, "srv-1", server.ID)
	assert.Equal(t, "web-01", server.Name)
	assert.Equal(t, compute.ServerStatusActive, server.Status)
	assert.Equal(t, "tenant-7", server.TenantID)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), server.Created)
	assert.Equal(t, compute.Metadata{"role": "web"}, server.Metadata)
}

func TestPopulateFromMap_UnknownKeysReported(t *testing.T) {
	t.Parallel()

	var flavor compute.Flavor

	var unknown []string

	src := map[string]any{
		"id":          "f-1",
		"name":        "m1.small",
		"ram":         2048,
		"mystery_key": "ignored",
	}

	err := compute.PopulateFromMap(&flavor, src, func(key string) {
		unknown = append(unknown, key)
	})
	require.NoError(t, err)

	assert.Equal(t, "f-1", flavor.ID)
	assert.Equal(t, "m1.small", flavor.Name)
	assert.Equal(t, 2048, flavor.RAM)
	assert.Equal(t, []string{"mystery_key"}, unknown)
}

func TestPopulateFromMap_UnknownKeysSilentWithoutHook(t *testing.T) {
	t.Parallel()

	var image compute.Image

	err := compute.PopulateFromMap(&image, map[string]any{
		"id":      "img-1",
		"unknown": true,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "img-1", image.ID)
}

// countingClient records whether any listing request was made.
type countingClient struct {
	calls int
}

func (c *countingClient) ListWithPath(ctx context.Context, path string, params *compute.QueryParams) (*compute.ListResponse[compute.Server], error) {
	c.calls++

	return &compute.ListResponse[compute.Server]{}, nil
}

func TestPopulateFromMap_NoIO(t *testing.T) {
	t.Parallel()

	client := &countingClient{}

	// An iterator over the same resource kind exists but must stay idle
	_ = compute.NewPaginationIterator[compute.Server](context.Background(), client, "/v2/servers", nil)

	var server compute.Server

	err := compute.PopulateFromMap(&server, map[string]any{"id": "srv-1", "name": "web"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, client.calls)
}
