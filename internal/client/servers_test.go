package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-cloud/compute-client/pkg/compute"
)

func TestServersClient_Create(t *testing.T) {
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++

		assert.Equal(t, "/v2/servers", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		require.Contains(t, body, "server")

		payload, ok := body["server"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "web-01", payload["name"])
		assert.Equal(t, "f-1", payload["flavor_ref"])

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"server": map[string]interface{}{
				"id":     "srv-1",
				"name":   "web-01",
				"status": "BUILD",
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	created, err := client.Servers().Create(context.Background(), &compute.ServerCreateRequest{
		Name:      "web-01",
		FlavorRef: "f-1",
		ImageRef:  "img-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID)
	assert.Equal(t, compute.ServerStatusBuild, created.Status)
	assert.Equal(t, 1, requests)
}

func TestServersClient_CreateConflict(t *testing.T) {
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++
		writer.WriteHeader(http.StatusConflict)
		_, _ = writer.Write([]byte(`{"conflictingRequest": {"message": "Server name in use", "code": 409}}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	created, err := client.Servers().Create(context.Background(), &compute.ServerCreateRequest{
		Name:      "web-01",
		FlavorRef: "f-1",
	})
	require.Error(t, err)
	assert.Nil(t, created)
	assert.True(t, compute.IsConflict(err))

	// The failed write is not retried
	assert.Equal(t, 1, requests)
}

func TestServersClient_Get(t *testing.T) {
	tests := []TestGetOperation{
		{
			Name:         "successful get",
			ID:           "srv-1",
			ExpectedPath: "/v2/servers/srv-1",
			StatusCode:   http.StatusOK,
			Response: map[string]interface{}{
				"server": map[string]interface{}{
					"id":     "srv-1",
					"name":   "web-01",
					"status": "ACTIVE",
				},
			},
		},
		{
			Name:         "server not found",
			ID:           "missing",
			ExpectedPath: "/v2/servers/missing",
			StatusCode:   http.StatusNotFound,
			WantErr:      true,
			ErrMessage:   "getting server",
		},
	}

	RunGetTests(t, tests, func(c *Client) func(context.Context, string) (*compute.Server, error) {
		return c.Servers().Get
	})
}

func TestServersClient_List(t *testing.T) {
	servers := []compute.Server{
		{Resource: compute.Resource{ID: "srv-1"}, Name: "web-01", Status: compute.ServerStatusActive},
		{Resource: compute.Resource{ID: "srv-2"}, Name: "web-02", Status: compute.ServerStatusShutoff},
	}

	RunListTest(t, "list servers", "/v2/servers", servers,
		func(resources []compute.Server) interface{} {
			return map[string]interface{}{"servers": resources}
		},
		func(c *Client) func(context.Context, *compute.QueryParams) (*compute.ServerList, error) {
			return c.Servers().List
		},
		func(resources []compute.Server) {
			assert.Equal(t, "web-01", resources[0].Name)
			assert.Equal(t, compute.ServerStatusShutoff, resources[1].Status)
		})
}

func TestServersClient_ListWithPath_DecodesLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v2/servers", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"servers": []map[string]interface{}{{"id": "srv-1"}},
			"servers_links": []map[string]string{
				{"href": "/v2/servers?marker=srv-1", "rel": "next"},
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	page, err := client.Servers().ListWithPath(context.Background(), "/v2/servers", nil)
	require.NoError(t, err)
	require.Len(t, page.Resources, 1)

	next := page.NextLink()
	require.NotNil(t, next)
	assert.Equal(t, "/v2/servers?marker=srv-1", next.Href)
}

func TestServersClient_ListWithPath_NextHrefQueryPreserved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v2/servers", request.URL.Path)
		assert.Equal(t, "srv-1", request.URL.Query().Get("marker"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"servers": []map[string]interface{}{{"id": "srv-2"}},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	page, err := client.Servers().ListWithPath(context.Background(), "/v2/servers?marker=srv-1", nil)
	require.NoError(t, err)
	require.Len(t, page.Resources, 1)
	assert.Nil(t, page.NextLink())
}

func TestServersClient_Update(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v2/servers/srv-1", request.URL.Path)
		assert.Equal(t, "PUT", request.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		require.Contains(t, body, "server")

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"server": map[string]interface{}{"id": "srv-1", "name": "renamed"},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	name := "renamed"
	updated, err := client.Servers().Update(context.Background(), "srv-1", &compute.ServerUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
}

func TestServersClient_Delete(t *testing.T) {
	tests := []TestDeleteOperation{
		{
			Name:         "successful delete",
			ID:           "srv-1",
			ExpectedPath: "/v2/servers/srv-1",
			StatusCode:   http.StatusNoContent,
		},
		{
			Name:         "delete missing server",
			ID:           "missing",
			ExpectedPath: "/v2/servers/missing",
			StatusCode:   http.StatusNotFound,
			WantErr:      true,
			ErrMessage:   "deleting server",
		},
	}

	RunDeleteTests(t, tests, func(c *Client) func(context.Context, string) error {
		return c.Servers().Delete
	})
}

func TestServersClient_Actions(t *testing.T) {
	RunServerActionTest(t, "start", "srv-1", "os-start",
		func(c *Client) func(context.Context, string) error {
			return c.Servers().Start
		})

	RunServerActionTest(t, "stop", "srv-1", "os-stop",
		func(c *Client) func(context.Context, string) error {
			return c.Servers().Stop
		})

	RunServerActionTest(t, "reboot", "srv-1", "reboot",
		func(c *Client) func(context.Context, string) error {
			return func(ctx context.Context, id string) error {
				return c.Servers().Reboot(ctx, id, compute.RebootSoft)
			}
		})

	RunServerActionTest(t, "resize", "srv-1", "resize",
		func(c *Client) func(context.Context, string) error {
			return func(ctx context.Context, id string) error {
				return c.Servers().Resize(ctx, id, "f-2")
			}
		})
}

func TestServersClient_RebootInvalidType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		t.Error("no request expected for an invalid reboot type")
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Servers().Reboot(context.Background(), "srv-1", "GENTLE")
	require.ErrorIs(t, err, compute.ErrInvalidRebootType)
}

func TestServersClient_RebootSendsType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

		reboot, ok := body["reboot"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "HARD", reboot["type"])

		writer.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Servers().Reboot(context.Background(), "srv-1", compute.RebootHard)
	require.NoError(t, err)
}

func TestServersClient_Rebuild(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v2/servers/srv-1/action", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

		rebuild, ok := body["rebuild"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "img-2", rebuild["image_ref"])

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"server": map[string]interface{}{"id": "srv-1", "status": "REBUILD"},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	rebuilt, err := client.Servers().Rebuild(context.Background(), "srv-1", &compute.ServerRebuildRequest{
		ImageRef: "img-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", rebuilt.ID)
}
