package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitsClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v2/limits", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"limits": map[string]interface{}{
				"absolute": map[string]interface{}{
					"max_total_cores":      100,
					"max_total_instances":  50,
					"total_cores_used":     12,
					"total_instances_used": 4,
				},
				"rate": []map[string]interface{}{
					{
						"regex": "/servers",
						"uri":   "*/servers",
						"limit": []map[string]interface{}{
							{"verb": "POST", "value": 10, "remaining": 8, "unit": "MINUTE"},
						},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	limits, err := client.Limits().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, limits.Absolute.MaxTotalCores)
	assert.Equal(t, 4, limits.Absolute.TotalInstancesUsed)
	require.Len(t, limits.Rate, 1)
	require.Len(t, limits.Rate[0].Limit, 1)
	assert.Equal(t, "POST", limits.Rate[0].Limit[0].Verb)
	assert.Equal(t, 8, limits.Rate[0].Limit[0].Remaining)
}

func TestLimitsClient_GetError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"unauthorized": {"message": "Token expired", "code": 401}}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	_, err := client.Limits().Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "getting limits")
}
