package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/meridian-cloud/compute-client/internal/http"
	"github.com/meridian-cloud/compute-client/pkg/compute"
)

// Test static errors.
var (
	ErrTestSomeError = errors.New("some error")
)

// NewTestClient creates a new test client with the given base URL.
func NewTestClient(baseURL string) *Client {
	// No token manager so tests exercise unauthenticated requests
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}

	client.initializeResourceClients()

	return client
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	ErrMessage   string
}

// RunGetTests runs a series of get operation tests against a resource
// client's Get-shaped method.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation,
	getFunc func(*Client) func(context.Context, string) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, "GET", request.Method)
				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(testCase.StatusCode)

				if testCase.WantErr {
					errorResponse := map[string]interface{}{
						"itemNotFound": map[string]interface{}{
							"message": "Resource not found",
							"code":    http.StatusNotFound,
						},
					}
					_ = json.NewEncoder(writer).Encode(errorResponse)
				} else if testCase.Response != nil {
					_ = json.NewEncoder(writer).Encode(testCase.Response)
				}
			}))
			defer server.Close()

			client := NewTestClient(server.URL)

			getFn := getFunc(client)
			result, err := getFn(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
			}
		})
	}
}

// TestDeleteOperation represents a generic delete operation test case.
type TestDeleteOperation struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	WantErr      bool
	ErrMessage   string
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests(
	t *testing.T,
	tests []TestDeleteOperation,
	deleteFunc func(*Client) func(context.Context, string) error,
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, "DELETE", request.Method)
				writer.WriteHeader(testCase.StatusCode)
			}))
			defer server.Close()

			client := NewTestClient(server.URL)

			deleteFn := deleteFunc(client)
			err := deleteFn(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// RunListTest runs a generic single-page list test. encodeResponse builds
// the wire payload for the resources handed to it.
func RunListTest[TResource any](
	t *testing.T,
	testName string,
	expectedPath string,
	responseData []TResource,
	encodeResponse func([]TResource) interface{},
	listFunc func(*Client) func(context.Context, *compute.QueryParams) (*compute.ListResponse[TResource], error),
	validateResources func([]TResource),
) {
	t.Helper()

	t.Run(testName, func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, expectedPath, request.URL.Path)
			assert.Equal(t, "GET", request.Method)

			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(encodeResponse(responseData))
		}))
		defer server.Close()

		client := NewTestClient(server.URL)

		listFn := listFunc(client)
		result, err := listFn(context.Background(), nil)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Len(t, result.Resources, len(responseData))

		if validateResources != nil {
			validateResources(result.Resources)
		}
	})
}

// RunServerActionTest runs a test for a server action (start, stop,
// reboot) asserting the action envelope posted to the API.
func RunServerActionTest(
	t *testing.T,
	testName string,
	serverID string,
	expectedKey string,
	actionFunc func(*Client) func(context.Context, string) error,
) {
	t.Helper()

	t.Run(testName, func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2/servers/"+serverID+"/action", request.URL.Path)
			assert.Equal(t, "POST", request.Method)

			var body map[string]interface{}

			err := json.NewDecoder(request.Body).Decode(&body)
			assert.NoError(t, err)
			assert.Contains(t, body, expectedKey)

			writer.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		client := NewTestClient(server.URL)

		actionFn := actionFunc(client)
		err := actionFn(context.Background(), serverID)
		require.NoError(t, err)
	})
}
