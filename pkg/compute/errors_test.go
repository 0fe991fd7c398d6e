package compute_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-cloud/compute-client/pkg/compute"
)

var errPlain = errors.New("plain error")

func TestParseResponseError(t *testing.T) {
	t.Parallel()

	body := []byte(`{"itemNotFound": {"message": "Instance could not be found", "code": 404}}`)

	respErr := compute.ParseResponseError(http.StatusNotFound, body)
	require.NotNil(t, respErr)
	assert.Equal(t, http.StatusNotFound, respErr.StatusCode)
	require.Len(t, respErr.Errors, 1)
	assert.Equal(t, "itemNotFound", respErr.Errors[0].Title)
	assert.Equal(t, "Instance could not be found", respErr.Errors[0].Detail)
	assert.Equal(t, http.StatusNotFound, respErr.Errors[0].StatusCode)
}

func TestParseResponseError_CodeDefaultsToStatus(t *testing.T) {
	t.Parallel()

	body := []byte(`{"badRequest": {"message": "Invalid flavor_ref"}}`)

	respErr := compute.ParseResponseError(http.StatusBadRequest, body)
	require.Len(t, respErr.Errors, 1)
	assert.Equal(t, http.StatusBadRequest, respErr.Errors[0].StatusCode)
}

func TestParseResponseError_UnparseableBody(t *testing.T) {
	t.Parallel()

	respErr := compute.ParseResponseError(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	require.NotNil(t, respErr)
	assert.Equal(t, http.StatusBadGateway, respErr.StatusCode)
	assert.Empty(t, respErr.Errors)
	assert.Contains(t, respErr.Error(), "502")
}

func TestResponseError_Error(t *testing.T) {
	t.Parallel()

	single := &compute.ResponseError{
		StatusCode: http.StatusNotFound,
		Errors: []compute.APIError{
			{StatusCode: 404, Title: "itemNotFound", Detail: "gone"},
		},
	}
	assert.Contains(t, single.Error(), "itemNotFound")
	assert.Contains(t, single.Error(), "gone")

	multi := &compute.ResponseError{
		StatusCode: http.StatusBadRequest,
		Errors: []compute.APIError{
			{Title: "badRequest"},
			{Title: "conflictingRequest"},
		},
	}
	assert.Contains(t, multi.Error(), "multiple errors")
}

func TestResponseError_FirstError(t *testing.T) {
	t.Parallel()

	empty := &compute.ResponseError{StatusCode: http.StatusInternalServerError}
	assert.Nil(t, empty.FirstError())

	respErr := &compute.ResponseError{
		Errors: []compute.APIError{{Title: "first"}, {Title: "second"}},
	}
	require.NotNil(t, respErr.FirstError())
	assert.Equal(t, "first", respErr.FirstError().Title)
}

func TestErrorStatusHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		check    func(error) bool
		expected bool
	}{
		{
			name:     "APIError not found",
			err:      &compute.APIError{StatusCode: http.StatusNotFound},
			check:    compute.IsNotFound,
			expected: true,
		},
		{
			name:     "wrapped ResponseError not found",
			err:      fmt.Errorf("getting server: %w", &compute.ResponseError{StatusCode: http.StatusNotFound}),
			check:    compute.IsNotFound,
			expected: true,
		},
		{
			name:     "unauthorized",
			err:      &compute.ResponseError{StatusCode: http.StatusUnauthorized},
			check:    compute.IsUnauthorized,
			expected: true,
		},
		{
			name:     "forbidden",
			err:      &compute.ResponseError{StatusCode: http.StatusForbidden},
			check:    compute.IsForbidden,
			expected: true,
		},
		{
			name:     "conflict",
			err:      &compute.ResponseError{StatusCode: http.StatusConflict},
			check:    compute.IsConflict,
			expected: true,
		},
		{
			name:     "over limit via 429",
			err:      &compute.ResponseError{StatusCode: http.StatusTooManyRequests},
			check:    compute.IsOverLimit,
			expected: true,
		},
		{
			name:     "over limit via 403",
			err:      &compute.ResponseError{StatusCode: http.StatusForbidden},
			check:    compute.IsOverLimit,
			expected: true,
		},
		{
			name:     "status mismatch",
			err:      &compute.ResponseError{StatusCode: http.StatusNotFound},
			check:    compute.IsUnauthorized,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errPlain,
			check:    compute.IsNotFound,
			expected: false,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.check(testCase.err))
		})
	}
}
