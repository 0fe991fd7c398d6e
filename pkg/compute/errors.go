package compute

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a single error returned by the compute API. The
// provider wraps errors in a one-key envelope whose key names the error
// kind, e.g. {"itemNotFound": {"message": "...", "code": 404}}.
type APIError struct {
	StatusCode int    `json:"code"    yaml:"code"`
	Title      string `json:"title"   yaml:"title"`
	Detail     string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (status: %d)", e.Title, e.Detail, e.StatusCode)
}

// ResponseError represents a non-success response from the API. It carries
// the HTTP status and the parsed error body, surfaced to the caller
// verbatim; no retry or translation happens at this layer.
type ResponseError struct {
	StatusCode int        `json:"status_code"`
	Errors     []APIError `json:"errors"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	return fmt.Sprintf("multiple errors: %v", e.Errors)
}

// FirstError returns the first error or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired           = errors.New("config is required")
	ErrEndpointRequired         = errors.New("API endpoint is required")
	ErrNoMoreItems              = errors.New("no more items")
	ErrMissingNextLink          = errors.New("page carries no next link")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
	ErrNoTokenInResponse        = errors.New("no token in authentication response")
	ErrCredentialsRequired      = errors.New("username and password are required")
	ErrFlavorNameRequired       = errors.New("flavor name is required")
	ErrKeypairNameRequired      = errors.New("keypair name is required")
	ErrServerNotFound           = errors.New("server not found")
	ErrInvalidRebootType        = errors.New("invalid reboot type")
	ErrNATSConfigRequired       = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType     = errors.New("unsupported cache type")
	ErrCacheDisabled            = errors.New("cache disabled")
	ErrCacheMiss                = errors.New("cache entry not found")
)

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is an authorization error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsConflict checks if the error is a conflict error.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// IsOverLimit checks if the error is a quota or rate limit error.
func IsOverLimit(err error) bool {
	return hasStatus(err, http.StatusForbidden) || hasStatus(err, http.StatusTooManyRequests)
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}

	errResp := &ResponseError{}
	if errors.As(err, &errResp) {
		return errResp.StatusCode == status
	}

	return false
}

// ParseResponseError parses an error body into a ResponseError. The body is
// expected to be a one-key envelope; when it cannot be parsed the returned
// ResponseError still carries the HTTP status so the caller sees the failure.
func ParseResponseError(statusCode int, data []byte) *ResponseError {
	respErr := &ResponseError{StatusCode: statusCode}

	var envelope map[string]struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	}

	if err := json.Unmarshal(data, &envelope); err != nil {
		return respErr
	}

	for title, body := range envelope {
		status := body.Code
		if status == 0 {
			status = statusCode
		}

		respErr.Errors = append(respErr.Errors, APIError{
			StatusCode: status,
			Title:      title,
			Detail:     body.Message,
		})
	}

	return respErr
}
