package crossref

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the client.
var (
	// ErrNotFound indicates the DOI is not registered.
	ErrNotFound = errors.New("DOI not found")

	// ErrRateLimited indicates the resolver refused the request for rate.
	ErrRateLimited = errors.New("DOI resolver rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error resolving DOI")

	// ErrInvalidResponse indicates a body that is not CSL JSON.
	ErrInvalidResponse = errors.New("invalid response from DOI resolver")

	// ErrInvalidDOI indicates input that does not look like a DOI.
	ErrInvalidDOI = errors.New("invalid DOI")
)

// APIError is an unexpected HTTP status from the resolver.
type APIError struct {
	StatusCode int
	DOI        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("DOI resolver error (status %d): %s", e.StatusCode, e.DOI)
}

// IsNotFound returns true if the error indicates the DOI is unknown.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsNetworkError returns true if the resolver could not be reached.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetworkError)
}
