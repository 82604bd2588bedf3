package pubmed

import (
	"errors"
	"fmt"
)

// Common errors returned by the PubMed client.
var (
	// ErrRateLimited indicates NCBI returned 429.
	ErrRateLimited = errors.New("PubMed rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with PubMed")

	// ErrInvalidResponse indicates an unexpected E-utilities response.
	ErrInvalidResponse = errors.New("invalid response from PubMed")
)

// APIError represents a non-retryable error status from E-utilities.
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("PubMed API error (status %d, endpoint %s)", e.StatusCode, e.Endpoint)
}
