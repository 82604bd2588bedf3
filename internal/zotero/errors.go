package zotero

import (
	"errors"
	"fmt"
)

// Common errors returned by the Zotero client.
var (
	// ErrNoCredentials indicates ZOTERO_USER_ID / ZOTERO_API_KEY are not set.
	ErrNoCredentials = errors.New("Zotero credentials not configured")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with Zotero")
)

// APIError represents an error status from the Zotero write API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Zotero API error (status %d): %s", e.StatusCode, e.Body)
}
