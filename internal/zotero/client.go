// Package zotero translates PubMed records into Zotero items and writes
// them in batches through the Zotero web API.
package zotero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"
)

const (
	// BaseURL is the Zotero web API base URL.
	BaseURL = "https://api.zotero.org"

	// DefaultTimeout bounds the batch write request.
	DefaultTimeout = 60 * time.Second

	// maxErrorBody caps how much of an error response is kept for logs.
	maxErrorBody = 500
)

// WriteResult reports the outcome of one batch write.
type WriteResult struct {
	// Written is the number of records the destination confirmed.
	Written int

	// Confirmed holds the batch indexes the destination accepted, in
	// ascending order. In the all-or-nothing fallback it covers the
	// whole batch.
	Confirmed []int
}

// Client writes item batches to a Zotero user library.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userID     string
	apiKey     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates a Zotero client for the given user library.
func NewClient(userID, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    BaseURL,
		userID:     userID,
		apiKey:     apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// writeResponse is the per-record outcome document returned by a 200 on
// the items endpoint. Keys of the maps are batch indexes as strings.
type writeResponse struct {
	Success   map[string]string          `json:"success"`
	Unchanged map[string]json.RawMessage `json:"unchanged"`
	Failed    map[string]json.RawMessage `json:"failed"`
}

// Push submits a batch of items. In dry-run mode nothing is sent and the
// would-be count is returned for reporting only.
//
// The POST is issued exactly once: the call is not idempotent, and
// resubmitting after an ambiguous failure would create duplicate records
// downstream. Unwritten identifiers are simply candidates again on the
// next run.
func (c *Client) Push(ctx context.Context, items []Item, dryRun bool) (WriteResult, error) {
	if len(items) == 0 {
		return WriteResult{}, nil
	}

	if dryRun {
		return WriteResult{Written: len(items)}, nil
	}

	if c.userID == "" || c.apiKey == "" {
		return WriteResult{}, ErrNoCredentials
	}

	body, err := json.Marshal(items)
	if err != nil {
		return WriteResult{}, fmt.Errorf("encoding items: %w", err)
	}

	u := fmt.Sprintf("%s/users/%s/items", c.baseURL, c.userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return WriteResult{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Zotero-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return WriteResult{}, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet := string(respBody)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return WriteResult{}, &APIError{StatusCode: resp.StatusCode, Body: snippet}
	}

	return parseWriteResult(respBody, len(items)), nil
}

// parseWriteResult extracts per-record confirmations from the response.
// If the body carries no parseable outcome maps, the whole batch is
// credited, matching the destination's batch-level success status.
func parseWriteResult(body []byte, batchSize int) WriteResult {
	var wr writeResponse
	if err := json.Unmarshal(body, &wr); err != nil || (wr.Success == nil && wr.Unchanged == nil && wr.Failed == nil) {
		return allConfirmed(batchSize)
	}

	var confirmed []int
	for key := range wr.Success {
		if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < batchSize {
			confirmed = append(confirmed, idx)
		}
	}
	for key := range wr.Unchanged {
		if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < batchSize {
			confirmed = append(confirmed, idx)
		}
	}
	sort.Ints(confirmed)

	return WriteResult{Written: len(confirmed), Confirmed: confirmed}
}

func allConfirmed(batchSize int) WriteResult {
	confirmed := make([]int, batchSize)
	for i := range confirmed {
		confirmed[i] = i
	}
	return WriteResult{Written: batchSize, Confirmed: confirmed}
}
