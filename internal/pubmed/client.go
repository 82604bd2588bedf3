// Package pubmed implements a client for the NCBI E-utilities search and
// summary endpoints.
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the NCBI E-utilities base URL.
	BaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 60 * time.Second

	// RateLimit is 3 requests per second, the NCBI limit without an API key.
	RateLimit = 3.0

	// DefaultMaxTries bounds automatic retries of a single call.
	DefaultMaxTries = 4
)

// Client is a rate-limited HTTP client for PubMed esearch/esummary.
// Both endpoints are idempotent reads, so transient failures (timeouts,
// 429, 5xx) are retried with exponential backoff.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	maxTries   uint
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

// WithMaxTries sets the retry budget per call.
func WithMaxTries(n uint) ClientOption {
	return func(c *Client) {
		c.maxTries = n
	}
}

// NewClient creates a new PubMed client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		maxTries:   DefaultMaxTries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues one rate-limited GET with bounded retries and returns the
// response body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	u := c.baseURL + "/" + endpoint + "?" + params.Encode()

	operation := func() ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(fmt.Errorf("rate limiter: %w", err))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", "pmsync")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
		case resp.StatusCode >= 500:
			return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint}
		case resp.StatusCode >= 400:
			return nil, backoff.Permanent(&APIError{StatusCode: resp.StatusCode, Endpoint: endpoint})
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
		}
		return body, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxTries))
}

// Search queries PubMed for records matching term published within the
// last days days, capped at retmax results. Returns PMIDs in the order
// PubMed ranks them.
func (c *Client) Search(ctx context.Context, term string, days, retmax int) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("retmode", "json")
	params.Set("retmax", strconv.Itoa(retmax))
	params.Set("term", term)
	params.Set("reldate", strconv.Itoa(days))
	params.Set("datetype", "pdat")

	body, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var result struct {
		ESearchResult struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: parsing esearch result: %v", ErrInvalidResponse, err)
	}

	return result.ESearchResult.IDList, nil
}

// Summaries fetches ESummary metadata for a batch of PMIDs in one call.
// The returned map may be missing entries for some PMIDs.
func (c *Client) Summaries(ctx context.Context, pmids []string) (map[string]Summary, error) {
	if len(pmids) == 0 {
		return map[string]Summary{}, nil
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("retmode", "json")
	params.Set("id", strings.Join(pmids, ","))

	body, err := c.get(ctx, "esummary.fcgi", params)
	if err != nil {
		return nil, err
	}

	// The result object holds "uids" plus one key per UID.
	var result struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: parsing esummary result: %v", ErrInvalidResponse, err)
	}

	var uids []string
	if raw, ok := result.Result["uids"]; ok {
		if err := json.Unmarshal(raw, &uids); err != nil {
			return nil, fmt.Errorf("%w: parsing uids: %v", ErrInvalidResponse, err)
		}
	}

	summaries := make(map[string]Summary, len(uids))
	for _, uid := range uids {
		raw, ok := result.Result[uid]
		if !ok {
			continue
		}
		var s Summary
		if err := json.Unmarshal(raw, &s); err != nil {
			// A single undecodable DocSum degrades to a missing entry;
			// the caller builds a placeholder record for it.
			continue
		}
		summaries[uid] = s
	}

	return summaries, nil
}
