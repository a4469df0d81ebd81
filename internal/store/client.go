// Package store is a minimal read-only client for the hosted data store's
// REST API (PostgREST surface). The client is stateless: no session is
// persisted and no token refresh runs in the background, so nothing
// outlives the request that constructed it.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Sentinel construction errors. Callers classify these as configuration
// faults rather than store-reported failures.
var (
	ErrMissingEndpoint   = errors.New("store endpoint is not configured")
	ErrMissingCredential = errors.New("no store credential is configured")
)

// QueryError is an error document returned by the data store itself
// (as opposed to a transport or decoding failure on the way there).
type QueryError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

func (e *QueryError) Error() string { return e.Message }

// Row is a single record of a query result. The probe never inspects
// column values, so a generic map is enough.
type Row map[string]any

// Client issues bounded reads against one REST endpoint with one
// credential. The base URL is injected so tests can point to a local mock.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New validates the endpoint and credential and returns a ready client.
// The timeout bounds every request made through the returned client.
func New(endpoint, apiKey string, timeout time.Duration) (*Client, error) {
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid store endpoint %q", endpoint)
	}
	if apiKey == "" {
		return nil, ErrMissingCredential
	}

	return &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Query issues a single GET against the collection, projecting the given
// columns and capping the result at limit rows. It never writes.
//
// A non-2xx response carrying a store error document is returned as a
// *QueryError; every other failure (transport, decode, unexpected status)
// is an ordinary error.
func (c *Client) Query(ctx context.Context, collection, columns string, limit int) ([]Row, error) {
	q := url.Values{}
	q.Set("select", columns)
	q.Set("limit", strconv.Itoa(limit))
	endpoint := c.baseURL + "/rest/v1/" + url.PathEscape(collection) + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error documents are small; cap the read in case the body is not one.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var qe QueryError
		if jerr := json.Unmarshal(body, &qe); jerr == nil && qe.Message != "" {
			return nil, &qe
		}
		return nil, fmt.Errorf("unexpected store status %d", resp.StatusCode)
	}

	var rows []Row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return rows, nil
}
