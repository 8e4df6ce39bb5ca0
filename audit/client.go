// Package audit is a read-only client for a Microsoft Graph-style
// directory API, used to review guest accounts, sign-in activity, and
// group membership. It handles the API's OData pagination and its
// throttling: HTTP 429 responses are retried a bounded number of times
// with a fixed delay, while every other failure is permanent.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/verscout/verscout/internal/config"
	"github.com/verscout/verscout/log"
)

const defaultBaseURL = "https://graph.microsoft.com/v1.0"

// maxResponseBytes caps how much of one page is read. Directory pages
// are thousands of records at most.
const maxResponseBytes = 10 * 1024 * 1024

// Client queries the directory API. Construct it with New; the zero
// value is not usable.
type Client struct {
	base          string
	httpClient    *http.Client
	logger        log.Logger
	throttleDelay time.Duration
	maxAttempts   uint
}

// Option adjusts client construction.
type Option func(*Client)

// WithBaseURL points the client at an alternate API root, typically a
// test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.base = u }
}

// WithHTTPClient replaces the transport. Callers normally hand in the
// token-refreshing client from CredentialsClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger replaces the default logger.
func WithLogger(l log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithThrottleDelay sets the fixed wait between throttled attempts.
// Default 10s.
func WithThrottleDelay(d time.Duration) Option {
	return func(c *Client) { c.throttleDelay = d }
}

// WithMaxAttempts caps how many times a throttled request is tried in
// total. Default 3.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = uint(n)
		}
	}
}

// New creates a directory client.
func New(opts ...Option) *Client {
	c := &Client{
		base:          defaultBaseURL,
		httpClient:    &http.Client{Timeout: config.GetAPITimeout()},
		logger:        log.Default(),
		throttleDelay: 10 * time.Second,
		maxAttempts:   3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError reports a non-success HTTP status from the API.
type StatusError struct {
	StatusCode int
	URL        string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s",
		e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// get performs one GET, retrying only on HTTP 429. The retry is a
// constant-delay loop with a hard attempt cap; sustained throttling
// surfaces the final 429 as a *StatusError instead of looping forever.
func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("building request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("GET %s: %w", requestURL, err))
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			c.logger.Warn("throttled by directory API, backing off",
				"url", requestURL, "delay", c.throttleDelay)
			return nil, &StatusError{StatusCode: resp.StatusCode, URL: requestURL}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, backoff.Permanent(&StatusError{StatusCode: resp.StatusCode, URL: requestURL})
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("reading response from %s: %w", requestURL, err))
		}
		return body, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.throttleDelay)),
		backoff.WithMaxTries(c.maxAttempts))
}

// getJSON GETs requestURL and decodes the response into v.
func (c *Client) getJSON(ctx context.Context, requestURL string, v any) error {
	body, err := c.get(ctx, requestURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", requestURL, err)
	}
	return nil
}

// listAll follows @odata.nextLink until the last page, concatenating
// every page's value array.
func listAll[T any](ctx context.Context, c *Client, requestURL string) ([]T, error) {
	var out []T
	for requestURL != "" {
		var page struct {
			Value    []T    `json:"value"`
			NextLink string `json:"@odata.nextLink"`
		}
		if err := c.getJSON(ctx, requestURL, &page); err != nil {
			return nil, err
		}
		out = append(out, page.Value...)
		if page.NextLink != "" {
			c.logger.Debug("fetching next page", "url", page.NextLink)
		}
		requestURL = page.NextLink
	}
	return out, nil
}
