// Package client is the Go consumer of the community mindshare proxy. It
// owns the retry budget for transient gateway timeouts; every other failure
// class is deterministic and surfaces after a single attempt.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"

	"mindshare/internal/domain"
)

// Retry defaults. The upstream dependency is known to be slow for some
// tickers, so gateway timeouts get a small fixed-delay budget.
const (
	DefaultRetryMax   = 4
	DefaultRetryDelay = 2 * time.Second
)

// StatusError reports a non-success proxy response. Retry decisions key off
// Code, never off message text.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

// Result is the successful fetch outcome handed to view layers.
type Result struct {
	Data    domain.Leaderboard `json:"data"`
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
}

// Client calls the proxy endpoint. Attempts within one query are strictly
// sequential; there is no concurrent fan-out.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryMax   uint64
	retryDelay time.Duration
}

// Option configures Client.
type Option func(*Client)

// WithRetryMax sets the maximum number of retries after the first attempt.
func WithRetryMax(n uint64) Option {
	return func(c *Client) { c.retryMax = n }
}

// WithRetryDelay sets the fixed delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for a proxy at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		retryMax:   DefaultRetryMax,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CommunityMindshare fetches the normalized leaderboard for the query,
// retrying only gateway timeouts (HTTP 504) up to the retry budget with a
// constant delay between attempts. Transport errors are never retried,
// whatever their message happens to contain.
func (c *Client) CommunityMindshare(ctx context.Context, q domain.Query) (*Result, error) {
	backoff := retry.WithMaxRetries(c.retryMax, retry.NewConstant(c.retryDelay))

	var out *Result
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		res, err := c.fetchOnce(ctx, q)
		if err != nil {
			var serr *StatusError
			if errors.As(err, &serr) && serr.Code == http.StatusGatewayTimeout {
				return retry.RetryableError(err)
			}
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		// Strip the retry wrapper so exhausted budgets surface the proxy's
		// own error message.
		var serr *StatusError
		if errors.As(err, &serr) {
			return nil, serr
		}
		return nil, err
	}
	return out, nil
}

// fetchOnce performs a single proxy call.
func (c *Client) fetchOnce(ctx context.Context, q domain.Query) (*Result, error) {
	params := url.Values{}
	params.Set("ticker", q.Ticker)
	if q.Window != "" {
		params.Set("window", q.Window)
	} else if q.StartDate != "" && q.EndDate != "" {
		params.Set("start_date", q.StartDate)
		params.Set("end_date", q.EndDate)
	}

	endpoint := c.baseURL + "/api/community-mindshare?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch community mindshare: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Message: errorMessage(resp.StatusCode, body)}
	}

	var board domain.Leaderboard
	if err := json.Unmarshal(body, &board); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	return &Result{
		Data:    board,
		Success: true,
		Message: "Real API data loaded successfully",
	}, nil
}

// errorMessage pulls the error field out of a failure body, falling back to
// a generic status message when the body has none.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}
