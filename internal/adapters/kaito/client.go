package kaito

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"mindshare/internal/domain"
)

// DefaultTimeout bounds one upstream call. The proxy does not retry a
// timed-out call; the retry budget lives in the proxy's client.
const DefaultTimeout = 30 * time.Second

// Client talks to the Kaito community mindshare API. It is the sole holder
// of the API credential and stateless across requests.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures Client.
type Option func(*Client)

// WithTimeout sets the hard per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the given API base URL and credential.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: DefaultTimeout,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CommunityMindshare fetches the raw mindshare document for the query and
// returns the body untouched. Window takes precedence over the date pair
// when both are present. A missing credential fails before any network I/O.
func (c *Client) CommunityMindshare(ctx context.Context, q domain.Query) ([]byte, error) {
	if c.apiKey == "" {
		return nil, domain.ErrNoCredential
	}

	endpoint, redacted := c.requestURLs(q)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Kaito-Dashboard/1.0")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrUpstreamTimeout
		}
		return nil, fmt.Errorf("fetch community mindshare: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrUpstreamTimeout
		}
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamStatusError{
			Status: resp.StatusCode,
			Reason: http.StatusText(resp.StatusCode),
			Body:   string(body),
			URL:    redacted,
		}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream returned invalid JSON")
	}
	return body, nil
}

// requestURLs builds the upstream URL and a credential-free twin for
// diagnostics. Only the full form ever goes on the wire.
func (c *Client) requestURLs(q domain.Query) (full, redacted string) {
	params := url.Values{}
	params.Set("ticker", q.Ticker)
	if q.Window != "" {
		params.Set("window", q.Window)
	} else {
		params.Set("start_date", q.StartDate)
		params.Set("end_date", q.EndDate)
	}
	redacted = c.baseURL + "/community_mindshare?" + params.Encode()

	params.Set("api_key", c.apiKey)
	full = c.baseURL + "/community_mindshare?" + params.Encode()
	return full, redacted
}
