package domain

import (
	"errors"
	"fmt"
)

// Failure taxonomy for one query. Every class reaches the caller as a
// distinguishable value; none is ever hidden behind synthetic data.

// ErrNoCredential signals that the upstream API key was never configured.
// It is fatal to every request and surfaced per request, not as a crash.
var ErrNoCredential = errors.New("KAITO_API_KEY environment variable is not set")

// ErrNoData signals a syntactically valid upstream response that carries no
// leaderboard for the ticker. Terminal; callers should not retry.
var ErrNoData = errors.New("no data found for this ticker")

// ErrUpstreamTimeout signals that the upstream call exceeded its deadline.
// The proxy does not retry it; the retry budget belongs to the client.
var ErrUpstreamTimeout = errors.New("upstream request timed out")

// ValidationError reports a malformed or incomplete query, echoing what was
// received so the caller can see which combination is missing.
type ValidationError struct {
	Reason string
	Query  Query
}

func (e *ValidationError) Error() string { return e.Reason }

// UpstreamStatusError carries a non-success upstream status through the
// proxy for diagnosis. URL is credential-redacted.
type UpstreamStatusError struct {
	Status int
	Reason string
	Body   string
	URL    string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("API returned %d: %s", e.Status, e.Reason)
}
