package domain

import "encoding/json"

// Core domain models. The upstream payload is only partially known, so the
// normalized types keep a strongly-typed core and confine anything
// unrecognized to an explicit Extra bag.

// Query identifies one leaderboard request: a ticker plus either a relative
// window ("7d") or an explicit date range. Window wins when both are given.
type Query struct {
	Ticker    string
	Window    string
	StartDate string
	EndDate   string
}

// Validate enforces the query invariant: ticker present, and either a
// window or a complete date pair. It never contacts the upstream service.
func (q Query) Validate() error {
	if q.Ticker == "" {
		return &ValidationError{Reason: "Ticker parameter is required", Query: q}
	}
	if q.Window == "" && (q.StartDate == "" || q.EndDate == "") {
		return &ValidationError{
			Reason: "Either window parameter or both start_date and end_date parameters are required",
			Query:  q,
		}
	}
	return nil
}

// OverallMetrics holds the aggregate counters for a leaderboard. Every
// counter defaults to zero when the upstream omits it.
type OverallMetrics struct {
	UniqueYappers             int64 `json:"unique_yappers"`
	TotalTweets               int64 `json:"total_tweets"`
	TotalImpressions          int64 `json:"total_impressions"`
	TotalRetweets             int64 `json:"total_retweets"`
	TotalQuotes               int64 `json:"total_quotes"`
	TotalLikes                int64 `json:"total_likes"`
	TotalBookmarks            int64 `json:"total_bookmarks"`
	TotalSmartEngagements     int64 `json:"total_smart_engagements"`
	TotalCommunityEngagements int64 `json:"total_community_engagements"`
}

// Account is one ranked contributor. Ordering within a leaderboard follows
// the upstream sequence; ranking ties are passed through untouched.
type Account struct {
	UserID               string   `json:"user_id"`
	Username             string   `json:"username"`
	DisplayName          string   `json:"display_name"`
	ProfileImageURL      string   `json:"profile_image_url"`
	Impressions          int64    `json:"impressions"`
	Retweets             int64    `json:"retweets"`
	Quotes               int64    `json:"quotes"`
	Likes                int64    `json:"likes"`
	Bookmarks            int64    `json:"bookmarks"`
	SmartEngagements     int64    `json:"smart_engagements"`
	CommunityEngagements int64    `json:"community_engagements"`
	Mindshare            float64  `json:"mindshare"` // percentage, upstream fraction * 100
	Ranking              int      `json:"ranking"`   // 1-based; falls back to array position
	TweetCount           int64    `json:"tweet_count"`
	TweetURLs            []string `json:"tweet_urls"`
	PeripheralTweetURLs  []string `json:"peripheral_tweet_urls"`
	Language             string   `json:"language,omitempty"`
	RawCommunityScore    float64  `json:"raw_community_score"`

	// Extra carries per-account upstream fields the core schema does not
	// recognize, so new upstream fields survive the transform.
	Extra map[string]json.RawMessage `json:"extra,omitempty"`
}

// Leaderboard is the normalized contract the view layer renders. Entities
// live for one render cycle and are replaced wholesale on the next query.
type Leaderboard struct {
	Ticker         string          `json:"ticker"`
	Window         string          `json:"window,omitempty"`
	StartDate      string          `json:"start_date,omitempty"`
	EndDate        string          `json:"end_date,omitempty"`
	OverallMetrics OverallMetrics  `json:"overall_metrics"`
	Accounts       []Account       `json:"accounts"`
	RawAPIResponse json.RawMessage `json:"raw_api_response"` // untouched upstream body, for diagnostics
}
