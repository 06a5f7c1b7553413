package leaderboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"mindshare/internal/domain"
)

// Upstream document shapes. Counters decode straight into int64 so an
// omitted field is already zero; the yapper list stays raw until the
// presence check has run, because an absent list means "no data" while an
// empty one is a legitimate leaderboard.

type rawEnvelope struct {
	CommunityMindshare *rawCommunity `json:"community_mindshare"`
}

type rawCommunity struct {
	TotalUniqueYappers              int64           `json:"total_unique_yappers"`
	TotalUniqueTweets               int64           `json:"total_unique_tweets"`
	Top100YapperImpressions         int64           `json:"top_100_yapper_impressions"`
	Top100YapperRetweets            int64           `json:"top_100_yapper_retweets"`
	Top100YapperQuoteTweets         int64           `json:"top_100_yapper_quote_tweets"`
	Top100YapperLikes               int64           `json:"top_100_yapper_likes"`
	Top100YapperBookmarks           int64           `json:"top_100_yapper_bookmarks"`
	Top100YapperSmartEngagements    int64           `json:"top_100_yapper_smart_engagements"`
	Top100YapperCommunityEngagement int64           `json:"top_100_yapper_community_engagements"`
	Top100Yappers                   json.RawMessage `json:"top_100_yappers"`
}

// yapperFields are the per-account keys the core schema recognizes.
// Anything else lands in Account.Extra.
var yapperFields = map[string]bool{
	"user_id":                     true,
	"username":                    true,
	"display_name":                true,
	"profile_image_url":           true,
	"total_impressions":           true,
	"total_retweets":              true,
	"total_quote_tweets":          true,
	"total_likes":                 true,
	"total_bookmarks":             true,
	"total_smart_engagements":     true,
	"total_community_engagements": true,
	"mindshare":                   true,
	"rank":                        true,
	"tweet_counts":                true,
	"tweet_urls":                  true,
	"peripheral_tweet_urls":       true,
	"language":                    true,
	"raw_community_score":         true,
}

// normalize reshapes the raw upstream body into the leaderboard contract,
// echoing the query and retaining the untouched body for diagnostics.
func normalize(q domain.Query, raw []byte) (*domain.Leaderboard, error) {
	var env rawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode upstream payload: %w", err)
	}
	cm := env.CommunityMindshare
	if cm == nil || isAbsent(cm.Top100Yappers) {
		return nil, domain.ErrNoData
	}

	var yappers []map[string]json.RawMessage
	if err := json.Unmarshal(cm.Top100Yappers, &yappers); err != nil {
		return nil, fmt.Errorf("decode top_100_yappers: %w", err)
	}

	accounts := make([]domain.Account, 0, len(yappers))
	for i, y := range yappers {
		accounts = append(accounts, normalizeAccount(y, i))
	}

	return &domain.Leaderboard{
		Ticker:    q.Ticker,
		Window:    q.Window,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		OverallMetrics: domain.OverallMetrics{
			UniqueYappers:             cm.TotalUniqueYappers,
			TotalTweets:               cm.TotalUniqueTweets,
			TotalImpressions:          cm.Top100YapperImpressions,
			TotalRetweets:             cm.Top100YapperRetweets,
			TotalQuotes:               cm.Top100YapperQuoteTweets,
			TotalLikes:                cm.Top100YapperLikes,
			TotalBookmarks:            cm.Top100YapperBookmarks,
			TotalSmartEngagements:     cm.Top100YapperSmartEngagements,
			TotalCommunityEngagements: cm.Top100YapperCommunityEngagement,
		},
		Accounts:       accounts,
		RawAPIResponse: json.RawMessage(raw),
	}, nil
}

// normalizeAccount maps one yapper record at 0-based position idx. Fields
// decode leniently: anything missing or mistyped falls back to its default
// rather than failing the whole payload.
func normalizeAccount(y map[string]json.RawMessage, idx int) domain.Account {
	userID := stringField(y["user_id"])
	username := stringField(y["username"])
	displayName := stringField(y["display_name"])
	avatar := stringField(y["profile_image_url"])

	if displayName == "" {
		displayName = username
	}
	if displayName == "" {
		displayName = fmt.Sprintf("User %d", idx+1)
	}
	if username == "" {
		username = "User_" + userID
	}
	if avatar == "" {
		avatar = "/placeholder-avatar.svg"
	}

	acct := domain.Account{
		UserID:               userID,
		Username:             username,
		DisplayName:          displayName,
		ProfileImageURL:      avatar,
		Impressions:          intField(y["total_impressions"]),
		Retweets:             intField(y["total_retweets"]),
		Quotes:               intField(y["total_quote_tweets"]),
		Likes:                intField(y["total_likes"]),
		Bookmarks:            intField(y["total_bookmarks"]),
		SmartEngagements:     intField(y["total_smart_engagements"]),
		CommunityEngagements: intField(y["total_community_engagements"]),
		Mindshare:            floatField(y["mindshare"]) * 100,
		Ranking:              ranking(y["rank"], idx),
		TweetCount:           intField(y["tweet_counts"]),
		TweetURLs:            stringsField(y["tweet_urls"]),
		PeripheralTweetURLs:  stringsField(y["peripheral_tweet_urls"]),
		Language:             stringField(y["language"]),
		RawCommunityScore:    floatField(y["raw_community_score"]),
	}

	for key, val := range y {
		if yapperFields[key] {
			continue
		}
		if acct.Extra == nil {
			acct.Extra = make(map[string]json.RawMessage)
		}
		acct.Extra[key] = val
	}
	return acct
}

// ranking parses the upstream rank as an integer, tolerating both quoted
// and bare numbers. Unparsable or absent ranks fall back to the 1-based
// array position. Ties are passed through, never deduplicated.
func ranking(raw json.RawMessage, idx int) int {
	if s := stringField(raw); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return idx + 1
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func stringField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func intField(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	return 0
}

func floatField(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	return 0
}

func stringsField(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
