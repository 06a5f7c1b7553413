package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindshare/internal/domain"
	boardsvc "mindshare/internal/services/leaderboard"
)

type stubSource struct {
	raw   []byte
	err   error
	calls int
}

func (s *stubSource) CommunityMindshare(_ context.Context, _ domain.Query) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.raw, nil
}

func newTestServer(src *stubSource) http.Handler {
	return New(boardsvc.New(src)).Routes()
}

func doGet(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestCommunityMindshare_MissingParams(t *testing.T) {
	src := &stubSource{}
	h := newTestServer(src)

	rec, body := doGet(t, h, "/api/community-mindshare?ticker=KAITO")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "window parameter or both start_date and end_date")
	received := body["received"].(map[string]any)
	assert.Equal(t, "KAITO", received["ticker"])
	assert.Zero(t, src.calls, "validation failures never reach upstream")
}

func TestCommunityMindshare_MissingTicker(t *testing.T) {
	src := &stubSource{}
	rec, body := doGet(t, newTestServer(src), "/api/community-mindshare?window=7d")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Ticker parameter is required", body["error"])
	assert.Zero(t, src.calls)
}

func TestCommunityMindshare_EndToEnd(t *testing.T) {
	src := &stubSource{raw: []byte(`{
		"community_mindshare": {
			"total_unique_yappers": 2,
			"total_unique_tweets": 10,
			"top_100_yapper_impressions": 500,
			"top_100_yappers": [
				{"user_id": "u1", "username": "alice", "mindshare": 0.6, "rank": "1"},
				{"user_id": "u2", "username": "bob", "mindshare": 0.4, "rank": "abc"}
			]
		}
	}`)}

	rec := httptest.NewRecorder()
	newTestServer(src).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/community-mindshare?ticker=KAITO&window=7d", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var board domain.Leaderboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))

	assert.Equal(t, "KAITO", board.Ticker)
	assert.Equal(t, "7d", board.Window)
	assert.Equal(t, int64(2), board.OverallMetrics.UniqueYappers)
	assert.Equal(t, int64(500), board.OverallMetrics.TotalImpressions)

	require.Len(t, board.Accounts, 2)
	assert.Equal(t, 1, board.Accounts[0].Ranking)
	assert.Equal(t, 2, board.Accounts[1].Ranking, "unparsable rank falls back to position")
	assert.InDelta(t, 60.0, board.Accounts[0].Mindshare, 1e-9)
	assert.NotEmpty(t, board.RawAPIResponse)
}

func TestCommunityMindshare_NoDataIs404(t *testing.T) {
	src := &stubSource{raw: []byte(`{"community_mindshare": {"total_unique_yappers": 3}}`)}
	rec, body := doGet(t, newTestServer(src), "/api/community-mindshare?ticker=NOPE&window=7d")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No data found for this ticker", body["error"])
	assert.Equal(t, "NOPE", body["ticker"])
	assert.Contains(t, body["message"], "NOPE")
}

func TestCommunityMindshare_TimeoutIs408(t *testing.T) {
	src := &stubSource{err: domain.ErrUpstreamTimeout}
	rec, body := doGet(t, newTestServer(src), "/api/community-mindshare?ticker=KAITO&window=7d")

	assert.Equal(t, http.StatusRequestTimeout, rec.Code)
	assert.Equal(t, "Request timed out", body["error"])
	assert.Equal(t, "KAITO", body["ticker"])
	assert.NotEmpty(t, body["suggestion"])
}

func TestCommunityMindshare_UpstreamStatusPassthrough(t *testing.T) {
	src := &stubSource{err: &domain.UpstreamStatusError{
		Status: http.StatusBadGateway,
		Reason: "Bad Gateway",
		Body:   "upstream exploded",
		URL:    "https://api.example.com/community_mindshare?ticker=KAITO&window=7d",
	}}
	rec, body := doGet(t, newTestServer(src), "/api/community-mindshare?ticker=KAITO&window=7d")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "API returned 502: Bad Gateway", body["error"])
	assert.Equal(t, "upstream exploded", body["details"])
	assert.Contains(t, body["url"], "ticker=KAITO")
}

func TestCommunityMindshare_MissingCredentialIs500(t *testing.T) {
	src := &stubSource{err: domain.ErrNoCredential}
	rec, body := doGet(t, newTestServer(src), "/api/community-mindshare?ticker=KAITO&window=7d")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "KAITO_API_KEY environment variable is not set", body["error"])
}

func TestCommunityMindshare_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&stubSource{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/community-mindshare", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Method not allowed", body["error"])
}

func TestCommunityMindshare_TransformFailureIs500(t *testing.T) {
	src := &stubSource{raw: []byte(`{"community_mindshare": {"top_100_yappers": "not-a-list"}}`)}
	rec, body := doGet(t, newTestServer(src), "/api/community-mindshare?ticker=KAITO&window=7d")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch data from Kaito API", body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestHealthz(t *testing.T) {
	rec, body := doGet(t, newTestServer(&stubSource{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}
