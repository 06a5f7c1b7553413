package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mindshare/internal/domain"
	"mindshare/internal/ports"
)

// Server exposes the community mindshare proxy over HTTP. It maps the
// failure taxonomy onto status codes; it never substitutes synthetic data
// for an upstream failure.
type Server struct {
	leaderboards ports.Leaderboards
}

func New(leaderboards ports.Leaderboards) *Server {
	return &Server{leaderboards: leaderboards}
}

// Routes returns the chi router for the proxy.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "Method not allowed"})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	r.Get("/api/community-mindshare", s.handleCommunityMindshare)
	return r
}

func (s *Server) handleCommunityMindshare(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := domain.Query{
		Ticker:    params.Get("ticker"),
		Window:    params.Get("window"),
		StartDate: params.Get("start_date"),
		EndDate:   params.Get("end_date"),
	}
	log.Printf("community-mindshare query: ticker=%q window=%q start_date=%q end_date=%q",
		q.Ticker, q.Window, q.StartDate, q.EndDate)

	board, err := s.leaderboards.Get(r.Context(), q)
	if err != nil {
		s.writeError(w, q, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// writeError maps one failure class to its status code and body shape.
func (s *Server) writeError(w http.ResponseWriter, q domain.Query, err error) {
	var verr *domain.ValidationError
	var uerr *domain.UpstreamStatusError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": verr.Reason,
			"received": map[string]any{
				"ticker":     q.Ticker,
				"window":     q.Window,
				"start_date": q.StartDate,
				"end_date":   q.EndDate,
			},
		})

	case errors.Is(err, domain.ErrNoCredential):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": domain.ErrNoCredential.Error(),
		})

	case errors.Is(err, domain.ErrNoData):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "No data found for this ticker",
			"message": fmt.Sprintf("The ticker %q may not be available in the community leaderboard. Try using \"MIRA\" or other supported tokens.", q.Ticker),
			"ticker":  q.Ticker,
		})

	case errors.Is(err, domain.ErrUpstreamTimeout):
		log.Printf("upstream timed out for ticker %q", q.Ticker)
		writeJSON(w, http.StatusRequestTimeout, map[string]any{
			"error":      "Request timed out",
			"message":    fmt.Sprintf("The request for ticker %q timed out. This ticker may not be supported or the API is experiencing issues.", q.Ticker),
			"ticker":     q.Ticker,
			"suggestion": "Try using \"MIRA\" or check if the ticker is available in the community leaderboard.",
		})

	case errors.As(err, &uerr):
		log.Printf("upstream error %d for ticker %q: %s", uerr.Status, q.Ticker, uerr.Body)
		writeJSON(w, uerr.Status, map[string]any{
			"error":   uerr.Error(),
			"details": uerr.Body,
			"url":     uerr.URL,
		})

	default:
		log.Printf("community-mindshare error for ticker %q: %v", q.Ticker, err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Failed to fetch data from Kaito API",
			"details": err.Error(),
			"ticker":  q.Ticker,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
