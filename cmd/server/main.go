package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	httpadapter "mindshare/internal/adapters/http"
	"mindshare/internal/adapters/kaito"
	"mindshare/internal/config"
	boardsvc "mindshare/internal/services/leaderboard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Requests will answer 500 until the key is configured.
		log.Printf("warning: %v", err)
	}

	upstream := kaito.New(cfg.KaitoBaseURL, cfg.KaitoAPIKey, kaito.WithTimeout(cfg.UpstreamTimeout))
	boards := boardsvc.New(upstream)

	srv := httpadapter.New(boards)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	errCh := make(chan error, 1)
	go func() { errCh <- http.ListenAndServe(cfg.ListenAddr, r) }()
	log.Printf("listening on %s", cfg.ListenAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("shutting down on %s", sig)
		time.Sleep(300 * time.Millisecond)
	case err := <-errCh:
		log.Fatal(fmt.Errorf("server error: %w", err))
	}
}
