package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the fetch pipeline. All of them are overridable through the
// environment so tests and deployments can tune them without code changes.
const (
	DefaultKaitoBaseURL    = "https://api.kaito.ai/api/v1"
	DefaultUpstreamTimeout = 30 * time.Second
)

type Config struct {
	Env             string
	ListenAddr      string
	KaitoBaseURL    string
	KaitoAPIKey     string
	UpstreamTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Load reads configuration from the environment, consulting a .env file
// first when one exists. A missing API key is not fatal here: the proxy
// surfaces it as a 500 on every request instead of refusing to start.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:             getenv("APP_ENV", "development"),
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
		KaitoBaseURL:    getenv("KAITO_BASE_URL", DefaultKaitoBaseURL),
		KaitoAPIKey:     os.Getenv("KAITO_API_KEY"),
		UpstreamTimeout: getenvDuration("UPSTREAM_TIMEOUT", DefaultUpstreamTimeout),
	}
	if cfg.KaitoAPIKey == "" {
		// Warn via error value so callers can decide; requests will 500.
		return cfg, fmt.Errorf("KAITO_API_KEY not set")
	}
	return cfg, nil
}
