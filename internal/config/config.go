package config

import (
	"os"
	"time"
)

// Config holds the endpoints and client settings for the external feeds.
// The real public endpoints are the defaults; tests and deployments behind
// proxies override them via environment variables.
type Config struct {
	RecallFeedURL  string
	RecipeFeedURL  string
	ProductFeedURL string
	FeedTimeout    time.Duration
}

// Environment variable names.
const (
	EnvRecallFeedURL  = "SHRAMBA_RECALL_FEED_URL"
	EnvRecipeFeedURL  = "SHRAMBA_RECIPE_FEED_URL"
	EnvProductFeedURL = "SHRAMBA_PRODUCT_FEED_URL"
	EnvFeedTimeout    = "SHRAMBA_FEED_TIMEOUT"
)

// NewFromEnv creates a Config from environment variables, falling back to
// the public feed endpoints.
func NewFromEnv() *Config {
	cfg := &Config{
		RecallFeedURL:  "https://api.fda.gov",
		RecipeFeedURL:  "https://www.themealdb.com/api/json/v1/1",
		ProductFeedURL: "https://world.openfoodfacts.org",
		FeedTimeout:    10 * time.Second,
	}

	if v := os.Getenv(EnvRecallFeedURL); v != "" {
		cfg.RecallFeedURL = v
	}
	if v := os.Getenv(EnvRecipeFeedURL); v != "" {
		cfg.RecipeFeedURL = v
	}
	if v := os.Getenv(EnvProductFeedURL); v != "" {
		cfg.ProductFeedURL = v
	}
	if v := os.Getenv(EnvFeedTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.FeedTimeout = d
		}
	}

	return cfg
}
