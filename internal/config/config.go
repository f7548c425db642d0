// Package config loads contentmix settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gauthierbraillon/contentmix/internal/aggregator"
	"github.com/gauthierbraillon/contentmix/internal/pagination"
)

const (
	DefaultAPIURL            = "https://www.googleapis.com"
	DefaultAddr              = "127.0.0.1:8501"
	DefaultRequestsPerSecond = 5.0
	DefaultSessionTTL        = 30 * time.Minute
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	APIKey            string
	APIURL            string
	Addr              string
	PageSize          int
	Timezone          *time.Location
	RequestsPerSecond float64
	SessionTTL        time.Duration
	MaxPages          int
}

// Load reads the environment and returns a populated Config.
// Invalid values fall back to their defaults with a warning.
func Load() *Config {
	return &Config{
		APIKey:            os.Getenv("YOUTUBE_API_KEY"),
		APIURL:            getEnv("CONTENTMIX_API_URL", DefaultAPIURL),
		Addr:              getEnv("CONTENTMIX_ADDR", DefaultAddr),
		PageSize:          getEnvPositiveInt("CONTENTMIX_PAGE_SIZE", pagination.DefaultPageSize),
		Timezone:          getEnvLocation("CONTENTMIX_TIMEZONE"),
		RequestsPerSecond: getEnvRate("CONTENTMIX_REQUESTS_PER_SECOND", DefaultRequestsPerSecond),
		SessionTTL:        getEnvDuration("CONTENTMIX_SESSION_TTL", DefaultSessionTTL),
		MaxPages:          getEnvNonNegativeInt("CONTENTMIX_MAX_PAGES", 0),
	}
}

// HasAPIKey reports whether a YouTube API key is configured.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvPositiveInt(key string, fallback int) int {
	n := getEnvNonNegativeInt(key, fallback)
	if n == 0 {
		slog.Warn("ignoring non-positive setting", "key", key, "default", fallback)
		return fallback
	}
	return n
}

func getEnvNonNegativeInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		slog.Warn("ignoring invalid integer setting", "key", key, "value", val, "default", fallback)
		return fallback
	}
	return n
}

func getEnvRate(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || f < 0 {
		slog.Warn("ignoring invalid rate setting", "key", key, "value", val, "default", fallback)
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid duration setting", "key", key, "value", val, "default", fallback)
		return fallback
	}
	return d
}

func getEnvLocation(key string) *time.Location {
	val := os.Getenv(key)
	loc, err := aggregator.LoadLocation(val)
	if err == nil {
		return loc
	}
	slog.Warn("ignoring invalid timezone setting", "key", key, "value", val, "default", aggregator.DefaultTimezone)
	loc, _ = aggregator.LoadLocation("")
	return loc
}
