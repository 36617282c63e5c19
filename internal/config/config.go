package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	// CitiesFile is the processed city lookup table.
	CitiesFile string

	// GeocoderAPIKey enables the Google geocoding fallback for cities
	// missing from the table. Empty disables it.
	GeocoderAPIKey string

	// HTTPTimeout applies to outbound archive requests.
	HTTPTimeout time.Duration

	// Series cache retention.
	CacheMaxEntries int           // max cached series (0 = unlimited)
	CacheTTL        time.Duration // max entry age (0 = never expires)

	// PruneInterval controls how often expired cache entries are swept.
	PruneInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.CitiesFile = getenvDefault("CITIES_FILE", "data/cities.csv")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.CacheMaxEntries = getenvInt("CACHE_MAX_ENTRIES", 256)

	// The archive never rewrites history, so keep entries around all day.
	ttlStr := getenvDefault("CACHE_TTL", "24h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	pruneStr := getenvDefault("CACHE_PRUNE_INTERVAL", "60m")
	prune, err := time.ParseDuration(pruneStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_PRUNE_INTERVAL: %w", err)
	}
	cfg.PruneInterval = prune

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
