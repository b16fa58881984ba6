package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Database URLs
	PostgresURL   string
	ClickHouseURL string
	RedisURL      string

	// Riot API
	RiotAPIKey     string
	RiotPlatform   string // e.g. "kr"
	RiotRegion     string // e.g. "asia"
	RequestTimeout time.Duration

	// Collector
	ArchivePath    string
	CheckpointFreq int
	MaxRetries     int

	// Data pipeline
	DataDir    string
	WebsiteDir string
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		RiotPlatform:   getEnv("RIOT_PLATFORM", "kr"),
		RiotRegion:     getEnv("RIOT_REGION", "asia"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),

		ArchivePath:    getEnv("ARCHIVE_PATH", "data/collector.db"),
		CheckpointFreq: getEnvInt("CHECKPOINT_FREQ", 25),
		MaxRetries:     getEnvInt("MAX_RETRIES", 5),

		DataDir:    getEnv("DATA_DIR", "data"),
		WebsiteDir: getEnv("WEBSITE_DIR", "docs/assets/data"),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.ClickHouseURL, err = getEnvRequired("CLICKHOUSE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadCollector is Load plus the Riot API key, which only the collector needs.
func LoadCollector() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if cfg.RiotAPIKey, err = getEnvRequired("RIOT_API_KEY"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
