package config

import (
	"os"
	"strconv"
	"time"
)

// Config groups all runtime configuration for the service.
type Config struct {
	Server    Server
	Redis     RedisConfig
	Postgres  PostgresConfig
	Directory DirectoryConfig
	Crawler   CrawlerConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
	// APIKeyHash is a bcrypt hash of the API key clients must present.
	// Empty disables authentication (development mode).
	APIKeyHash string
}

// RedisConfig configures the optional Redis-backed contact cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the optional Postgres-backed contact cache.
type PostgresConfig struct {
	DSN string
}

// DirectoryConfig carries the contact-directory service credential.
// An empty APIKey disables directory lookups; scraping still runs.
type DirectoryConfig struct {
	APIKey  string
	BaseURL string
}

// CrawlerConfig bounds the site crawler.
type CrawlerConfig struct {
	FetchTimeout time.Duration
	MaxSubpages  int
	PageDelay    time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("SURGE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		Server: Server{
			Addr:       addr,
			APIKeyHash: os.Getenv("SURGE_API_KEY_HASH"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("SURGE_REDIS_URL"),
			PoolSize:     envInt("SURGE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("SURGE_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("SURGE_POSTGRES_DSN"),
		},
		Directory: DirectoryConfig{
			APIKey:  os.Getenv("HUNTER_API_KEY"),
			BaseURL: envOr("SURGE_DIRECTORY_URL", "https://api.hunter.io/v2"),
		},
		Crawler: CrawlerConfig{
			FetchTimeout: 15 * time.Second,
			MaxSubpages:  6,
			PageDelay:    300 * time.Millisecond,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
