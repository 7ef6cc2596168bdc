package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "https://api.hunter.io/v2", cfg.Directory.BaseURL)
	assert.Equal(t, 6, cfg.Crawler.MaxSubpages)
	assert.Equal(t, 300*time.Millisecond, cfg.Crawler.PageDelay)
	assert.Equal(t, 15*time.Second, cfg.Crawler.FetchTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SURGE_ADDR", ":9090")
	t.Setenv("SURGE_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SURGE_REDIS_POOL_SIZE", "25")
	t.Setenv("HUNTER_API_KEY", "secret")
	t.Setenv("SURGE_DIRECTORY_URL", "http://stub.local/v2")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 25, cfg.Redis.PoolSize)
	assert.Equal(t, "secret", cfg.Directory.APIKey)
	assert.Equal(t, "http://stub.local/v2", cfg.Directory.BaseURL)
}

func TestEnvIntFallbackOnGarbage(t *testing.T) {
	t.Setenv("SURGE_REDIS_POOL_SIZE", "not-a-number")
	cfg := FromEnv()
	assert.Equal(t, 10, cfg.Redis.PoolSize)
}
