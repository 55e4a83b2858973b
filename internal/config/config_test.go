package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"CARPOOL_HTTP_ADDR", "CARPOOL_DB_DSN", "CARPOOL_REDIS_ADDR", "CARPOOL_MAPS_API_KEY",
		"CARPOOL_LOG_LEVEL", "CARPOOL_LOG_FORMAT", "CARPOOL_SIDEBAR_LIMIT", "CARPOOL_MAP_LIMIT",
	} {
		t.Setenv(k, "")
	}

	cfg := fromEnv()
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Empty(t, cfg.Maps.APIKey)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 50, cfg.Matching.SidebarLimit)
	assert.Equal(t, 150, cfg.Matching.MapLimit)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CARPOOL_HTTP_ADDR", ":9090")
	t.Setenv("CARPOOL_MAPS_API_KEY", "key")
	t.Setenv("CARPOOL_LOG_FORMAT", "console")
	t.Setenv("CARPOOL_SIDEBAR_LIMIT", "20")
	t.Setenv("CARPOOL_MAP_LIMIT", "not-a-number")

	cfg := fromEnv()
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "key", cfg.Maps.APIKey)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 20, cfg.Matching.SidebarLimit)
	assert.Equal(t, 150, cfg.Matching.MapLimit)
}
