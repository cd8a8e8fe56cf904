package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg := Load()

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, 120, cfg.RateLimitPerMin)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.Debug())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("RATE_LIMIT_PER_MIN", "30")
	t.Setenv("ACCESS_TTL", "1h")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("CORS_ORIGINS", "https://erp.example.edu, https://admin.example.edu")

	cfg := Load()

	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, []string{"https://erp.example.edu", "https://admin.example.edu"}, cfg.CORSOrigins)
	assert.False(t, cfg.Debug())
}
