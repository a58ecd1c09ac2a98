package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[development]
port = 9000
postgres_host = "localhost"
redis_host = "localhost"
settings_cache_ttl = "30s"

[production]
host = "0.0.0.0"
port = 8080
allowed_origins = ["https://gymstreak.app"]
log_level = "info"
postgres_host = "db.internal"
postgres_port = "6432"
postgres_db_name = "streaks"
redis_host = "cache.internal"
stats_rate_limit_per_min = 30
tracing_enabled = true

[dockerdev]
port = 0
postgres_host = "postgres"
redis_host = "redis"
`

func TestParse_Development(t *testing.T) {
	cfg, err := Parse("dev", testConfig)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "5432", cfg.PostgresPort)
	assert.Equal(t, "gymstreak", cfg.PostgresDBName)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, 60, cfg.StatsRateLimitPerMin)
	assert.Equal(t, 10, cfg.SettingsCacheSizeMB)
	assert.Equal(t, 30*time.Second, cfg.SettingsCacheTTL)
	assert.False(t, cfg.TracingEnabled)
}

func TestParse_Production(t *testing.T) {
	cfg, err := Parse("production", testConfig)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"https://gymstreak.app"}, cfg.AllowedOrigins)
	assert.Equal(t, "db.internal", cfg.PostgresHost)
	assert.Equal(t, "6432", cfg.PostgresPort)
	assert.Equal(t, "streaks", cfg.PostgresDBName)
	assert.Equal(t, 30, cfg.StatsRateLimitPerMin)
	assert.Equal(t, 5*time.Minute, cfg.SettingsCacheTTL)
	assert.True(t, cfg.TracingEnabled)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("staging", testConfig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown env")

	_, err = Parse("ddev", testConfig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")

	_, err = Parse("dev", `[production]
port = 1`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")

	_, err = Parse("dev", `[development`)
	require.Error(t, err)
}

func TestLoad_RepoConfig(t *testing.T) {
	for _, env := range []string{"development", "dockerdev", "production"} {
		cfg, err := Load(env, "../../config.toml")
		require.NoError(t, err, env)
		assert.Equal(t, env, cfg.Environment)
		assert.NotZero(t, cfg.Port)
	}

	_, err := Load("dev", "does-not-exist.toml")
	require.Error(t, err)
}
