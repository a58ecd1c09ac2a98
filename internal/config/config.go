package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"-"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// allowed CORS origins for browser clients
	AllowedOrigins []string `toml:"allowed_origins"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// prometheus metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// stats
	StatsRateLimitPerMin int           `toml:"stats_rate_limit_per_min"`
	SettingsCacheSizeMB  int           `toml:"settings_cache_size_mb"`
	SettingsCacheTTL     time.Duration `toml:"settings_cache_ttl"`

	TracingEnabled bool `toml:"tracing_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
	DockerDev   *Config `toml:"dockerdev"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg, env = t.Development, "development"
	case "prod", "production":
		cfg, env = t.Production, "production"
	case "ddev", "dockerdev":
		cfg, env = t.DockerDev, "dockerdev"
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}
	cfg.Environment = env
	return cfg, nil
}

// Load reads the TOML config file and returns the section for env, with defaults filled in.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for in-memory config data.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", cfg.Environment, err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresDBName == "" {
		c.PostgresDBName = "gymstreak"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.StatsRateLimitPerMin == 0 {
		c.StatsRateLimitPerMin = 60
	}
	if c.SettingsCacheSizeMB == 0 {
		c.SettingsCacheSizeMB = 10
	}
	if c.SettingsCacheTTL == 0 {
		c.SettingsCacheTTL = 5 * time.Minute
	}
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.PostgresHost == "" {
		return fmt.Errorf("postgres host not set")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("redis host not set")
	}
	if c.StatsRateLimitPerMin < 0 {
		return fmt.Errorf("invalid stats rate limit: %d", c.StatsRateLimitPerMin)
	}
	return nil
}
