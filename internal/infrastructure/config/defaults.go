package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultConfig returns a configuration with every default applied
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Pipeline.Validation.Enabled = true
	cfg.Pipeline.Transactions = true
	SetDefaults(cfg)
	return cfg
}

// SetDefaults sets default values for all zero-valued configuration fields.
// Boolean switches are left as they are.
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "mediator.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "mediator"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "mediator"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Pipeline defaults
	if cfg.Pipeline.Validation.Position == "" {
		cfg.Pipeline.Validation.Position = ValidationFirst
	}
	if cfg.Pipeline.RateLimit.Requests == 0 {
		cfg.Pipeline.RateLimit.Requests = 100
	}
	if cfg.Pipeline.RateLimit.Burst == 0 {
		cfg.Pipeline.RateLimit.Burst = 20
	}
	if cfg.Pipeline.CircuitBreaker.MaxFailures == 0 {
		cfg.Pipeline.CircuitBreaker.MaxFailures = 5
	}
	if cfg.Pipeline.CircuitBreaker.Timeout == 0 {
		cfg.Pipeline.CircuitBreaker.Timeout = 30 * time.Second
	}
}

// registerDefaults mirrors DefaultConfig into viper
func registerDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("database.type", d.Database.Type)
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", d.Database.Name)
	v.SetDefault("database.sslmode", d.Database.SSLMode)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.pool.max_open", d.Database.Pool.MaxOpen)
	v.SetDefault("database.pool.max_idle", d.Database.Pool.MaxIdle)
	v.SetDefault("database.pool.max_lifetime", d.Database.Pool.MaxLifetime)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.host", d.Metrics.Host)
	v.SetDefault("metrics.port", d.Metrics.Port)
	v.SetDefault("metrics.path", d.Metrics.Path)

	v.SetDefault("pipeline.validation.enabled", d.Pipeline.Validation.Enabled)
	v.SetDefault("pipeline.validation.position", d.Pipeline.Validation.Position)
	v.SetDefault("pipeline.request_timeout", d.Pipeline.RequestTimeout)
	v.SetDefault("pipeline.transactions", d.Pipeline.Transactions)
	v.SetDefault("pipeline.rate_limit.enabled", d.Pipeline.RateLimit.Enabled)
	v.SetDefault("pipeline.rate_limit.requests", d.Pipeline.RateLimit.Requests)
	v.SetDefault("pipeline.rate_limit.burst", d.Pipeline.RateLimit.Burst)
	v.SetDefault("pipeline.circuit_breaker.enabled", d.Pipeline.CircuitBreaker.Enabled)
	v.SetDefault("pipeline.circuit_breaker.max_failures", d.Pipeline.CircuitBreaker.MaxFailures)
	v.SetDefault("pipeline.circuit_breaker.timeout", d.Pipeline.CircuitBreaker.Timeout)
}
