package config

import "time"

// Validation positions
const (
	ValidationFirst = "first"
	ValidationLast  = "last"
)

// PipelineConfig selects and tunes the behaviors wrapped around every handler
type PipelineConfig struct {
	Validation ValidationConfig `mapstructure:"validation"`

	// RequestTimeout bounds each dispatch; zero disables the bound
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"min=0"`

	// Transactions runs every dispatch in a database transaction
	Transactions bool `mapstructure:"transactions"`

	RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// ValidationConfig controls the validation behavior
type ValidationConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Position: "first" runs validation before every other behavior,
	// "last" runs it just before the handler
	Position string `mapstructure:"position" validate:"required,oneof=first last"`
}

// RateLimitConfig holds the dispatch token bucket settings
type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Requests per second
	Requests float64 `mapstructure:"requests" validate:"gt=0"`
	Burst    int     `mapstructure:"burst" validate:"min=1"`
}

// CircuitBreakerConfig holds circuit breaker settings
type CircuitBreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures int           `mapstructure:"max_failures" validate:"min=1"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"min=0"`
}
