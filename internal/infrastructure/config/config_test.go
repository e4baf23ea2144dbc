package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Arrange
	t.Chdir(t.TempDir())

	// Act
	cfg, err := LoadConfig("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "mediator.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.Pipeline.Validation.Enabled)
	assert.Equal(t, ValidationFirst, cfg.Pipeline.Validation.Position)
	assert.True(t, cfg.Pipeline.Transactions)
	assert.Equal(t, 5, cfg.Pipeline.CircuitBreaker.MaxFailures)
	assert.Equal(t, 30*time.Second, cfg.Pipeline.CircuitBreaker.Timeout)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MEDIATOR_DATABASE_PATH", ":memory:")
	t.Setenv("MEDIATOR_LOGGING_LEVEL", "debug")
	t.Setenv("MEDIATOR_PIPELINE_VALIDATION_ENABLED", "false")
	t.Setenv("MEDIATOR_PIPELINE_VALIDATION_POSITION", "last")
	t.Setenv("MEDIATOR_PIPELINE_REQUEST_TIMEOUT", "250ms")
	t.Setenv("MEDIATOR_PIPELINE_RATE_LIMIT_ENABLED", "true")
	t.Setenv("MEDIATOR_PIPELINE_RATE_LIMIT_BURST", "3")

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Pipeline.Validation.Enabled)
	assert.Equal(t, ValidationLast, cfg.Pipeline.Validation.Position)
	assert.Equal(t, 250*time.Millisecond, cfg.Pipeline.RequestTimeout)
	assert.True(t, cfg.Pipeline.RateLimit.Enabled)
	assert.Equal(t, 3, cfg.Pipeline.RateLimit.Burst)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  type: postgres
  url: postgresql://mediator:secret@db:5432/mediator
metrics:
  enabled: true
  port: 9100
pipeline:
  circuit_breaker:
    enabled: true
    max_failures: 2
    timeout: 1m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "postgresql://mediator:secret@db:5432/mediator", cfg.Database.URL)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9100, cfg.Metrics.Port)
	assert.True(t, cfg.Pipeline.CircuitBreaker.Enabled)
	assert.Equal(t, 2, cfg.Pipeline.CircuitBreaker.MaxFailures)
	assert.Equal(t, time.Minute, cfg.Pipeline.CircuitBreaker.Timeout)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MEDIATOR_LOGGING_FORMAT", "xml")

	_, err := LoadConfig("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "logging.format: must be one of: json text")
}

func TestValidateConfig_ReportsEveryInvalidKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pipeline.RateLimit.Burst = 0
	cfg.Pipeline.Validation.Position = "middle"
	cfg.Metrics.Path = "metrics"

	err := ValidateConfig(cfg)

	failures, ok := mediator.ValidationFailures(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.ElementsMatch(t, []mediator.ValidationFailure{
		{Field: "metrics.path", Message: "must start with /"},
		{Field: "pipeline.validation.position", Message: "must be one of: first last"},
		{Field: "pipeline.rate_limit.burst", Message: "must be at least 1"},
	}, failures)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, ValidateConfig(DefaultConfig()))
}

func TestLoadConfigOrDefault_FallsBack(t *testing.T) {
	cfg := LoadConfigOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Equal(t, DefaultConfig(), cfg)
}
