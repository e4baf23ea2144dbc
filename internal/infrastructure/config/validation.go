package config

import (
	"context"

	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

// configValidator reports failures by their mapstructure key path,
// e.g. "pipeline.rate_limit.burst"
var configValidator = mediator.NewStructValidator(mediator.WithFieldTag("mapstructure"))

// ValidateConfig checks every section and reports all invalid keys at once
func ValidateConfig(cfg *Config) error {
	failures, err := configValidator.Validate(context.Background(), cfg)
	if err != nil {
		return err
	}
	if len(failures) > 0 {
		return &mediator.ValidationError{Failures: failures}
	}
	return nil
}
