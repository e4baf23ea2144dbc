package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// StructValidator validates requests using `validate:"..."` struct tags.
//
// Field names in failures come from the `json` tag when present, otherwise the
// Go field name with a lower-case first letter. Nested fields are reported as
// dotted paths. The `notblank` tag is always available. It is safe for
// concurrent use once its rules are registered.
type StructValidator struct {
	validate *validator.Validate
	messages map[string]string
}

// StructValidatorOption configures a StructValidator
type StructValidatorOption func(*structValidatorConfig)

type structValidatorConfig struct {
	fieldTag string
}

// WithFieldTag reads failure field names from the given struct tag instead of `json`
func WithFieldTag(tag string) StructValidatorOption {
	return func(c *structValidatorConfig) {
		c.fieldTag = tag
	}
}

// NewStructValidator creates a tag-driven validator
func NewStructValidator(opts ...StructValidatorOption) *StructValidator {
	cfg := structValidatorConfig{fieldTag: "json"}
	for _, opt := range opts {
		opt(&cfg)
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return fieldName(field, cfg.fieldTag)
	})
	// cannot fail: the tag is valid and not a baked-in alias
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return &StructValidator{
		validate: v,
		messages: make(map[string]string),
	}
}

// RegisterRule registers a custom validation tag
func (v *StructValidator) RegisterRule(tag string, fn validator.Func) error {
	return v.validate.RegisterValidation(tag, fn)
}

// RegisterRuleWithMessage registers a custom validation tag and the message
// reported when it fails
func (v *StructValidator) RegisterRuleWithMessage(tag string, fn validator.Func, message string) error {
	if err := v.RegisterRule(tag, fn); err != nil {
		return err
	}
	v.messages[tag] = message
	return nil
}

// Validate implements Validator
func (v *StructValidator) Validate(ctx context.Context, request Request) ([]ValidationFailure, error) {
	err := v.validate.StructCtx(ctx, request)
	if err == nil {
		return nil, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("struct validation of %T: %w", request, err)
	}

	failures := make([]ValidationFailure, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		message, ok := v.messages[e.Tag()]
		if !ok {
			message = failureMessage(e)
		}
		failures = append(failures, ValidationFailure{
			Field:   fieldPath(e),
			Message: message,
		})
	}
	return failures, nil
}

// fieldPath drops the root struct name from the failure namespace
func fieldPath(e validator.FieldError) string {
	if _, path, ok := strings.Cut(e.Namespace(), "."); ok {
		return path
	}
	return e.Field()
}

// fieldName resolves the name reported for a struct field
func fieldName(field reflect.StructField, tag string) string {
	name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
	switch name {
	case "", "-":
		return strings.ToLower(field.Name[:1]) + field.Name[1:]
	default:
		return name
	}
}

// failureMessage returns a human-readable message for a failed tag
func failureMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		switch e.Kind() {
		case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
			return "must not be empty"
		default:
			return "is required"
		}
	case "email":
		return "must be a valid email address"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", e.Param())
		}
		return fmt.Sprintf("must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "startswith":
		return fmt.Sprintf("must start with %s", e.Param())
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	default:
		return fmt.Sprintf("failed validation: %s", e.Tag())
	}
}
