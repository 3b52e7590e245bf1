package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig marks a rejected weighting, budget or sample count.
var ErrInvalidConfig = errors.New("invalid configuration")

var (
	// validate is a singleton validator instance
	validate *validator.Validate
)

func init() {
	validate = validator.New()
}

// Struct validates v against its `validate` struct tags.
func Struct(v any) error {
	if v == nil {
		return fmt.Errorf("%w: value cannot be nil", ErrInvalidConfig)
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Probability rejects a weighting outside [0, 1].
func Probability(name string, value float64) error {
	if err := validate.Var(value, "gte=0,lte=1"); err != nil {
		return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidConfig, name, value)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%w: %s: field is required", ErrInvalidConfig, field)
		case "min", "gte":
			return fmt.Errorf("%w: %s: must be at least %s", ErrInvalidConfig, field, param)
		case "max", "lte":
			return fmt.Errorf("%w: %s: must not exceed %s", ErrInvalidConfig, field, param)
		case "oneof":
			return fmt.Errorf("%w: %s: must be one of [%s]", ErrInvalidConfig, field, param)
		case "ltefield":
			return fmt.Errorf("%w: %s: must not exceed %s", ErrInvalidConfig, field, param)
		default:
			return fmt.Errorf("%w: %s: validation failed (%s)", ErrInvalidConfig, field, e.Tag())
		}
	}

	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}
