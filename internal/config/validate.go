package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	source := e.FilePath
	if source == "" {
		source = "config"
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", source, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", source, e.Message)
}

var validate = newValidator()

// newValidator reports fields by their koanf key so messages match what
// users write in config files.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateConfigValues validates configuration values against expected types and constraints.
// Returns nil if valid, or a ValidationError with field information if invalid.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	fe := verrs[0]
	return &ValidationError{
		FilePath: filePath,
		Field:    fieldPath(fe.Namespace()),
		Message:  describe(fe),
	}
}

// fieldPath strips the struct name from a validator namespace,
// "Configuration.contract_roots[1]" -> "contract_roots[1]".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "startswith":
		return fmt.Sprintf("must start with '%s'", fe.Param())
	default:
		return fmt.Sprintf("failed '%s' check", fe.Tag())
	}
}
