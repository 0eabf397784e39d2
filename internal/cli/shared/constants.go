// Package shared provides constants and types used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output
const (
	GroupValidation    = "validation"
	GroupConfiguration = "configuration"
)

// Exit codes for CLI commands
const (
	ExitSuccess          = 0
	ExitValidationFailed = 1
	ExitInvalidArguments = 2
)

// exitError is a custom error type that carries an exit code and, for
// errors not yet shown to the user, the cause to print.
type exitError struct {
	code  int
	cause error
}

func (e *exitError) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.cause
}

// NewExitError creates a new exit error with the given code. The caller
// has already reported the problem.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// NewUsageError wraps err so it is printed and exits with ExitInvalidArguments.
func NewUsageError(err error) error {
	return &exitError{code: ExitInvalidArguments, cause: err}
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return ExitValidationFailed
}

// Reported reports whether err was already shown to the user.
func Reported(err error) bool {
	var e *exitError
	return errors.As(err, &e) && e.cause == nil
}

// UsageArgs wraps a positional argument validator so its failures exit
// with ExitInvalidArguments.
func UsageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return NewUsageError(err)
		}
		return nil
	}
}
