package cli

import (
	"github.com/ariel-frischer/contracts/internal/cli/shared"
)

// Exit codes for the contracts CLI (re-exported from shared)
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates success, including runs with only warnings
	ExitSuccess = shared.ExitSuccess

	// ExitValidationFailed indicates errors, or warnings in strict mode
	ExitValidationFailed = shared.ExitValidationFailed

	// ExitInvalidArguments indicates a usage error
	ExitInvalidArguments = shared.ExitInvalidArguments
)

// NewExitError creates a new exit error with the given code (re-exported from shared).
func NewExitError(code int) error {
	return shared.NewExitError(code)
}

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
