package errors

import (
	"fmt"
	"strings"
)

// ConfigParseError reports a configuration that failed to load.
func ConfigParseError(path string, err error) *CLIError {
	source := path
	if source == "" {
		source = "configuration"
	}
	cliErr := NewConfigError(fmt.Sprintf("failed to load %s: %v", source, err),
		"Check the JSON syntax of ~/.contracts/config.json and .contracts/config.json",
		"Unset CONTRACTS_* environment variables with invalid values",
		"Run 'contracts doctor' to check the configuration",
	)
	cliErr.Err = err
	return cliErr
}

// PathNotFound reports a --path that does not exist.
func PathNotFound(path string) *CLIError {
	return NewArgumentErrorWithUsage(fmt.Sprintf("path does not exist: %s", path),
		"contracts validate --path <file-or-directory>",
		"Pass an existing file or directory inside the workspace",
	)
}

// PathOutsideWorkspace reports a --path that escapes the workspace root.
func PathOutsideWorkspace(path, root string) *CLIError {
	return NewArgumentError(fmt.Sprintf("path %s is outside the workspace %s", path, root),
		"Run the command from a directory that contains the path",
	)
}

// NoContractsFound reports that discovery produced no contracts.
func NoContractsFound(roots []string, suffix string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("no contracts (*%s) found under %s", suffix, strings.Join(roots, ", ")),
		fmt.Sprintf("Add a contract definition file ending in %s", suffix),
		"Set contract_roots in .contracts/config.json or pass --roots",
	)
}

// UnknownContract reports a --contract filter that matched nothing.
func UnknownContract(name string, available []string) *CLIError {
	remediation := []string{"Run 'contracts list' to see available contracts"}
	if len(available) > 0 {
		remediation = append(remediation, "Available: "+strings.Join(available, ", "))
	}
	return NewArgumentErrorWithUsage(fmt.Sprintf("contract not found: %s", name),
		"contracts validate --contract <name>", remediation...)
}

// RunFailed reports a validate or list step that failed while running,
// such as a walk or watcher error.
func RunFailed(step string, err error) *CLIError {
	return WrapWithMessage(err, Runtime, step,
		"Check that the files and directories involved are readable",
		"Re-run with --debug for details",
	)
}
