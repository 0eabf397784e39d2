package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Severity ranks a violation. Higher values are more severe.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the display name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalText renders the severity in lower case for YAML/JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

// Violation codes.
const (
	CodeInvalidPattern           = "invalid-pattern"
	CodeInvalidName              = "invalid-name"
	CodeInvalidArchiveName       = "invalid-archive-name"
	CodeArchiveDirectoryMismatch = "archive-directory-mismatch"
	CodeMissingSection           = "missing-section"
	CodeMissingField             = "missing-field"
	CodeContractNotFound         = "contract-not-found"
	CodeFileUnreadable           = "file-unreadable"
)

// Violation is a single rule failure. Violations are values: validators
// create them and nothing mutates them afterwards.
type Violation struct {
	Code     string
	Message  string
	Severity Severity
	FilePath string
	Line     int    // 1-based; 0 when the violation has no line
	Section  string // section name the violation is scoped to, if any
}

// Location describes where the violation points, e.g. "line 4, Summary".
func (v Violation) Location() string {
	var parts []string
	if v.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", v.Line))
	}
	if v.Section != "" {
		parts = append(parts, v.Section)
	}
	return strings.Join(parts, ", ")
}

// String implements fmt.Stringer.
func (v Violation) String() string {
	if loc := v.Location(); loc != "" {
		return fmt.Sprintf("%s [%s] %s (%s)", v.Severity, v.Code, v.Message, loc)
	}
	return fmt.Sprintf("%s [%s] %s", v.Severity, v.Code, v.Message)
}

// Result is the aggregated outcome of validating one file.
type Result struct {
	FilePath string
	// Contract is the identity of the contract that was applied, empty
	// when none matched.
	Contract   string
	Violations []Violation
}

// Count returns the number of violations with the given severity.
func (r *Result) Count(severity Severity) int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity == severity {
			n++
		}
	}
	return n
}

// HasErrors reports whether any violation is an error.
func (r *Result) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// HasWarnings reports whether any violation is a warning.
func (r *Result) HasWarnings() bool {
	return r.Count(SeverityWarning) > 0
}

// OK reports whether the file produced no error-level violations.
func (r *Result) OK() bool {
	return !r.HasErrors()
}

// SortViolations returns a copy of vs ordered by severity (most severe
// first) and then by code. The input is left untouched.
func SortViolations(vs []Violation) []Violation {
	sorted := make([]Violation, len(vs))
	copy(sorted, vs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Severity != sorted[j].Severity {
			return sorted[i].Severity > sorted[j].Severity
		}
		return strings.ToLower(sorted[i].Code) < strings.ToLower(sorted[j].Code)
	})
	return sorted
}
