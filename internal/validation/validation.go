// Package validation evaluates documents against contracts. Each rule
// family is a Validator; the Service composes them, selects the contract
// that applies to a file, and aggregates violations into a Result.
// Validators report problems as Violation values and never return errors
// for data-shaped problems, including contract patterns that fail to
// compile.
package validation

import (
	"fmt"
	"time"

	"github.com/ariel-frischer/contracts/internal/contract"
	"github.com/ariel-frischer/contracts/internal/document"
	"github.com/ariel-frischer/contracts/internal/pattern"
)

// Validator evaluates one family of contract rules against a document.
type Validator interface {
	// Name identifies the rule family, e.g. "naming".
	Name() string
	// Validate returns the violations doc has under c.
	Validate(doc *document.Document, c *contract.Contract) []Violation
}

// compileRule compiles a contract pattern. On failure it returns an
// invalid-pattern violation instead of an error.
func compileRule(expr, rule, filePath, section string, timeout time.Duration) (*pattern.Regexp, *Violation) {
	re, err := pattern.Compile(expr, timeout)
	if err == nil {
		return re, nil
	}
	return nil, &Violation{
		Code:     CodeInvalidPattern,
		Message:  fmt.Sprintf("Invalid regex pattern '%s' for %s.", expr, rule),
		Severity: SeverityError,
		FilePath: filePath,
		Section:  section,
	}
}

// matchRule runs re against s. A match timeout is reported as an
// invalid-pattern violation scoped to the rule.
func matchRule(re *pattern.Regexp, s, rule, filePath, section string) (bool, *Violation) {
	ok, err := re.MatchString(s)
	if err == nil {
		return ok, nil
	}
	return false, &Violation{
		Code:     CodeInvalidPattern,
		Message:  fmt.Sprintf("Regex pattern '%s' for %s could not be evaluated: %v.", re, rule, err),
		Severity: SeverityError,
		FilePath: filePath,
		Section:  section,
	}
}
