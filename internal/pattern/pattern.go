// Package pattern compiles the author-supplied regular expressions found in
// contracts. Contract authors write patterns for a backtracking engine
// (lookarounds, backreferences), so matching uses regexp2 rather than RE2.
// Every match runs under a timeout so a pathological pattern fails one rule
// instead of hanging a validation run.
package pattern

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultTimeout bounds a single match attempt.
const DefaultTimeout = time.Second

// ErrEmptyPattern is returned when compiling an empty expression.
var ErrEmptyPattern = errors.New("pattern is empty")

// Regexp is a compiled contract pattern.
type Regexp struct {
	expr string
	re   *regexp2.Regexp
}

// Compile compiles expr. A timeout <= 0 uses DefaultTimeout.
func Compile(expr string, timeout time.Duration) (*Regexp, error) {
	if expr == "" {
		return nil, ErrEmptyPattern
	}
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", expr, err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	re.MatchTimeout = timeout
	return &Regexp{expr: expr, re: re}, nil
}

// String returns the source expression.
func (r *Regexp) String() string {
	return r.expr
}

// MatchString reports whether s contains a match. The error is non-nil
// only when the match timed out.
func (r *Regexp) MatchString(s string) (bool, error) {
	ok, err := r.re.MatchString(s)
	if err != nil {
		return false, fmt.Errorf("matching %q: %w", r.expr, err)
	}
	return ok, nil
}
