// Package report renders validation results and contract listings for the
// terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/contracts/internal/matcher"
	"github.com/ariel-frischer/contracts/internal/validation"
	"github.com/fatih/color"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// ResultOptions controls WriteResults.
type ResultOptions struct {
	// Root makes displayed paths relative; empty prints them as given.
	Root string
	// Verbose also lists files without violations.
	Verbose bool
}

// WriteResults prints every result with violations, most severe first.
func WriteResults(w io.Writer, results []*validation.Result, opts ResultOptions) {
	for _, r := range results {
		if len(r.Violations) == 0 {
			if opts.Verbose {
				fmt.Fprintf(w, "%s %s%s\n", green("✓"), displayPath(r.FilePath, opts.Root), contractSuffix(r.Contract))
			}
			continue
		}

		mark := yellow("!")
		if r.HasErrors() {
			mark = red("✗")
		}
		fmt.Fprintf(w, "%s %s%s\n", mark, displayPath(r.FilePath, opts.Root), contractSuffix(r.Contract))

		for _, v := range validation.SortViolations(r.Violations) {
			fmt.Fprintf(w, "  %s %s %s", severityLabel(v.Severity), cyan("["+v.Code+"]"), v.Message)
			if loc := v.Location(); loc != "" {
				fmt.Fprintf(w, " %s", faint("("+loc+")"))
			}
			fmt.Fprintln(w)
		}
	}
}

// WriteSummary prints the run totals and the pass/fail verdict.
func WriteSummary(w io.Writer, s validation.Summary, strict bool) {
	fmt.Fprintf(w, "\nValidated %d %s: %s, %s",
		s.Files, plural(s.Files, "file", "files"),
		countLabel(s.Errors, "error", "errors", red),
		countLabel(s.Warnings, "warning", "warnings", yellow))
	if s.Infos > 0 {
		fmt.Fprintf(w, ", %d info", s.Infos)
	}
	fmt.Fprintln(w)

	switch {
	case s.Failed(strict) && s.Errors == 0:
		fmt.Fprintf(w, "%s Validation failed: warnings are errors in strict mode\n", red("✗"))
	case s.Failed(strict):
		fmt.Fprintf(w, "%s Validation failed\n", red("✗"))
	default:
		fmt.Fprintf(w, "%s Validation passed\n", green("✓"))
	}
}

func severityLabel(s validation.Severity) string {
	label := fmt.Sprintf("%-7s", strings.ToLower(s.String()))
	switch s {
	case validation.SeverityError:
		return red(label)
	case validation.SeverityWarning:
		return yellow(label)
	default:
		return faint(label)
	}
}

func countLabel(n int, one, many string, paint func(...interface{}) string) string {
	label := fmt.Sprintf("%d %s", n, plural(n, one, many))
	if n == 0 {
		return label
	}
	return paint(label)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func contractSuffix(identity string) string {
	if identity == "" {
		return ""
	}
	return " " + faint("("+identity+")")
}

func displayPath(path, root string) string {
	if root == "" {
		return path
	}
	return matcher.RelativePath(path, root)
}
