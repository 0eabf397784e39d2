package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgRed, color.Bold)
	usageColor   = color.New(color.FgCyan)
	stepColor    = color.New(color.FgYellow)
)

// FormatError renders err for a terminal. Colors follow fatih/color's
// NoColor detection.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", headingColor.Sprint(err.Category.String()), err.Message)

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\nUsage: %s\n", usageColor.Sprint(err.Usage))
	}

	if len(err.Remediation) > 0 {
		sb.WriteString("\nTo fix this:\n")
		for i, r := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", stepColor.Sprintf("%d.", i+1), r)
		}
	}

	return sb.String()
}

// FprintError writes err to w. Nothing is written for a nil error.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}
