package progress

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// formatStageCounter returns the [N/Total] stage counter string
func formatStageCounter(number, total int) string {
	return fmt.Sprintf("[%d/%d]", number, total)
}

// buildStageMessage constructs the stage message with optional detail,
// e.g. "[1/2] Discover complete (3 contracts)"
func buildStageMessage(stage StageInfo, action string) string {
	counter := formatStageCounter(stage.Number, stage.TotalStages)
	msg := fmt.Sprintf("%s %s", counter, action)
	if stage.Detail != "" {
		msg += fmt.Sprintf(" (%s)", stage.Detail)
	}
	return msg
}

// capitalize returns the string with the first letter capitalized
func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	if supportsColor {
		return colorize(color.FgGreen, symbols.Checkmark)
	}
	return symbols.Checkmark
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	if supportsColor {
		return colorize(color.FgRed, symbols.Failure)
	}
	return symbols.Failure
}

// colorize forces color output; callers have already checked the terminal.
func colorize(attr color.Attribute, s string) string {
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}
