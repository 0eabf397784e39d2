package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// ProgressDisplay orchestrates the display of progress indicators
type ProgressDisplay struct {
	capabilities TerminalCapabilities
	currentStage *StageInfo
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
	out          io.Writer
}

// NewProgressDisplay creates a new progress display with the given terminal capabilities
func NewProgressDisplay(caps TerminalCapabilities) *ProgressDisplay {
	return NewProgressDisplayTo(caps, os.Stdout)
}

// NewProgressDisplayTo is like NewProgressDisplay but writes status lines to w.
func NewProgressDisplayTo(caps TerminalCapabilities, w io.Writer) *ProgressDisplay {
	return &ProgressDisplay{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          w,
	}
}

// StartStage begins displaying progress for a stage
func (p *ProgressDisplay) StartStage(stage StageInfo) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	p.StopSpinner()
	stage.Status = StageInProgress
	p.currentStage = &stage

	msg := buildStageMessage(stage, "Running "+stage.Name)

	if p.capabilities.IsTTY {
		// TTY mode: Start spinner animation
		p.spinner = spinner.New(
			spinner.CharSets[p.symbols.SpinnerSet],
			100*time.Millisecond,
		)
		p.spinner.Writer = os.Stderr // keep stdout clean for the report
		p.spinner.Suffix = " " + msg
		p.spinner.Start()
	} else {
		// Non-interactive mode: Just print the message
		fmt.Fprintln(p.out, msg)
	}

	return nil
}

// CompleteStage stops the spinner and displays completion status
func (p *ProgressDisplay) CompleteStage(stage StageInfo) error {
	p.StopSpinner()

	mark := checkmark(p.symbols, p.capabilities.SupportsColor)
	fmt.Fprintf(p.out, "%s %s\n", mark, buildStageMessage(stage, capitalize(stage.Name)+" complete"))

	p.currentStage = nil
	return nil
}

// FailStage stops the spinner and displays failure status
func (p *ProgressDisplay) FailStage(stage StageInfo, err error) error {
	p.StopSpinner()

	mark := failureMark(p.symbols, p.capabilities.SupportsColor)
	counter := formatStageCounter(stage.Number, stage.TotalStages)
	fmt.Fprintf(p.out, "%s %s %s failed: %v\n", mark, counter, capitalize(stage.Name), err)

	p.currentStage = nil
	return nil
}

// Current returns the stage being displayed, or nil.
func (p *ProgressDisplay) Current() *StageInfo {
	return p.currentStage
}

// StopSpinner stops the spinner without showing completion/failure
// This is useful when you want to pause progress display during interactive output
func (p *ProgressDisplay) StopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}
