// Package progress_test tests progress display rendering, stage counters, checkmarks, and spinner lifecycle.
// Related: internal/progress/display.go
// Tags: progress, display, rendering, stages, spinner, tty
package progress_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ariel-frischer/contracts/internal/progress"
)

var plainCaps = progress.TerminalCapabilities{
	IsTTY:           false,
	SupportsUnicode: false,
	SupportsColor:   false,
}

// TestProgressDisplay_StartStage tests stage counter rendering
func TestProgressDisplay_StartStage(t *testing.T) {
	tests := map[string]struct {
		stage        progress.StageInfo
		wantContains []string
		wantErr      bool
	}{
		"discover stage": {
			stage:        progress.StageInfo{Name: "discover", Number: 1, TotalStages: 2},
			wantContains: []string{"[1/2]", "Running discover"},
		},
		"validate stage with detail": {
			stage:        progress.StageInfo{Name: "validate", Number: 2, TotalStages: 2, Detail: "7 files"},
			wantContains: []string{"[2/2]", "Running validate", "(7 files)"},
		},
		"invalid stage": {
			stage:   progress.StageInfo{Name: "", Number: 1, TotalStages: 2},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			display := progress.NewProgressDisplayTo(plainCaps, &buf)

			err := display.StartStage(tt.stage)
			if (err != nil) != tt.wantErr {
				t.Fatalf("StartStage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if display.Current() != nil {
					t.Error("invalid stage must not become current")
				}
				return
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("StartStage() output = %q, want containing %q", buf.String(), want)
				}
			}
			if cur := display.Current(); cur == nil || cur.Status != progress.StageInProgress {
				t.Errorf("Current() = %+v, want in-progress stage", cur)
			}
		})
	}
}

// TestProgressDisplay_CompleteStage tests completion rendering with symbols
func TestProgressDisplay_CompleteStage(t *testing.T) {
	tests := map[string]struct {
		capabilities progress.TerminalCapabilities
		wantContains []string
	}{
		"ASCII": {
			capabilities: plainCaps,
			wantContains: []string{"[OK]", "[1/2]", "Discover complete", "(3 contracts)"},
		},
		"Unicode without color": {
			capabilities: progress.TerminalCapabilities{SupportsUnicode: true},
			wantContains: []string{"✓", "Discover complete"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			display := progress.NewProgressDisplayTo(tt.capabilities, &buf)
			stage := progress.StageInfo{Name: "discover", Number: 1, TotalStages: 2, Detail: "3 contracts"}

			if err := display.StartStage(stage); err != nil {
				t.Fatal(err)
			}
			if err := display.CompleteStage(stage); err != nil {
				t.Fatal(err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("CompleteStage() output = %q, want containing %q", buf.String(), want)
				}
			}
			if display.Current() != nil {
				t.Error("Current() should be nil after completion")
			}
		})
	}
}

// TestProgressDisplay_FailStage tests failure rendering
func TestProgressDisplay_FailStage(t *testing.T) {
	var buf bytes.Buffer
	display := progress.NewProgressDisplayTo(plainCaps, &buf)
	stage := progress.StageInfo{Name: "validate", Number: 2, TotalStages: 2}

	if err := display.FailStage(stage, errors.New("context canceled")); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"[FAIL]", "[2/2]", "Validate failed", "context canceled"} {
		if !strings.Contains(out, want) {
			t.Errorf("FailStage() output = %q, want containing %q", out, want)
		}
	}
}

// TestProgressDisplay_StopSpinnerIdempotent tests stopping with no spinner
func TestProgressDisplay_StopSpinnerIdempotent(t *testing.T) {
	display := progress.NewProgressDisplayTo(plainCaps, &bytes.Buffer{})
	display.StopSpinner()
	display.StopSpinner()
}
