package util

import (
	"fmt"
	"io"
	"runtime"

	"github.com/ariel-frischer/contracts/internal/build"
	"github.com/ariel-frischer/contracts/internal/cli/shared"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for contracts",
	Example: `  # Show version info
  contracts version

  # Plain output (for scripts)
  contracts version --plain`,
	Args: shared.UsageArgs(cobra.NoArgs),
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			printPlainVersion(cmd.OutOrStdout())
		} else {
			printPrettyVersion(cmd.OutOrStdout())
		}
	},
}

func init() {
	versionCmd.GroupID = shared.GroupConfiguration
	versionCmd.Flags().Bool("plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(out io.Writer) {
	fmt.Fprintf(out, "contracts %s\n", build.Version)
	fmt.Fprintf(out, "commit: %s\n", build.Commit)
	fmt.Fprintf(out, "built: %s\n", build.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s\n", build.Platform())
}

// printPrettyVersion prints a colored version summary
func printPrettyVersion(out io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	version := build.Version
	if build.IsDevBuild() {
		version += dim(" (development build)")
	}

	fmt.Fprintf(out, "%s %s\n", cyan("contracts"), version)
	fmt.Fprintf(out, "  %s %s\n", dim("commit:  "), build.Commit)
	fmt.Fprintf(out, "  %s %s\n", dim("built:   "), build.BuildDate)
	fmt.Fprintf(out, "  %s %s %s\n", dim("go:      "), runtime.Version(), build.Platform())
}
