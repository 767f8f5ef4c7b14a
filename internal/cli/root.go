// Package cli wires the cobra command surface for the conduit console.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info, set from main via ldflags.
var (
	versionStr = "dev"
	commitStr  = "none"
	dateStr    = "unknown"
)

// configFlag is the persistent --config path; empty uses the default
// location.
var configFlag string

// SetVersionInfo records build metadata for the version command.
func SetVersionInfo(version, commit, date string) {
	versionStr = version
	commitStr = commit
	dateStr = date
}

var rootCmd = &cobra.Command{
	Use:   "conduit",
	Short: "Operator console for conduit proxy-relay instances",
	Long: `conduit supervises proxy-relay instances running under systemd (native)
and under docker (containers).

The dashboard command opens a live telemetry view that keeps refreshing
per-instance metrics for both populations while staying responsive to
operator input.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI, printing structured errors to stderr.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
