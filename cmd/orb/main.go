// Package main is the entry point for the orb CLI.
//
// The SDK can be used as a library or driven from this standalone
// binary with a YAML configuration file.
//
// Usage:
//
//	orb fetch scores_1m -c config.yaml  # Fetch one dataset and exit
//	orb tail -c config.yaml             # Poll a dataset continuously
//	orb validate -c config.yaml         # Validate configuration
//	orb version                         # Show version info
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	orb "github.com/orbtools/orb-go"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "orb",
	Short: "Poll telemetry datasets from a local Orb device",
	Long: `orb polls the local analytics API of an Orb network-monitoring
device and prints dataset records as newline-delimited JSON.

The device tracks delivery progress per caller id, so repeated polls
with the same caller id yield only records not yet delivered.

Quick start:
  1. Create a config file (orb.yaml)
  2. Run: orb fetch scores_1m -c orb.yaml

Example config:
  base_url: http://localhost:7080
  caller_id: my-collector
  tail:
    dataset: responsiveness_1s
    interval: 10s`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this orb binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("orb %s (sdk %s)\n", version, orb.Version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
