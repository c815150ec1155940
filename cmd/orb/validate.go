package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orbtools/orb-go/config"
)

// validateCmd validates a config file without contacting the device.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate an orb configuration file without contacting the device.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  orb validate -c orb.yaml
  orb validate --config /etc/orb/orb.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Base URL:    %s\n", cfg.BaseURL)
	fmt.Printf("  Timeout:     %s\n", cfg.Timeout.Duration())
	fmt.Printf("  Retry delay: %s\n", cfg.RetryDelay.Duration())
	if cfg.CallerID != "" {
		fmt.Printf("  Caller ID:   %s\n", cfg.CallerID)
	} else {
		fmt.Printf("  Caller ID:   (generated per process)\n")
	}
	if cfg.Tail.Dataset != "" {
		fmt.Printf("  Tail:        %s every %s\n", cfg.Tail.Dataset, cfg.Tail.Interval.Duration())
	}

	return nil
}
