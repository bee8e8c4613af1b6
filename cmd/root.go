// Package cmd contains the CLI commands for the mdc application.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/eykd/mdcombine-go/internal/config"
)

var rootCmd *cobra.Command

// verbose holds the global --verbose flag state.
var verbose bool

// jsonOut holds the global --json flag state.
var jsonOut bool

// noColor holds the global --no-color flag state.
var noColor bool

// dryRun holds the global --dry-run flag state.
var dryRun bool

// settings holds the configuration resolved for the current invocation.
var settings *config.Settings

func init() {
	rootCmd = BuildCommandTree()
}

// GetVerbose returns the current verbose flag state.
// This is used by other packages to check if debug logging is enabled.
func GetVerbose() bool {
	return verbose
}

// GetJSON returns the current JSON output flag state.
func GetJSON() bool {
	return jsonOut
}

// GetNoColor returns the current no-color flag state.
func GetNoColor() bool {
	return noColor || (settings != nil && settings.NoColor)
}

// GetDryRun returns the current dry-run flag state.
func GetDryRun() bool {
	return dryRun
}

// GetSettings returns the settings resolved for the current invocation,
// loading them from the environment when no command has run yet.
func GetSettings() *config.Settings {
	if settings == nil {
		s, err := config.LoadSettings()
		if err != nil {
			s = &config.Settings{LogLevel: config.LogLevelInfo}
		}
		settings = s
	}
	return settings
}

// NewRootCmd creates a new root command instance.
// This is useful for testing to get a fresh command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mdc",
		Short:         "Combine modular Markdown documents into publishable files",
		Long:          "mdc is a CLI tool for combining modular Markdown documents using MarkDownExtension insert directives.",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.LoadSettingsWithFlags(cmd.Flags())
			if err != nil {
				return err
			}
			if verbose {
				s.LogLevel = config.LogLevelDebug
			}
			if err := config.ValidateSettings(s); err != nil {
				return err
			}
			settings = s
			config.SetupLogging(s)
			return nil
		},
	}

	// Add persistent flags (available to all subcommands)
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")
	cmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output results as JSON")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable styled terminal output")
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Plan changes without writing any files")
	cmd.PersistentFlags().StringSlice("exclude", nil, "Glob patterns of documents to skip")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	return cmd
}

// Execute runs the root command and returns any error.
// Deprecated: Use ExecuteContext instead for proper signal handling.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context.
// This enables graceful shutdown via context cancellation (e.g., on SIGINT).
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
