package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"radarr-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "radarr-sync",
	Short: "Copy movies between Radarr instances",
	Long: `radarr-sync copies movies from a source Radarr instance to one or more
target instances.

Every movie of the source carrying a target's source_profile is added to that
target with the target_profile quality profile and its path prefix rewritten
from path_from to path_to. Movies a target already has are skipped, so running
the sync again only adds what is new.

Examples:
  # Sync using the [Radarr] section as source
  radarr-sync --config_file radarr.ini --source_section Radarr

  # Show what would be added without changing anything
  radarr-sync --config_file radarr.ini --source_section Radarr --dry_run -v`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSync,
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := RootCmd.Flags()
	flags.String("config_file", "", "INI file describing the Radarr instances (required)")
	flags.String("source_section", "", "Section of the INI file holding the source instance (required)")
	flags.String("log_file", "", "Write logs to this file instead of standard output")
	flags.BoolP("verbose", "v", false, "Log every decision at debug level")
	flags.String("log_format", "console", "Log encoding: console or json")
	flags.Bool("dry_run", false, "Plan and log the sync without adding any movie")
	flags.Int("parallel", 1, "Number of targets synced at the same time")
	flags.Int("timeout", 30, "HTTP request timeout in seconds")
	flags.String("metrics_file", "", "Write Prometheus metrics to this file at the end of the run")
}
