package cmd

import (
	"context"
	"fmt"

	"radarr-sync/core/config"
	"radarr-sync/core/logger"
	"radarr-sync/core/metrics"
	"radarr-sync/core/radarr"
	"radarr-sync/core/reconcile"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runSync(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(".", cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return Sync(cmd.Context(), cfg)
}

// Sync performs one complete run: every target of the configured registry is
// synced from the source. It returns an error when the run could not start,
// the source could not be read, or at least one target failed.
func Sync(ctx context.Context, cfg *config.Config) error {
	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	l = logger.WithRunID(l, uuid.NewString())

	// Load instances
	registry, err := cfg.Instances.Load()
	if err != nil {
		return fmt.Errorf("failed to load instances: %w", err)
	}

	l.Info("Starting sync",
		zap.String("source", registry.Source.Name),
		zap.Strings("targets", registry.TargetNames()),
		zap.Bool("dry_run", cfg.Sync.DryRun),
		zap.Int("parallel", cfg.Sync.Parallel),
	)

	recorder := metrics.NewRecorder()
	engine := reconcile.NewEngine(radarr.NewClient(cfg.HTTP), l, recorder, cfg.Sync)

	report, err := engine.Run(ctx, registry.Source, registry.Targets)
	if err != nil {
		l.Error("Sync aborted", zap.Error(err))
		writeMetrics(l, recorder, cfg.Metrics)
		return fmt.Errorf("sync aborted: %w", err)
	}

	printSyncReport(l, report)
	writeMetrics(l, recorder, cfg.Metrics)

	return report.Err()
}

// printSyncReport prints a formatted sync report using logger.
func printSyncReport(l *zap.Logger, report *reconcile.Report) {
	for _, res := range report.Results {
		fields := []zap.Field{
			zap.String("target", res.Target),
			zap.Int("created", res.Created),
			zap.Duration("duration", res.Duration),
		}
		if res.Plan != nil {
			s := res.Plan.Summary
			fields = append(fields,
				zap.Int("planned_creates", s.Creates),
				zap.Int("already_present", s.AlreadyPresent),
				zap.Int("profile_mismatches", s.ProfileMismatches),
			)
		}
		if res.Err != nil {
			l.Error("Target failed", append(fields, zap.Error(res.Err))...)
			continue
		}
		l.Info("Target result", fields...)
	}

	l.Info("Sync report",
		zap.String("source", report.Source),
		zap.Int("source_movies", report.SourceEntries),
		zap.Int("targets", len(report.Results)),
		zap.Int("failed_targets", len(report.Failed())),
		zap.Int("created", report.TotalCreated()),
		zap.Bool("dry_run", report.DryRun),
	)
}

// writeMetrics exports the run metrics when a textfile is configured.
// A failed export is logged but does not fail the run.
func writeMetrics(l *zap.Logger, recorder *metrics.Recorder, cfg metrics.Config) {
	if cfg.Textfile == "" {
		return
	}
	if err := recorder.WriteTextfile(cfg.Textfile); err != nil {
		l.Warn("Failed to write metrics", zap.Error(err))
		return
	}
	l.Debug("Metrics written", zap.String("file", cfg.Textfile))
}
