package reconcile

import (
	"context"
	"fmt"
	"time"

	"radarr-sync/core/instance"
	"radarr-sync/core/logger"
	"radarr-sync/core/metrics"
	"radarr-sync/core/radarr"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine copies movies from a source instance to target instances.
type Engine struct {
	client   radarr.Client
	logger   *zap.Logger
	recorder *metrics.Recorder
	cfg      Config
}

// NewEngine creates a new engine. A nil logger or recorder is replaced by a
// no-op logger or a fresh recorder.
func NewEngine(client radarr.Client, l *zap.Logger, recorder *metrics.Recorder, cfg Config) *Engine {
	if l == nil {
		l = zap.NewNop()
	}
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	if cfg.Parallel < 1 {
		cfg.Parallel = 1
	}

	return &Engine{
		client:   client,
		logger:   l,
		recorder: recorder,
		cfg:      cfg,
	}
}

// Run fetches the source catalog once and syncs it to every target.
//
// A failure to fetch the source aborts the run before any target is touched.
// A failure on a target aborts that target only: it is logged and recorded in
// the report, and the remaining targets are still synced. Use Report.Err to
// find out whether every target succeeded.
func (e *Engine) Run(ctx context.Context, source instance.Endpoint, targets []instance.Target) (*Report, error) {
	sl := logger.ForInstance(e.logger, source.Name, source.URL)
	sl.Info("Fetching source catalog")

	sourceMovies, err := e.client.FetchCatalog(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source catalog of %s: %w", source.Name, err)
	}
	sl.Info("Fetched source catalog", zap.Int("movies", len(sourceMovies)))

	report := &Report{
		Source:        source.Name,
		SourceEntries: len(sourceMovies),
		DryRun:        e.cfg.DryRun,
		Results:       make([]TargetResult, len(targets)),
	}

	// Targets are independent; each goroutine only writes its own slot
	var g errgroup.Group
	g.SetLimit(e.cfg.Parallel)

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			report.Results[i] = e.runTarget(ctx, sourceMovies, target)
			return nil
		})
	}
	_ = g.Wait()

	e.recorder.MarkRunFinished(time.Now())

	return report, nil
}

// SyncOneTarget syncs the source catalog snapshot to a single target and
// returns the number of movies created. The first error aborts the target.
func (e *Engine) SyncOneTarget(ctx context.Context, source []radarr.Movie, target instance.Target) (int, error) {
	_, created, err := e.syncTarget(ctx, source, target)
	return created, err
}

// runTarget syncs one target and turns the outcome into a TargetResult.
func (e *Engine) runTarget(ctx context.Context, source []radarr.Movie, target instance.Target) TargetResult {
	l := e.targetLogger(target)
	start := time.Now()

	var (
		plan    *Plan
		created int
		err     error
	)

	if err = ctx.Err(); err == nil {
		l.Debug("Syncing movies to target")
		plan, created, err = e.syncTarget(ctx, source, target)
	}

	duration := time.Since(start)
	e.recorder.ObserveTarget(target.Name, duration, err)

	if err != nil {
		l.Error("Target sync aborted", zap.Error(err), zap.Int("created", created))
	} else {
		l.Info("Target synced",
			zap.Int("created", created),
			zap.Int("planned_creates", plan.Summary.Creates),
			zap.Int("already_present", plan.Summary.AlreadyPresent),
			zap.Int("profile_mismatches", plan.Summary.ProfileMismatches),
			zap.Duration("duration", duration),
		)
	}

	return TargetResult{
		Target:   target.Name,
		Plan:     plan,
		Created:  created,
		Err:      err,
		Duration: duration,
	}
}

// syncTarget fetches the target catalog, plans, and applies the plan.
func (e *Engine) syncTarget(ctx context.Context, source []radarr.Movie, target instance.Target) (*Plan, int, error) {
	l := e.targetLogger(target)

	existing, err := e.client.FetchCatalog(ctx, target.Endpoint)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch catalog of target %s: %w", target.Name, err)
	}
	l.Debug("Fetched target catalog", zap.Int("movies", len(existing)))

	plan := BuildPlan(source, existing, target)

	for _, action := range plan.Actions {
		e.recorder.ObserveDecision(target.Name, string(action.Decision))
		if action.Decision == DecisionCreate {
			continue
		}
		l.Debug("Skipping movie",
			zap.String("title", action.Movie.Title),
			zap.Int("tmdb_id", action.Movie.TMDbID),
			zap.String("decision", string(action.Decision)),
			zap.String("reason", action.Reason),
		)
	}

	created, err := e.ApplyPlan(ctx, target, plan)
	return plan, created, err
}

func (e *Engine) targetLogger(target instance.Target) *zap.Logger {
	return logger.ForInstance(e.logger, target.Name, target.URL)
}
