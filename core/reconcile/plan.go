package reconcile

import (
	"context"
	"fmt"
	"strings"

	"radarr-sync/core/instance"
	"radarr-sync/core/radarr"

	"go.uber.org/zap"
)

// BuildPlan decides, for every source movie in order, whether target should
// receive it. existing is the target's current catalog.
// It does NOT execute anything; use ApplyPlan for that.
func BuildPlan(source, existing []radarr.Movie, target instance.Target) *Plan {
	// Membership set of the target's TMDb ids
	present := make(map[int]struct{}, len(existing))
	for _, m := range existing {
		present[m.TMDbID] = struct{}{}
	}

	plan := &Plan{
		Target:  target.Name,
		Actions: make([]Action, 0, len(source)),
	}
	plan.Summary.SourceEntries = len(source)

	for _, m := range source {
		if m.QualityProfileID != target.SourceProfile {
			plan.Actions = append(plan.Actions, Action{
				Decision: DecisionSkipProfileMismatch,
				Movie:    m,
				Reason:   fmt.Sprintf("wanted quality profile %d, found profile %d", target.SourceProfile, m.QualityProfileID),
			})
			plan.Summary.ProfileMismatches++
			continue
		}

		if _, ok := present[m.TMDbID]; ok {
			plan.Actions = append(plan.Actions, Action{
				Decision: DecisionSkipAlreadyPresent,
				Movie:    m,
				Reason:   fmt.Sprintf("already in %s library", target.Name),
			})
			plan.Summary.AlreadyPresent++
			continue
		}

		req := radarr.NewAddMovieRequest(m, target.TargetProfile, TranslatePath(m.Path, target.PathFrom, target.PathTo))
		plan.Actions = append(plan.Actions, Action{
			Decision: DecisionCreate,
			Movie:    m,
			Request:  &req,
		})
		plan.Summary.Creates++

		// A duplicate row in the source must not be created twice
		present[m.TMDbID] = struct{}{}
	}

	return plan
}

// TranslatePath replaces a leading from with to in p. When p does not start
// with from, or from is empty, p is returned unchanged: the mapping is
// best-effort and a mismatch is not an error.
func TranslatePath(p, from, to string) string {
	if from == "" || !strings.HasPrefix(p, from) {
		return p
	}
	return to + strings.TrimPrefix(p, from)
}

// ApplyPlan issues the planned creates against target, one at a time and in
// plan order. The first failure aborts the remaining creates; the number of
// movies created so far is returned with the error.
// In dry-run mode nothing is sent and zero is returned.
func (e *Engine) ApplyPlan(ctx context.Context, target instance.Target, plan *Plan) (executed int, err error) {
	l := e.targetLogger(target)

	for _, action := range plan.Actions {
		if action.Decision != DecisionCreate {
			continue
		}

		movie := action.Movie
		fields := []zap.Field{
			zap.String("title", movie.Title),
			zap.Int("tmdb_id", movie.TMDbID),
			zap.String("path", action.Request.Path),
			zap.Int("quality_profile", action.Request.QualityProfileID),
		}

		if e.cfg.DryRun {
			l.Info("Dry-run: would add movie", fields...)
			continue
		}

		l.Debug("Adding movie", zap.Any("payload", action.Request))

		if err := e.client.CreateEntry(ctx, target.Endpoint, *action.Request); err != nil {
			return executed, fmt.Errorf("failed to add movie %q (tmdb %d) to %s: %w", movie.Title, movie.TMDbID, target.Name, err)
		}

		executed++
		e.recorder.ObserveCreate(target.Name)
		l.Info("Added movie", fields...)
	}

	return executed, nil
}
