// Package reconcile copies movies from a source Radarr instance to targets.
//
// For every target the engine compares the source catalog snapshot with the
// target's catalog and decides, movie by movie in source order:
//
//  1. Profile filter: a movie whose quality profile is not the target's
//     source profile is skipped (skip_profile_mismatch).
//  2. Presence filter: a movie whose TMDb id is already in the target's
//     catalog is skipped (skip_already_present).
//  3. Otherwise the movie is created on the target with the target's quality
//     profile and its library path prefix rewritten (create).
//
// Running the same sync twice creates nothing the second time, because every
// movie created by the first run passes the presence filter.
//
// # Architecture
//
// BuildPlan is a pure function producing a Plan; ApplyPlan executes the creates
// of a plan; Engine.Run drives the whole run.
//
// # Failure Policy
//
//   - Source catalog fetch fails: the run is aborted, no target is touched.
//   - Target catalog fetch or a create fails: that target is aborted
//     (fail-fast, no further creates on it) and the error is recorded.
//     The remaining targets are still synced.
//
// A target left partially synced converges on the next run.
//
// # Concurrency
//
// Targets are synced one at a time in configuration order unless
// Config.Parallel allows more. Creates within a target are always sequential.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(client, log, recorder, reconcile.Config{Parallel: 1})
//	report, err := engine.Run(ctx, registry.Source, registry.Targets)
//	if err != nil {
//	    return err // source unavailable
//	}
//	return report.Err()
package reconcile
