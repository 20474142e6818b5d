package reconcile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"radarr-sync/core/radarr"
)

// ErrTargetsFailed is returned by Report.Err when at least one target failed.
var ErrTargetsFailed = errors.New("one or more targets failed to sync")

// Decision is the outcome of checking one source movie against one target.
type Decision string

const (
	// DecisionSkipProfileMismatch skips a movie whose quality profile is not
	// the one the target copies.
	DecisionSkipProfileMismatch Decision = "skip_profile_mismatch"
	// DecisionSkipAlreadyPresent skips a movie the target already has.
	DecisionSkipAlreadyPresent Decision = "skip_already_present"
	// DecisionCreate adds the movie to the target.
	DecisionCreate Decision = "create"
)

// Action is the planned handling of one source movie.
type Action struct {
	// Decision is what happens to the movie.
	Decision Decision `json:"decision"`

	// Movie is the source catalog entry.
	Movie radarr.Movie `json:"movie"`

	// Request is the create request sent to the target.
	// Only populated for DecisionCreate.
	Request *radarr.AddMovieRequest `json:"request,omitempty"`

	// Reason explains a skip.
	Reason string `json:"reason,omitempty"`
}

// Plan holds the decisions for one target, in source catalog order.
type Plan struct {
	// Target is the name of the target endpoint.
	Target string `json:"target"`

	// Actions contains one action per source movie.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// SourceEntries is the number of movies in the source catalog.
	SourceEntries int `json:"source_entries"`

	// ProfileMismatches counts movies skipped for their quality profile.
	ProfileMismatches int `json:"profile_mismatches"`

	// AlreadyPresent counts movies the target already has.
	AlreadyPresent int `json:"already_present"`

	// Creates counts planned creates.
	Creates int `json:"creates"`
}

// TargetResult is the outcome of syncing one target.
type TargetResult struct {
	// Target is the name of the target endpoint.
	Target string

	// Plan is nil when the target catalog could not be fetched.
	Plan *Plan

	// Created is the number of movies actually created.
	Created int

	// Err is the error that aborted the target, if any.
	Err error

	// Duration is the wall time spent on the target.
	Duration time.Duration
}

// Report is the outcome of a whole run.
type Report struct {
	// Source is the name of the source endpoint.
	Source string

	// SourceEntries is the size of the source catalog snapshot.
	SourceEntries int

	// DryRun is set when no creates were issued on purpose.
	DryRun bool

	// Results holds one result per target, in configuration order.
	Results []TargetResult
}

// TotalCreated sums the creates over all targets.
func (r *Report) TotalCreated() int {
	total := 0
	for _, res := range r.Results {
		total += res.Created
	}
	return total
}

// Failed returns the results of targets that were aborted by an error.
func (r *Report) Failed() []TargetResult {
	var failed []TargetResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err returns an error wrapping ErrTargetsFailed naming every failed target,
// or nil when all targets were synced.
func (r *Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}

	names := make([]string, 0, len(failed))
	for _, res := range failed {
		names = append(names, res.Target)
	}
	return fmt.Errorf("%w: %s", ErrTargetsFailed, strings.Join(names, ", "))
}
