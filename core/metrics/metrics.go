package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all radarr-sync metrics
	namespace = "radarrsync"
)

// Recorder collects the metrics of one sync run on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	// Decisions counts reconcile decisions per target
	Decisions *prometheus.CounterVec

	// Creates counts movies successfully created per target
	Creates *prometheus.CounterVec

	// TargetFailures counts targets whose sync was aborted
	TargetFailures *prometheus.CounterVec

	// TargetDuration tracks how long each target took
	TargetDuration *prometheus.HistogramVec

	// LastRun records when the run finished
	LastRun prometheus.Gauge
}

// NewRecorder creates a recorder with all metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		Decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decisions_total",
				Help:      "Number of reconcile decisions by target and decision",
			},
			[]string{"target", "decision"},
		),
		Creates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "creates_total",
				Help:      "Number of movies created on a target",
			},
			[]string{"target"},
		),
		TargetFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "target_failures_total",
				Help:      "Number of target syncs aborted by an error",
			},
			[]string{"target"},
		),
		TargetDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "target_duration_seconds",
				Help:      "Duration of a target sync in seconds",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"target"},
		),
		LastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last sync run finished",
			},
		),
	}

	r.registry.MustRegister(
		r.Decisions,
		r.Creates,
		r.TargetFailures,
		r.TargetDuration,
		r.LastRun,
	)

	return r
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveDecision counts one decision for target.
func (r *Recorder) ObserveDecision(target, decision string) {
	r.Decisions.WithLabelValues(target, decision).Inc()
}

// ObserveCreate counts one successful create on target.
func (r *Recorder) ObserveCreate(target string) {
	r.Creates.WithLabelValues(target).Inc()
}

// ObserveTarget records the outcome and duration of one target sync.
func (r *Recorder) ObserveTarget(target string, d time.Duration, err error) {
	r.TargetDuration.WithLabelValues(target).Observe(d.Seconds())
	if err != nil {
		r.TargetFailures.WithLabelValues(target).Inc()
	}
}

// MarkRunFinished sets the last run timestamp.
func (r *Recorder) MarkRunFinished(t time.Time) {
	r.LastRun.Set(float64(t.Unix()))
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
