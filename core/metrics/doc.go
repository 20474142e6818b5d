// Package metrics provides Prometheus metrics for a sync run.
//
// radarr-sync is a short-lived batch job, so nothing is served over HTTP.
// Metrics are collected on a private registry and, when a textfile path is
// configured, written at the end of the run for the node_exporter textfile
// collector to pick up.
package metrics
