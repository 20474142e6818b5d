package metrics

// Config holds configuration for metrics export.
type Config struct {
	// Textfile is the path the metrics are written to at the end of a run,
	// for the node_exporter textfile collector. Empty disables the export.
	Textfile string `mapstructure:"textfile" default:""`
}
