// Package logger provides a structured logging facility based on Zap.
//
// It builds a configured logger for the command line: human-readable console
// output by default, JSON when log shipping is wanted, written either to
// standard output or to a log file.
//
// # Run Correlation
//
// Every sync run gets a unique run ID. WithRunID attaches it to the logger so
// that all lines belonging to one invocation can be grepped together, even when
// several cron runs append to the same log file. ForInstance further scopes a
// logger to one Radarr instance.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Verbose: forces debug (the -v flag)
//   - Format: console or json
//   - File: destination path (standard output when empty)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log, runID)
//	log.Info("Sync started")
package logger
