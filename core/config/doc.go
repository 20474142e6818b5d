// Package config provides configuration management for radarr-sync.
//
// It utilizes Viper for loading settings from a .env file, environment
// variables and command-line flags. The Radarr instances themselves are not
// configured here: they live in the INI file named by instances.config_file
// (see package instance).
//
// # Configuration Structure
//
// The Config struct is the central repository for all runtime settings, divided into subsections:
//   - Instances: INI file path and source section name
//   - Sync: dry-run mode and target parallelism
//   - HTTP: request timeout, proxy and TLS settings of the Radarr client
//   - Log: level, format, destination and verbosity
//   - Metrics: optional Prometheus textfile export
//
// # Precedence
//
// Flags override environment variables, which override defaults taken from
// the `default` struct tags. Environment variables are prefixed with
// RADARRSYNC and use underscores for nesting:
//
//	RADARRSYNC_LOG_FORMAT=json
//	RADARRSYNC_HTTP_TIMEOUT_SECONDS=60
//	RADARRSYNC_SYNC_PARALLEL=2
//
// # Usage
//
//	cfg, err := config.LoadConfig(".", cmd.Flags())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Instances.ConfigFile)
package config
