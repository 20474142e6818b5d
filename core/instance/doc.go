// Package instance turns the instances INI file into typed endpoints.
//
// The file has one section per Radarr instance. The section named on the
// command line is the source; every other section is a target:
//
//	[radarr]
//	url = http://radarr:7878
//	api_key = 0123456789abcdef
//
//	[radarr4k]
//	url = http://radarr4k:7878
//	api_key = fedcba9876543210
//	source_profile = 4
//	target_profile = 7
//	path_from = /movies
//	path_to = /movies-4k
//
// Keys are case-insensitive and keys in the DEFAULT section are inherited by
// every section. Load validates everything up front and reports the first
// problem as a *ConfigurationError naming the section and key, so nothing
// downstream has to re-check the configuration.
package instance
