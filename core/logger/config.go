package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info" validate:"oneof=debug info warn error"`
	// Format is the log encoding (console, json).
	Format string `mapstructure:"format" default:"console" validate:"oneof=console json"`
	// File is the path of the log file. Empty means standard output.
	File string `mapstructure:"file" default:""`
	// Verbose forces the debug level regardless of Level.
	Verbose bool `mapstructure:"verbose" default:"false"`
}

// EffectiveLevel returns the level the logger will be built with.
func (c Config) EffectiveLevel() string {
	if c.Verbose {
		return "debug"
	}
	if c.Level == "" {
		return "info"
	}
	return c.Level
}
