package instance

// Config locates the instance definitions.
type Config struct {
	// ConfigFile is the INI file with one section per Radarr instance.
	ConfigFile string `mapstructure:"config_file" default:"" validate:"required"`
	// SourceSection names the section of the source instance.
	SourceSection string `mapstructure:"source_section" default:"" validate:"required"`
}

// Load reads the registry described by the configuration.
func (c Config) Load() (*Registry, error) {
	return Load(c.ConfigFile, c.SourceSection)
}
