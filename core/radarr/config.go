package radarr

// Config holds configuration for the HTTP transport shared by all instances.
type Config struct {
	// TimeoutSeconds bounds every request, including reading the response body.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30" validate:"min=1"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"radarr-sync"`
	// UseProxy honours the HTTP(S)_PROXY environment variables.
	UseProxy bool `mapstructure:"use_proxy" default:"false"`
	// InsecureSkipVerify disables TLS certificate verification.
	// Only use this for self-signed certificates in trusted networks.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" default:"false"`
	// MaxConnsPerHost caps concurrent connections to a single instance.
	MaxConnsPerHost int `mapstructure:"max_conns_per_host" default:"4" validate:"min=1"`
}
