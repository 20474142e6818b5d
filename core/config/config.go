package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"radarr-sync/core/instance"
	"radarr-sync/core/logger"
	"radarr-sync/core/metrics"
	"radarr-sync/core/radarr"
	"radarr-sync/core/reconcile"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by LoadConfig,
// e.g. RADARRSYNC_LOG_LEVEL for log.level.
const EnvPrefix = "RADARRSYNC"

// FlagKeys maps command line flag names to the setting they override.
var FlagKeys = map[string]string{
	"config_file":    "instances.config_file",
	"source_section": "instances.source_section",
	"log_file":       "log.file",
	"verbose":        "log.verbose",
	"log_format":     "log.format",
	"dry_run":        "sync.dry_run",
	"parallel":       "sync.parallel",
	"timeout":        "http.timeout_seconds",
	"metrics_file":   "metrics.textfile",
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Instances locates the INI file describing the Radarr instances.
	Instances instance.Config `mapstructure:"instances"`
	// Sync controls how targets are reconciled.
	Sync reconcile.Config `mapstructure:"sync"`
	// HTTP holds configuration for the Radarr API client.
	HTTP radarr.Config `mapstructure:"http"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Metrics holds configuration for the metrics export.
	Metrics metrics.Config `mapstructure:"metrics"`
}

// LoadConfig loads configuration from the .env file in path, environment
// variables and flags, in increasing order of precedence, and validates it.
// flags may be nil.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. RADARRSYNC_LOG_FILE -> log.file)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks every setting against its validate tag.
func (c *Config) Validate() error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %q", settingKey(fe), describeTag(fe)))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}

// settingKey turns a validator namespace (Config.Log.Format) into the
// setting key (log.format) a user would set.
func settingKey(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 0 && parts[0] == "Config" {
		parts = parts[1:]
	}

	t := reflect.TypeOf(Config{})
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		field, ok := t.FieldByName(part)
		if !ok {
			keys = append(keys, strings.ToLower(part))
			continue
		}
		if tag := field.Tag.Get("mapstructure"); tag != "" {
			keys = append(keys, tag)
		} else {
			keys = append(keys, strings.ToLower(part))
		}
		t = field.Type
	}
	return strings.Join(keys, ".")
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
