package instance

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a missing or malformed instance definition.
type ConfigurationError struct {
	// Path is the configuration file.
	Path string
	// Section is the offending INI section, if any.
	Section string
	// Key is the offending key, if any.
	Key string
	// Reason describes the problem.
	Reason string
	// Err is the underlying error, if any.
	Err error
}

func (e *ConfigurationError) Error() string {
	msg := "configuration error"
	if e.Path != "" {
		msg += fmt.Sprintf(" in %s", e.Path)
	}
	if e.Section != "" {
		msg += fmt.Sprintf(": section [%s]", e.Section)
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" key %q", e.Key)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
