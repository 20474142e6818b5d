package instance

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-ini/ini"
	"github.com/go-playground/validator/v10"
)

// Keys every section must define.
const (
	KeyURL    = "url"
	KeyAPIKey = "api_key"
)

// Keys every target section must define.
const (
	KeySourceProfile = "source_profile"
	KeyTargetProfile = "target_profile"
	KeyPathFrom      = "path_from"
	KeyPathTo        = "path_to"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns a validator that reports fields by their INI key name.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("ini"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// loadOptions parses like Python's configparser: case-insensitive keys and no
// inline comments.
var loadOptions = ini.LoadOptions{
	InsensitiveKeys:     true,
	IgnoreInlineComment: true,
}

// Load reads the INI file at path and builds the registry, treating
// sourceSection as the source and every other section as a target.
func Load(path, sourceSection string) (*Registry, error) {
	file, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Reason: "could not load the config file", Err: err}
	}

	reg, err := FromFile(file, sourceSection)
	if err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Path = path
		}
		return nil, err
	}
	return reg, nil
}

// FromFile builds the registry from an already parsed INI file.
func FromFile(file *ini.File, sourceSection string) (*Registry, error) {
	if sourceSection == "" {
		return nil, &ConfigurationError{Reason: "no source section given"}
	}
	if sourceSection == ini.DefaultSection {
		return nil, &ConfigurationError{Section: sourceSection, Reason: "the DEFAULT section cannot be the source"}
	}

	defaults := file.Section(ini.DefaultSection)

	src, err := file.GetSection(sourceSection)
	if err != nil {
		return nil, &ConfigurationError{
			Section: sourceSection,
			Reason:  fmt.Sprintf("source section not found (available: %s)", strings.Join(instanceSections(file), ", ")),
		}
	}

	source, err := parseEndpoint(src, defaults, RoleSource)
	if err != nil {
		return nil, err
	}

	reg := &Registry{Source: source}

	for _, sec := range file.Sections() {
		if sec.Name() == ini.DefaultSection || sec.Name() == sourceSection {
			continue
		}

		target, err := parseTarget(sec, defaults)
		if err != nil {
			return nil, err
		}
		reg.Targets = append(reg.Targets, target)
	}

	return reg, nil
}

// parseEndpoint reads the keys shared by all sections.
func parseEndpoint(sec, defaults *ini.Section, role Role) (Endpoint, error) {
	ep := Endpoint{Name: sec.Name(), Role: role}

	var err error
	if ep.URL, err = requireKey(sec, defaults, KeyURL); err != nil {
		return Endpoint{}, err
	}
	if ep.APIKey, err = requireKey(sec, defaults, KeyAPIKey); err != nil {
		return Endpoint{}, err
	}
	ep.URL = strings.TrimRight(ep.URL, "/")

	if err := validateStruct(sec.Name(), ep); err != nil {
		return Endpoint{}, err
	}
	return ep, nil
}

// parseTarget reads a target section including its profile and path rules.
func parseTarget(sec, defaults *ini.Section) (Target, error) {
	ep, err := parseEndpoint(sec, defaults, RoleTarget)
	if err != nil {
		return Target{}, err
	}

	t := Target{Endpoint: ep}

	if t.SourceProfile, err = requireInt(sec, defaults, KeySourceProfile); err != nil {
		return Target{}, err
	}
	if t.TargetProfile, err = requireInt(sec, defaults, KeyTargetProfile); err != nil {
		return Target{}, err
	}
	if t.PathFrom, err = requireKey(sec, defaults, KeyPathFrom); err != nil {
		return Target{}, err
	}
	if t.PathTo, err = requireKey(sec, defaults, KeyPathTo); err != nil {
		return Target{}, err
	}

	if err := validateStruct(sec.Name(), t); err != nil {
		return Target{}, err
	}
	return t, nil
}

// lookup returns the value of key in sec, falling back to the DEFAULT section.
// Only the section's own keys are considered: go-ini would otherwise resolve
// [radarr.4k] keys through a [radarr] section.
func lookup(sec, defaults *ini.Section, key string) (string, bool) {
	if val, ok := sec.KeysHash()[key]; ok {
		return val, true
	}
	if defaults != nil {
		if val, ok := defaults.KeysHash()[key]; ok {
			return val, true
		}
	}
	return "", false
}

func requireKey(sec, defaults *ini.Section, key string) (string, error) {
	val, ok := lookup(sec, defaults, key)
	if !ok {
		return "", &ConfigurationError{Section: sec.Name(), Key: key, Reason: "missing required key"}
	}
	return val, nil
}

func requireInt(sec, defaults *ini.Section, key string) (int, error) {
	raw, err := requireKey(sec, defaults, key)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ConfigurationError{Section: sec.Name(), Key: key, Reason: fmt.Sprintf("value %q is not an integer", raw)}
	}
	return n, nil
}

// validateStruct turns the first validator failure into a ConfigurationError.
func validateStruct(section string, s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ConfigurationError{Section: section, Reason: "invalid instance definition", Err: err}
	}

	fe := fieldErrs[0]
	reason := fmt.Sprintf("failed %q validation", fe.Tag())
	switch fe.Tag() {
	case "required":
		reason = "must not be empty"
	case "url", "startswith":
		reason = fmt.Sprintf("value %q is not an http(s) URL", fe.Value())
	}
	return &ConfigurationError{Section: section, Key: fe.Field(), Reason: reason}
}

// instanceSections lists the section names that can describe an instance.
func instanceSections(file *ini.File) []string {
	var names []string
	for _, name := range file.SectionStrings() {
		if name != ini.DefaultSection {
			names = append(names, name)
		}
	}
	return names
}
