// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"

	// FormatText prints aligned, optionally styled columns.
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatTOML OutputFormat = "toml"
)

var (
	// ErrInvalidLogLevel is the sentinel error wrapped by InvalidLogLevelError.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidOutputFormat is the sentinel error wrapped by InvalidOutputFormatError.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidMaskPattern is the sentinel error wrapped by InvalidMaskPatternError.
	ErrInvalidMaskPattern = errors.New("invalid mask pattern")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level of log records written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// OutputFormat selects how commands print structured results.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// InvalidMaskPatternError is returned when an env.mask entry is empty or
	// not a valid path.Match pattern.
	InvalidMaskPatternError struct {
		Index   int
		Pattern string
		Err     error
	}

	// InvalidConfigError collects field-level validation errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		LogLevel LogLevel     `json:"log_level" yaml:"log_level" toml:"log_level" mapstructure:"log_level"`
		Output   OutputConfig `json:"output" yaml:"output" toml:"output" mapstructure:"output"`
		Env      EnvConfig    `json:"env" yaml:"env" toml:"env" mapstructure:"env"`
	}

	// OutputConfig configures command output.
	OutputConfig struct {
		// Format is the default for commands that accept --format.
		Format OutputFormat `json:"format" yaml:"format" toml:"format" mapstructure:"format"`
		// Color enables lipgloss styling of text output.
		Color bool `json:"color" yaml:"color" toml:"color" mapstructure:"color"`
	}

	// EnvConfig configures the env command.
	EnvConfig struct {
		// Mask lists path.Match patterns; variables whose upper-cased name
		// matches one are printed with a masked value.
		Mask []string `json:"mask" yaml:"mask" toml:"mask" mapstructure:"mask"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel: LogLevelWarn,
		Output: OutputConfig{
			Format: FormatText,
			Color:  true,
		},
		Env: EnvConfig{
			Mask: []string{"*TOKEN*", "*SECRET*", "*PASSWORD*"},
		},
	}
}

// IsValid reports whether every field holds an accepted value, and the list
// of field errors otherwise.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.LogLevel.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.Output.Format.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	for i, p := range c.Env.Mask {
		if p == "" {
			errs = append(errs, &InvalidMaskPatternError{Index: i, Pattern: p, Err: errors.New("empty pattern")})
			continue
		}
		if _, err := path.Match(p, ""); err != nil {
			errs = append(errs, &InvalidMaskPatternError{Index: i, Pattern: p, Err: err})
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Masked reports whether the value of the variable name should be hidden.
// Matching is done on the upper-cased name. Load rejects malformed patterns
// through IsValid, so Match errors cannot occur for a loaded Config.
func (c EnvConfig) Masked(name string) bool {
	upper := strings.ToUpper(name)
	for _, p := range c.Mask {
		if ok, _ := path.Match(strings.ToUpper(p), upper); ok {
			return true
		}
	}
	return false
}

func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

func (f OutputFormat) String() string { return string(f) }

// IsValid returns whether the OutputFormat is one of the defined formats.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}

// OutputFormats lists the accepted output formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatYAML, FormatTOML}
}

func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: text, json, yaml, toml)", e.Value)
}

func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

func (e *InvalidMaskPatternError) Error() string {
	return fmt.Sprintf("env.mask[%d]: invalid pattern %q: %v", e.Index, e.Pattern, e.Err)
}

func (e *InvalidMaskPatternError) Unwrap() []error { return []error{ErrInvalidMaskPattern, e.Err} }

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns the sentinel followed by the field errors so errors.Is
// matches ErrInvalidConfig as well as any field sentinel.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
