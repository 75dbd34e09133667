// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invowk/buildenv/internal/issue"
	"github.com/invowk/buildenv/pkg/cueutil"
	"github.com/invowk/buildenv/pkg/fspath"
	"github.com/invowk/buildenv/pkg/platform"
	"github.com/invowk/buildenv/pkg/types"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "buildenv"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalConfigFileName is looked up in the working directory when the
	// user config file does not exist.
	LocalConfigFileName = AppName + "." + ConfigFileExt
	// EnvPrefix prefixes environment overrides (BUILDENV_LOG_LEVEL, BUILDENV_OUTPUT_FORMAT).
	EnvPrefix = "BUILDENV"
)

// ErrConfigNotFound is returned when an explicit config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the buildenv configuration directory: the platform's
// ApplicationData folder joined with AppName.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir(plat platform.Platform) (types.FilesystemPath, error) {
	appData, err := plat.SpecialPath(platform.ApplicationData)
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return fspath.JoinStr(appData, AppName), nil
}

// locate returns the config file loadWithOptions would read, or "" when
// only defaults apply.
func locate(plat platform.Platform, opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'buildenv config show' to see the default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("%w: %s", ErrConfigNotFound, opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		dir, err := ConfigDir(plat)
		// An unresolvable config directory is not fatal: the local file and
		// the defaults still apply.
		if err == nil {
			cfgDir = dir.String()
		}
	}
	if cfgDir != "" {
		userPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(userPath) {
			return userPath, nil
		}
	}

	localPath := filepath.Join(opts.WorkDir, LocalConfigFileName)
	if fileExists(localPath) {
		return localPath, nil
	}
	return "", nil
}

// loadWithOptions performs option-driven config loading. It returns the
// effective configuration and the file it was read from ("" for defaults).
func loadWithOptions(ctx context.Context, plat platform.Platform, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel.String())
	v.SetDefault("output.format", defaults.Output.Format.String())
	v.SetDefault("output.color", defaults.Output.Color)
	v.SetDefault("env.mask", defaults.Env.Mask)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath, err := locate(plat, opts)
	if err != nil {
		return nil, "", err
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'buildenv config init --force' to regenerate the defaults").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the CUE schema, so validate the result.
	if ok, errs := cfg.IsValid(); !ok {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check " + EnvPrefix + "_* environment variables for typos").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// loadCUEIntoViper validates a CUE file against #Config and merges its
// fields into v, leaving unset keys to the defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to cfgDir/config.cue.
// An existing file is left alone unless force is set; the returned bool
// reports whether the file was written.
func CreateDefaultConfig(cfgDir types.FilesystemPath, force bool) (types.FilesystemPath, bool, error) {
	if err := os.MkdirAll(cfgDir.String(), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := fspath.JoinStr(cfgDir, ConfigFileName+"."+ConfigFileExt)

	if !force && fileExists(cfgPath.String()) {
		return cfgPath, false, nil
	}

	if err := os.WriteFile(cfgPath.String(), []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// buildenv configuration file\n")
	sb.WriteString("// See https://github.com/invowk/buildenv for documentation.\n\n")

	fmt.Fprintf(&sb, "log_level: %q\n", cfg.LogLevel)

	sb.WriteString("\noutput: {\n")
	fmt.Fprintf(&sb, "\tformat: %q\n", cfg.Output.Format)
	fmt.Fprintf(&sb, "\tcolor:  %v\n", cfg.Output.Color)
	sb.WriteString("}\n")

	sb.WriteString("\nenv: {\n")
	sb.WriteString("\tmask: [")
	for i, p := range cfg.Env.Mask {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q", p)
	}
	sb.WriteString("]\n")
	sb.WriteString("}\n")

	return sb.String()
}
