// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/invowk/buildenv/internal/config"
	"github.com/invowk/buildenv/internal/issue"
	"github.com/invowk/buildenv/internal/logging"
	"github.com/invowk/buildenv/pkg/environment"
	"github.com/invowk/buildenv/pkg/hostruntime"
	"github.com/invowk/buildenv/pkg/osenv"
	"github.com/invowk/buildenv/pkg/platform"
	"github.com/invowk/buildenv/pkg/types"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		Locate(opts config.LoadOptions) (string, error)
	}

	// EnvironmentFactory builds the Environment for one invocation.
	EnvironmentFactory func(logger *slog.Logger) (environment.Environment, error)

	// App wires CLI services and shared dependencies. Every Cobra handler
	// receives an App and reads the per-invocation state prepared by the
	// root command.
	App struct {
		Config         ConfigProvider
		Platform       platform.Platform
		NewEnvironment EnvironmentFactory
		stdout         io.Writer
		stderr         io.Writer

		flags globalFlags

		cfg    *config.Config
		env    environment.Environment
		logger *slog.Logger
		color  bool
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   ConfigProvider
		Platform platform.Platform
		Runtime  hostruntime.Runtime
		Accessor osenv.Accessor
		// Environment, when set, is used as-is instead of building a Provider
		// from Platform, Runtime and Accessor.
		Environment environment.Environment
		Stdout      io.Writer
		Stderr      io.Writer
	}

	globalFlags struct {
		verbose    bool
		configFile string
		chdir      string
		noColor    bool
	}
)

// NewApp creates an App, filling every nil dependency with its production
// default.
func NewApp(deps Dependencies) *App {
	if deps.Platform == nil {
		deps.Platform = platform.Detect()
	}
	if deps.Runtime == nil {
		deps.Runtime = hostruntime.Current(Version)
	}
	if deps.Accessor == nil {
		deps.Accessor = osenv.System()
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider(deps.Platform)
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	newEnv := func(logger *slog.Logger) (environment.Environment, error) {
		return environment.New(deps.Platform, deps.Runtime,
			environment.WithAccessor(deps.Accessor),
			environment.WithLogger(logger),
		)
	}
	if deps.Environment != nil {
		env := deps.Environment
		newEnv = func(*slog.Logger) (environment.Environment, error) { return env, nil }
	}

	return &App{
		Config:         deps.Config,
		Platform:       deps.Platform,
		NewEnvironment: newEnv,
		stdout:         deps.Stdout,
		stderr:         deps.Stderr,
	}
}

// prepare runs before every subcommand. A configuration error is reported as
// a warning and the defaults are used, so that `config init` and `config
// path` keep working with a broken file.
func (a *App) prepare(ctx context.Context) error {
	cfg, loadErr := a.Config.Load(ctx, a.loadOptions())
	if loadErr != nil {
		if ctx.Err() != nil {
			return loadErr
		}
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg
	a.color = cfg.Output.Color && !a.flags.noColor
	if loadErr != nil {
		fmt.Fprintln(a.stderr, a.styled(WarningStyle, "Warning: ")+formatErrorForDisplay(loadErr, a.flags.verbose))
	}

	level := cfg.LogLevel.String()
	if a.flags.verbose {
		level = config.LogLevelDebug.String()
	}
	logger, err := logging.New(a.stderr, level)
	if err != nil {
		return err
	}
	a.logger = logger

	env, err := a.NewEnvironment(logger)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("inspect build environment").
			WithSuggestion("Make sure the current directory still exists").
			WithIssue(issue.EnvironmentInitFailedId).
			Wrap(err).
			BuildError()
	}
	a.env = env

	if a.flags.chdir != "" {
		if err := env.SetWorkingDirectory(types.FilesystemPath(a.flags.chdir)); err != nil {
			ec := issue.NewErrorContext().
				WithOperation("change working directory").
				WithResource(a.flags.chdir).
				Wrap(err)
			if errors.Is(err, environment.ErrInvalidArgument) {
				ec = ec.WithSuggestion("Pass an absolute path to --chdir").
					WithIssue(issue.RelativeWorkingDirectoryId)
			}
			return ec.BuildError()
		}
	}

	return nil
}

// loadOptions maps the global flags to config lookup options. The local
// buildenv.cue is searched in the --chdir target when one is given.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: a.flags.configFile,
		WorkDir:        a.flags.chdir,
	}
}
