// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"log/slog"

	"github.com/invowk/buildenv/pkg/fspath"
	"github.com/invowk/buildenv/pkg/hostruntime"
	"github.com/invowk/buildenv/pkg/osenv"
	"github.com/invowk/buildenv/pkg/platform"
	"github.com/invowk/buildenv/pkg/types"
)

type (
	// Environment is the read/write surface build code depends on. Provider
	// implements it; environmenttest.Fake implements it in memory.
	Environment interface {
		WorkingDirectory() (types.FilesystemPath, error)
		SetWorkingDirectory(dir types.FilesystemPath) error
		ApplicationRoot() types.FilesystemPath
		Platform() platform.Platform
		Runtime() hostruntime.Runtime
		SpecialPath(p platform.SpecialPath) (types.FilesystemPath, error)
		EnvironmentVariable(name string) (string, bool)
		EnvironmentVariables() Variables
	}

	// Provider is the OS-backed Environment.
	Provider struct {
		platform platform.Platform
		runtime  hostruntime.Runtime
		os       osenv.Accessor
		logger   *slog.Logger
		appRoot  types.FilesystemPath
	}

	// Option configures a Provider.
	Option func(*Provider)
)

var _ Environment = (*Provider)(nil)

// WithAccessor replaces the OS accessor. The default is osenv.System().
func WithAccessor(acc osenv.Accessor) Option {
	return func(p *Provider) { p.os = acc }
}

// WithLogger sets the logger used for debug records. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

// New builds a Provider for plat and rt. It resolves the application root
// from the running executable and checks that the OS can report the current
// directory; failure of either is returned as an *InitError.
func New(plat platform.Platform, rt hostruntime.Runtime, opts ...Option) (*Provider, error) {
	if plat == nil || rt == nil {
		return nil, ErrNilCollaborator
	}

	p := &Provider{
		platform: plat,
		runtime:  rt,
		os:       osenv.System(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	exe, err := p.os.Executable()
	if err != nil {
		return nil, &InitError{Step: "application root", Err: err}
	}
	exePath, err := fspath.Canonical(types.FilesystemPath(exe))
	if err != nil {
		return nil, &InitError{Step: "application root", Err: err}
	}
	p.appRoot = fspath.Dir(exePath)

	wd, err := p.os.Getwd()
	if err != nil {
		return nil, &InitError{Step: "working directory", Err: err}
	}

	p.logger.Debug("environment initialized",
		"platform", plat.Family().String(),
		"runtime", rt.Name(),
		"application_root", p.appRoot.String(),
		"working_directory", wd)

	return p, nil
}

// WorkingDirectory returns the process's current directory, read from the
// OS on every call.
func (p *Provider) WorkingDirectory() (types.FilesystemPath, error) {
	wd, err := p.os.Getwd()
	if err != nil {
		return "", err
	}
	return types.FilesystemPath(wd), nil
}

// SetWorkingDirectory changes the process's current directory. Relative
// paths are rejected with a *RelativePathError before the OS is consulted.
func (p *Provider) SetWorkingDirectory(dir types.FilesystemPath) error {
	if dir.IsRelative() {
		return &RelativePathError{Path: dir}
	}
	if err := p.os.Chdir(dir.String()); err != nil {
		return err
	}
	p.logger.Debug("working directory changed", "dir", dir.String())
	return nil
}

// ApplicationRoot returns the directory of the running executable, as
// resolved by New.
func (p *Provider) ApplicationRoot() types.FilesystemPath { return p.appRoot }

// Platform returns the platform supplied to New.
func (p *Provider) Platform() platform.Platform { return p.platform }

// Runtime returns the runtime supplied to New.
func (p *Provider) Runtime() hostruntime.Runtime { return p.runtime }

// SpecialPath resolves sp through the platform. Tags without a mapping fail
// with an error matching ErrUnsupported.
func (p *Provider) SpecialPath(sp platform.SpecialPath) (types.FilesystemPath, error) {
	return p.platform.SpecialPath(sp)
}

// EnvironmentVariable returns the value of name and whether it is set.
// Name matching follows the OS: case-sensitive on Unix, insensitive on Windows.
func (p *Provider) EnvironmentVariable(name string) (string, bool) {
	return p.os.LookupEnv(name)
}

// EnvironmentVariables returns a fresh snapshot of the process environment.
// See FoldVariables for how case-duplicate names are handled.
func (p *Provider) EnvironmentVariables() Variables {
	return FoldVariables(p.os.Environ())
}
