// SPDX-License-Identifier: MPL-2.0

// Package environmenttest provides an in-memory environment.Environment for
// tests of code that consumes one.
package environmenttest

import (
	"path"

	"github.com/invowk/buildenv/pkg/environment"
	"github.com/invowk/buildenv/pkg/hostruntime"
	"github.com/invowk/buildenv/pkg/osenv"
	"github.com/invowk/buildenv/pkg/platform"
	"github.com/invowk/buildenv/pkg/types"
)

// Fake is an Environment whose state lives in memory. It applies the same
// relative-path validation as environment.Provider. Variable lookups are
// case-sensitive unless the platform family is Windows. A Fake is not safe
// for concurrent mutation.
type Fake struct {
	workingDir types.FilesystemPath
	appRoot    types.FilesystemPath
	plat       platform.Platform
	rt         hostruntime.Runtime
	vars       []osenv.Pair
}

var _ environment.Environment = (*Fake)(nil)

// New returns a Unix-flavoured Fake rooted at /working with the application
// in /app and no variables.
func New() *Fake {
	return &Fake{
		workingDir: "/working",
		appRoot:    "/app",
		plat: platform.NewStatic(platform.FamilyLinux, map[platform.SpecialPath]types.FilesystemPath{
			platform.Temp: "/tmp",
			platform.Home: "/home/build",
		}),
		rt: hostruntime.Current("0.0.0"),
	}
}

// WithPlatform replaces the platform.
func (f *Fake) WithPlatform(p platform.Platform) *Fake {
	f.plat = p
	return f
}

// WithApplicationRoot replaces the application root.
func (f *Fake) WithApplicationRoot(dir types.FilesystemPath) *Fake {
	f.appRoot = dir
	return f
}

// SetVariable sets name to value, replacing an existing entry with the same
// name under the Fake's case rules.
func (f *Fake) SetVariable(name, value string) {
	for i, p := range f.vars {
		if f.sameName(p.Key, name) {
			f.vars[i].Value = value
			return
		}
	}
	f.vars = append(f.vars, osenv.Pair{Key: name, Value: value})
}

// AppendRawVariable appends an entry without de-duplication, imitating an OS
// table that carries case-duplicate names.
func (f *Fake) AppendRawVariable(name, value string) {
	f.vars = append(f.vars, osenv.Pair{Key: name, Value: value})
}

// UnsetVariable removes every entry matching name.
func (f *Fake) UnsetVariable(name string) {
	kept := f.vars[:0]
	for _, p := range f.vars {
		if !f.sameName(p.Key, name) {
			kept = append(kept, p)
		}
	}
	f.vars = kept
}

// WorkingDirectory implements environment.Environment.
func (f *Fake) WorkingDirectory() (types.FilesystemPath, error) {
	return f.workingDir, nil
}

// SetWorkingDirectory implements environment.Environment. Absolute paths are
// judged by Unix rules, or by drive-letter rules for a Windows platform.
func (f *Fake) SetWorkingDirectory(dir types.FilesystemPath) error {
	if !f.isAbs(string(dir)) {
		return &environment.RelativePathError{Path: dir}
	}
	f.workingDir = dir
	return nil
}

// ApplicationRoot implements environment.Environment.
func (f *Fake) ApplicationRoot() types.FilesystemPath { return f.appRoot }

// Platform implements environment.Environment.
func (f *Fake) Platform() platform.Platform { return f.plat }

// Runtime implements environment.Environment.
func (f *Fake) Runtime() hostruntime.Runtime { return f.rt }

// SpecialPath implements environment.Environment.
func (f *Fake) SpecialPath(p platform.SpecialPath) (types.FilesystemPath, error) {
	return f.plat.SpecialPath(p)
}

// EnvironmentVariable implements environment.Environment.
func (f *Fake) EnvironmentVariable(name string) (string, bool) {
	for _, p := range f.vars {
		if f.sameName(p.Key, name) {
			return p.Value, true
		}
	}
	return "", false
}

// EnvironmentVariables implements environment.Environment.
func (f *Fake) EnvironmentVariables() environment.Variables {
	return environment.FoldVariables(append([]osenv.Pair(nil), f.vars...))
}

// Variables returns the current variables as a map, for assertions.
func (f *Fake) Variables() map[string]string {
	return f.EnvironmentVariables().Map()
}

func (f *Fake) windows() bool { return f.plat.Family() == platform.FamilyWindows }

func (f *Fake) sameName(a, b string) bool {
	if f.windows() {
		return environment.FoldVariables([]osenv.Pair{{Key: a}}).Has(b)
	}
	return a == b
}

func (f *Fake) isAbs(p string) bool {
	if !f.windows() {
		return path.IsAbs(p)
	}
	if len(p) >= 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/') {
		return true
	}
	return len(p) >= 2 && (p[:2] == `\\` || p[:2] == "//")
}
