// SPDX-License-Identifier: MPL-2.0

// Package hostruntime describes the runtime the build tool executes in: the
// Go toolchain that built it, the target architecture and the tool's own
// version.
package hostruntime

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// develVersion is reported for binaries without a usable version stamp.
const develVersion = "0.0.0-dev"

type (
	// Runtime is read-only identity metadata for the executing runtime.
	Runtime interface {
		// Name is a short human readable identifier, e.g. "go1.25.1 gc linux/amd64".
		Name() string
		GoVersion() string
		Compiler() string
		Arch() string
		// ToolVersion is the version of the running tool. Development builds
		// report 0.0.0-dev.
		ToolVersion() *semver.Version
	}

	// Info is the Runtime implementation for the current process.
	Info struct {
		goVersion   string
		compiler    string
		goos        string
		arch        string
		toolVersion *semver.Version
	}
)

// Current describes the running process. version is the tool version stamped
// at link time; when it is empty or "dev" the main module version recorded in
// the build info is used instead.
func Current(version string) *Info {
	return &Info{
		goVersion:   runtime.Version(),
		compiler:    runtime.Compiler,
		goos:        runtime.GOOS,
		arch:        runtime.GOARCH,
		toolVersion: resolveToolVersion(version, debug.ReadBuildInfo),
	}
}

// Name implements Runtime.
func (i *Info) Name() string {
	return fmt.Sprintf("%s %s %s/%s", i.goVersion, i.compiler, i.goos, i.arch)
}

// GoVersion implements Runtime.
func (i *Info) GoVersion() string { return i.goVersion }

// Compiler implements Runtime.
func (i *Info) Compiler() string { return i.compiler }

// Arch implements Runtime.
func (i *Info) Arch() string { return i.arch }

// ToolVersion implements Runtime.
func (i *Info) ToolVersion() *semver.Version { return i.toolVersion }

func resolveToolVersion(stamped string, readBuildInfo func() (*debug.BuildInfo, bool)) *semver.Version {
	if v, ok := parseVersion(stamped); ok {
		return v
	}
	if bi, ok := readBuildInfo(); ok && bi != nil {
		if v, ok := parseVersion(bi.Main.Version); ok {
			return v
		}
	}
	return semver.MustParse(develVersion)
}

func parseVersion(raw string) (*semver.Version, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "dev" || raw == "(devel)" {
		return nil, false
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, false
	}
	return v, true
}
