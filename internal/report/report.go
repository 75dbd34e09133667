// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/invowk/buildenv/pkg/environment"
	"github.com/invowk/buildenv/pkg/platform"
)

type (
	// Info is the document printed by `buildenv info`.
	Info struct {
		Platform         PlatformInfo `json:"platform" yaml:"platform" toml:"platform"`
		Runtime          RuntimeInfo  `json:"runtime" yaml:"runtime" toml:"runtime"`
		ApplicationRoot  string       `json:"application_root" yaml:"application_root" toml:"application_root"`
		WorkingDirectory string       `json:"working_directory" yaml:"working_directory" toml:"working_directory"`
	}

	PlatformInfo struct {
		Family  string `json:"family" yaml:"family" toml:"family"`
		Is64Bit bool   `json:"is_64_bit" yaml:"is_64_bit" toml:"is_64_bit"`
		IsUnix  bool   `json:"is_unix" yaml:"is_unix" toml:"is_unix"`
		Sandbox string `json:"sandbox" yaml:"sandbox" toml:"sandbox"`
	}

	RuntimeInfo struct {
		Name        string `json:"name" yaml:"name" toml:"name"`
		GoVersion   string `json:"go_version" yaml:"go_version" toml:"go_version"`
		Compiler    string `json:"compiler" yaml:"compiler" toml:"compiler"`
		Arch        string `json:"arch" yaml:"arch" toml:"arch"`
		ToolVersion string `json:"tool_version" yaml:"tool_version" toml:"tool_version"`
	}

	// PathEntry is one resolved special path. Exactly one of Path and Error is set.
	PathEntry struct {
		Name  string `json:"name" yaml:"name" toml:"name"`
		Path  string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
		Error string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	}

	// Paths is the document printed by `buildenv path`.
	Paths struct {
		Paths []PathEntry `json:"paths" yaml:"paths" toml:"paths"`
	}
)

// NewInfo collects the info document from env.
func NewInfo(env environment.Environment) (*Info, error) {
	wd, err := env.WorkingDirectory()
	if err != nil {
		return nil, fmt.Errorf("read working directory: %w", err)
	}

	plat := env.Platform()
	rt := env.Runtime()

	return &Info{
		Platform: PlatformInfo{
			Family:  plat.Family().String(),
			Is64Bit: plat.Is64Bit(),
			IsUnix:  plat.IsUnix(),
			Sandbox: plat.Sandbox().String(),
		},
		Runtime: RuntimeInfo{
			Name:        rt.Name(),
			GoVersion:   rt.GoVersion(),
			Compiler:    rt.Compiler(),
			Arch:        rt.Arch(),
			ToolVersion: rt.ToolVersion().String(),
		},
		ApplicationRoot:  env.ApplicationRoot().String(),
		WorkingDirectory: wd.String(),
	}, nil
}

// Rows flattens the document into ordered key/value pairs for text output.
func (i *Info) Rows() [][2]string {
	return [][2]string{
		{"platform.family", i.Platform.Family},
		{"platform.is_64_bit", strconv.FormatBool(i.Platform.Is64Bit)},
		{"platform.is_unix", strconv.FormatBool(i.Platform.IsUnix)},
		{"platform.sandbox", i.Platform.Sandbox},
		{"runtime.name", i.Runtime.Name},
		{"runtime.go_version", i.Runtime.GoVersion},
		{"runtime.compiler", i.Runtime.Compiler},
		{"runtime.arch", i.Runtime.Arch},
		{"runtime.tool_version", i.Runtime.ToolVersion},
		{"application_root", i.ApplicationRoot},
		{"working_directory", i.WorkingDirectory},
	}
}

// Markdown renders the document as a Markdown table.
func (i *Info) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# Build environment\n\n")
	sb.WriteString("| Property | Value |\n")
	sb.WriteString("|---|---|\n")
	for _, row := range i.Rows() {
		fmt.Fprintf(&sb, "| %s | `%s` |\n", row[0], strings.ReplaceAll(row[1], "|", `\|`))
	}
	return sb.String()
}

// ResolvePaths resolves each tag through env. Failures are recorded in the
// entry and also returned, in tag order.
func ResolvePaths(env environment.Environment, tags []platform.SpecialPath) (Paths, []error) {
	out := Paths{Paths: make([]PathEntry, 0, len(tags))}
	var errs []error
	for _, tag := range tags {
		entry := PathEntry{Name: tag.String()}
		dir, err := env.SpecialPath(tag)
		if err != nil {
			entry.Error = err.Error()
			errs = append(errs, err)
		} else {
			entry.Path = dir.String()
		}
		out.Paths = append(out.Paths, entry)
	}
	return out, errs
}
