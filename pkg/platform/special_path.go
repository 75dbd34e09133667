// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"strings"
)

// Special paths. The set is closed; platform variants map each one or report
// it as unsupported.
const (
	// Temp is the per-user temporary directory.
	Temp SpecialPath = iota + 1
	// Home is the current user's home directory.
	Home
	// ApplicationData is the per-user, roaming configuration directory.
	ApplicationData
	// LocalApplicationData is the per-user, machine-local data directory.
	LocalApplicationData
	// CommonApplicationData is the machine-wide data directory.
	CommonApplicationData
	// Cache is the per-user cache directory.
	Cache
	// ProgramFiles is the native program installation directory (Windows only).
	ProgramFiles
	// ProgramFilesX86 is the 32-bit program installation directory (Windows only).
	ProgramFilesX86
	// WindowsDir is the operating system directory (Windows only).
	WindowsDir
)

// ErrUnknownSpecialPath is returned by ParseSpecialPath for unrecognized names.
var ErrUnknownSpecialPath = errors.New("unknown special path")

var specialPathNames = [...]string{
	Temp:                  "temp",
	Home:                  "home",
	ApplicationData:       "app-data",
	LocalApplicationData:  "local-app-data",
	CommonApplicationData: "common-app-data",
	Cache:                 "cache",
	ProgramFiles:          "program-files",
	ProgramFilesX86:       "program-files-x86",
	WindowsDir:            "windows",
}

// SpecialPath tags a well-known directory whose location varies by platform.
type SpecialPath int

// SpecialPaths returns every defined SpecialPath in declaration order.
func SpecialPaths() []SpecialPath {
	out := make([]SpecialPath, 0, len(specialPathNames)-1)
	for p := Temp; p <= WindowsDir; p++ {
		out = append(out, p)
	}
	return out
}

// ParseSpecialPath parses the kebab-case name of a SpecialPath, ignoring case.
func ParseSpecialPath(name string) (SpecialPath, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, p := range SpecialPaths() {
		if specialPathNames[p] == want {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSpecialPath, name)
}

// IsValid reports whether p is one of the defined tags.
func (p SpecialPath) IsValid() bool {
	return p >= Temp && p <= WindowsDir
}

func (p SpecialPath) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("SpecialPath(%d)", int(p))
	}
	return specialPathNames[p]
}
