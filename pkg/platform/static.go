// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"maps"

	"github.com/invowk/buildenv/pkg/types"
)

// Static is a Platform backed by a fixed special-path table. Tags missing
// from Paths are unsupported. It is meant for tests and for hosts that
// configure their directories explicitly.
type Static struct {
	FamilyValue  Family
	Is64BitValue bool
	SandboxValue SandboxType
	Paths        map[SpecialPath]types.FilesystemPath
}

// NewStatic returns a Static platform for family with a copy of paths.
func NewStatic(family Family, paths map[SpecialPath]types.FilesystemPath) *Static {
	return &Static{
		FamilyValue:  family,
		Is64BitValue: true,
		Paths:        maps.Clone(paths),
	}
}

func (s *Static) Family() Family       { return s.FamilyValue }
func (s *Static) Is64Bit() bool        { return s.Is64BitValue }
func (s *Static) IsUnix() bool         { return s.FamilyValue.IsUnix() }
func (s *Static) Sandbox() SandboxType { return s.SandboxValue }

// SpecialPath returns the configured path for p.
func (s *Static) SpecialPath(p SpecialPath) (types.FilesystemPath, error) {
	if dir, ok := s.Paths[p]; ok {
		return dir, nil
	}
	return "", &UnsupportedSpecialPathError{Family: s.FamilyValue, Path: p}
}
