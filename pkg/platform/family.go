// SPDX-License-Identifier: MPL-2.0

package platform

import "strings"

// Operating system families.
const (
	FamilyUnknown Family = iota
	FamilyWindows
	FamilyLinux
	FamilyOSX
	FamilyFreeBSD
)

// Family is the OS category used to select special-path resolution rules.
type Family int

// FamilyFromGOOS maps a runtime.GOOS value to its Family.
func FamilyFromGOOS(goos string) Family {
	switch strings.ToLower(goos) {
	case Windows:
		return FamilyWindows
	case Linux, "android":
		return FamilyLinux
	case Darwin, "ios":
		return FamilyOSX
	case FreeBSD:
		return FamilyFreeBSD
	default:
		return FamilyUnknown
	}
}

// IsUnix reports whether the family follows Unix filesystem conventions.
func (f Family) IsUnix() bool {
	return f == FamilyLinux || f == FamilyOSX || f == FamilyFreeBSD
}

func (f Family) String() string {
	switch f {
	case FamilyWindows:
		return "Windows"
	case FamilyLinux:
		return "Linux"
	case FamilyOSX:
		return "OSX"
	case FamilyFreeBSD:
		return "FreeBSD"
	default:
		return "Unknown"
	}
}
