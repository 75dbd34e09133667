// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"strings"

	"github.com/invowk/buildenv/pkg/types"
)

// windowsPlatform resolves special paths from the native known-folder API when
// running on Windows, and from the standard environment variables otherwise.
type windowsPlatform struct{ base }

func (w *windowsPlatform) SpecialPath(p SpecialPath) (types.FilesystemPath, error) {
	if w.knownFolder != nil {
		if dir, ok := w.knownFolder(p); ok {
			return types.FilesystemPath(dir), nil
		}
	}

	switch p {
	case Temp:
		if dir, ok := w.firstEnv("TMP", "TEMP"); ok {
			return types.FilesystemPath(dir), nil
		}
		return w.profileDir(p, "LOCALAPPDATA", `AppData\Local`, "Temp")
	case Home:
		return w.userProfile(p)
	case ApplicationData:
		return w.profileDir(p, "APPDATA", `AppData\Roaming`)
	case LocalApplicationData, Cache:
		return w.profileDir(p, "LOCALAPPDATA", `AppData\Local`)
	case CommonApplicationData:
		return w.required(p, "ProgramData", "ALLUSERSPROFILE")
	case ProgramFiles:
		if w.is64Bit {
			return w.required(p, "ProgramW6432", "ProgramFiles")
		}
		return w.required(p, "ProgramFiles")
	case ProgramFilesX86:
		if w.is64Bit {
			return w.required(p, "ProgramFiles(x86)")
		}
		return w.required(p, "ProgramFiles")
	case WindowsDir:
		return w.required(p, "SystemRoot", "windir")
	default:
		return "", w.unsupported(p)
	}
}

func (w *windowsPlatform) firstEnv(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := w.env(k); ok {
			return v, true
		}
	}
	return "", false
}

func (w *windowsPlatform) required(p SpecialPath, keys ...string) (types.FilesystemPath, error) {
	if v, ok := w.firstEnv(keys...); ok {
		return types.FilesystemPath(v), nil
	}
	return "", w.unresolved(p, strings.Join(keys, " and ")+" are not set")
}

func (w *windowsPlatform) userProfile(p SpecialPath) (types.FilesystemPath, error) {
	if v, ok := w.env("USERPROFILE"); ok {
		return types.FilesystemPath(v), nil
	}
	drive, okDrive := w.env("HOMEDRIVE")
	homePath, okPath := w.env("HOMEPATH")
	if okDrive && okPath {
		return types.FilesystemPath(drive + homePath), nil
	}
	return "", w.unresolved(p, "USERPROFILE is not set")
}

// profileDir prefers the variable key and falls back to a directory below
// the user profile. rel[0] is the profile-relative location that key
// normally points at; the remaining elements are appended in both cases.
func (w *windowsPlatform) profileDir(p SpecialPath, key string, rel ...string) (types.FilesystemPath, error) {
	if v, ok := w.env(key); ok {
		return joinWindows(v, rel[1:]...), nil
	}
	profile, err := w.userProfile(p)
	if err != nil {
		return "", err
	}
	return joinWindows(string(profile), rel...), nil
}

// joinWindows joins elements with a backslash regardless of the host OS, so
// a Windows variant produces Windows paths even when resolved elsewhere.
func joinWindows(root string, elem ...string) types.FilesystemPath {
	parts := []string{strings.TrimRight(root, `\/`)}
	for _, e := range elem {
		if e = strings.Trim(e, `\/`); e != "" {
			parts = append(parts, e)
		}
	}
	if len(parts) == 1 {
		return types.FilesystemPath(root)
	}
	return types.FilesystemPath(strings.Join(parts, `\`))
}
