// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path"

	"github.com/invowk/buildenv/pkg/types"
)

// unixPlatform resolves special paths for Linux and FreeBSD following the
// XDG base directory conventions.
type unixPlatform struct{ base }

func (u *unixPlatform) SpecialPath(p SpecialPath) (types.FilesystemPath, error) {
	switch p {
	case Temp:
		return types.FilesystemPath(u.tempDir()), nil
	case Home:
		return u.home(p)
	case ApplicationData:
		return u.xdg(p, "XDG_CONFIG_HOME", ".config")
	case LocalApplicationData:
		return u.xdg(p, "XDG_DATA_HOME", ".local", "share")
	case Cache:
		return u.xdg(p, "XDG_CACHE_HOME", ".cache")
	case CommonApplicationData:
		return "/usr/share", nil
	default:
		return "", u.unsupported(p)
	}
}

func (b *base) tempDir() string {
	if dir, ok := b.env("TMPDIR"); ok {
		return dir
	}
	return "/tmp"
}

func (b *base) home(p SpecialPath) (types.FilesystemPath, error) {
	home, ok := b.env("HOME")
	if !ok {
		return "", b.unresolved(p, "HOME is not set")
	}
	return types.FilesystemPath(home), nil
}

// xdg returns the XDG variable when it holds an absolute path and falls back
// to $HOME joined with def otherwise. Relative XDG values are ignored.
func (u *unixPlatform) xdg(p SpecialPath, key string, def ...string) (types.FilesystemPath, error) {
	if dir, ok := u.env(key); ok && path.IsAbs(dir) {
		return types.FilesystemPath(dir), nil
	}
	home, err := u.home(p)
	if err != nil {
		return "", err
	}
	return types.FilesystemPath(path.Join(append([]string{string(home)}, def...)...)), nil
}
