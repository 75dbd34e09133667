// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path"

	"github.com/invowk/buildenv/pkg/types"
)

type darwinPlatform struct{ base }

func (d *darwinPlatform) SpecialPath(p SpecialPath) (types.FilesystemPath, error) {
	switch p {
	case Temp:
		return types.FilesystemPath(d.tempDir()), nil
	case Home:
		return d.home(p)
	case ApplicationData, LocalApplicationData:
		return d.underHome(p, "Library", "Application Support")
	case Cache:
		return d.underHome(p, "Library", "Caches")
	case CommonApplicationData:
		return "/Library/Application Support", nil
	default:
		return "", d.unsupported(p)
	}
}

func (d *darwinPlatform) underHome(p SpecialPath, elem ...string) (types.FilesystemPath, error) {
	home, err := d.home(p)
	if err != nil {
		return "", err
	}
	return types.FilesystemPath(path.Join(append([]string{string(home)}, elem...)...)), nil
}
