// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package platform

func hostKnownFolder(SpecialPath) (string, bool) { return "", false }
