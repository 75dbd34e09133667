// SPDX-License-Identifier: MPL-2.0

//go:build windows

package platform

import "golang.org/x/sys/windows"

var knownFolderIDs = map[SpecialPath]*windows.KNOWNFOLDERID{
	Home:                  windows.FOLDERID_Profile,
	ApplicationData:       windows.FOLDERID_RoamingAppData,
	LocalApplicationData:  windows.FOLDERID_LocalAppData,
	Cache:                 windows.FOLDERID_LocalAppData,
	CommonApplicationData: windows.FOLDERID_ProgramData,
	ProgramFiles:          windows.FOLDERID_ProgramFiles,
	ProgramFilesX86:       windows.FOLDERID_ProgramFilesX86,
	WindowsDir:            windows.FOLDERID_Windows,
}

// hostKnownFolder asks the shell for the folder behind p. Temp has no known
// folder and is resolved from TMP/TEMP like the OS itself does.
func hostKnownFolder(p SpecialPath) (string, bool) {
	id, ok := knownFolderIDs[p]
	if !ok {
		return "", false
	}
	dir, err := windows.KnownFolderPath(id, windows.KF_FLAG_DEFAULT)
	if err != nil || dir == "" {
		return "", false
	}
	return dir, true
}
