// SPDX-License-Identifier: MPL-2.0

// Package platform identifies the host operating system family and resolves
// special filesystem locations (temp, home, application data, ...) for it.
//
// Each family is a separate Platform variant. Variants read the process
// environment through an injectable lookup function, so a Windows variant can
// be exercised on Linux and vice versa.
package platform
