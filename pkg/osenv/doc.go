// SPDX-License-Identifier: MPL-2.0

// Package osenv is the narrow boundary between buildenv and the process's
// OS state: current directory, environment variables and executable location.
// Everything above it is written against the Accessor interface so it can be
// tested without touching the real process.
package osenv
