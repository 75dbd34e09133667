// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// The user file is <ApplicationData>/buildenv/config.cue, where ApplicationData
// is resolved through pkg/platform (XDG_CONFIG_HOME or ~/.config on Linux,
// ~/Library/Application Support on macOS, %APPDATA% on Windows). When it does not
// exist, ./buildenv.cue is tried, then the built-in defaults. BUILDENV_* environment
// variables override individual keys.
//
// Files are validated against the embedded config_schema.cue before being merged.
package config
