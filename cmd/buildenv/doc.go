// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for buildenv.
//
// The root command loads configuration, builds the logger and the
// environment.Environment for the invocation, and applies --chdir. The
// subcommands (info, path, env, expand, config) only read from that
// environment and render the result as text, JSON, YAML or TOML.
package cmd
