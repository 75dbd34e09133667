// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that touch process-wide state
// (working directory, environment variables, home directory). Each helper
// fails the test on error and returns a function that restores the previous
// state, suitable for t.Cleanup.
//
// Tests using these helpers mutate global state and must not call t.Parallel.
package testutil
