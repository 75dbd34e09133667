// SPDX-License-Identifier: MPL-2.0

// Package environment is the single source of truth for "where am I and what
// does the OS environment look like" inside buildenv.
//
// A Provider composes a platform.Platform, a hostruntime.Runtime and an
// osenv.Accessor. It reports the working directory, the application root
// (the directory of the running executable), special paths and environment
// variables. It never caches the working directory or variables: every read
// goes to the OS so changes made elsewhere in the process are visible.
//
// The working directory is process-wide state. A Provider adds no locking;
// callers that read, modify and restore it across goroutines must serialize
// that sequence themselves.
package environment
