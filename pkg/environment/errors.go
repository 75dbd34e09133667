// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"errors"
	"fmt"

	"github.com/invowk/buildenv/pkg/platform"
	"github.com/invowk/buildenv/pkg/types"
)

var (
	// ErrInvalidArgument is the sentinel error wrapped by RelativePathError.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupported matches special paths with no mapping on the platform.
	ErrUnsupported = platform.ErrUnsupported
	// ErrInit is the sentinel error wrapped by InitError.
	ErrInit = errors.New("environment initialization failed")
	// ErrNilCollaborator is returned by New when the platform or runtime is nil.
	ErrNilCollaborator = errors.New("platform and runtime are required")
)

type (
	// RelativePathError is returned when the working directory is set to a
	// relative path. It wraps ErrInvalidArgument.
	RelativePathError struct {
		Path types.FilesystemPath
	}

	// InitError is returned by New when the OS cannot report a location the
	// provider needs. It wraps both ErrInit and the underlying error.
	InitError struct {
		// Step names what was being resolved ("application root", "working directory").
		Step string
		Err  error
	}
)

// Error implements the error interface.
func (e *RelativePathError) Error() string {
	return fmt.Sprintf("working directory can not be set to a relative path: %q", e.Path)
}

// Unwrap returns ErrInvalidArgument for errors.Is() compatibility.
func (e *RelativePathError) Unwrap() error { return ErrInvalidArgument }

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("%s: resolving %s: %v", ErrInit, e.Step, e.Err)
}

// Unwrap returns ErrInit and the underlying cause.
func (e *InitError) Unwrap() []error { return []error{ErrInit, e.Err} }
