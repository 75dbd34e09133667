// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/invowk/buildenv/pkg/environment"
	"github.com/invowk/buildenv/pkg/platform"
	"github.com/invowk/buildenv/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps err to the process exit code. An explicit ExitError wins;
// otherwise invalid arguments exit 2, unsupported special paths exit 3 and
// everything else exits 1.
func exitCodeFor(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, environment.ErrInvalidArgument),
		errors.Is(err, platform.ErrUnknownSpecialPath):
		return types.ExitInvalidArgument
	case errors.Is(err, platform.ErrUnsupported):
		return types.ExitUnsupported
	default:
		return types.ExitFailure
	}
}
