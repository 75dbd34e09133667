// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load config"},
			expected: "failed to load config",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "resolve special path",
				Resource:  "program-files",
			},
			expected: "failed to resolve special path: program-files",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "expand string",
				Cause:     errors.New("HOME: unbound variable"),
			},
			expected: "failed to expand string: HOME: unbound variable",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "change working directory",
				Resource:  "build/out",
				Cause:     errors.New("path must be absolute"),
			},
			expected: "failed to change working directory: build/out: path must be absolute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "test", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if (&ActionableError{Operation: "test"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("permission denied")
	chained := &wrapErr{msg: "stat /opt/app", inner: root}

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "simple error non-verbose",
			err:      &ActionableError{Operation: "load config"},
			contains: []string{"failed to load config"},
			excludes: []string{"Error chain"},
		},
		{
			name: "error with suggestions",
			err: &ActionableError{
				Operation:   "load config",
				Resource:    "./buildenv.cue",
				Suggestions: []string{"Run 'buildenv config init'", "Check file permissions"},
			},
			contains: []string{
				"failed to load config",
				"./buildenv.cue",
				"• Run 'buildenv config init'",
				"• Check file permissions",
			},
		},
		{
			name: "verbose includes chain",
			err: &ActionableError{
				Operation: "initialize environment",
				Cause:     chained,
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. stat /opt/app: permission denied",
				"2. permission denied",
			},
		},
		{
			name: "non-verbose omits chain",
			err: &ActionableError{
				Operation: "initialize environment",
				Cause:     chained,
			},
			contains: []string{"failed to initialize environment: stat /opt/app: permission denied"},
			excludes: []string{"Error chain:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Format(tt.verbose)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Format(%v) missing %q in:\n%s", tt.verbose, want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("Format(%v) should not contain %q in:\n%s", tt.verbose, unwanted, got)
				}
			}
		})
	}
}

func TestActionableError_Guidance(t *testing.T) {
	t.Parallel()

	linked := &ActionableError{Operation: "resolve special path", Issue: UnsupportedSpecialPathId}
	if g := linked.Guidance(); g == nil || g.Id() != UnsupportedSpecialPathId {
		t.Errorf("Guidance() = %v, want issue %d", g, UnsupportedSpecialPathId)
	}

	if (&ActionableError{Operation: "x"}).Guidance() != nil {
		t.Error("Guidance() should be nil when no issue is linked")
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("parse error")
	err := NewErrorContext().
		WithOperation("load config").
		WithResource("/home/dev/.config/buildenv/config.cue").
		WithSuggestion("Check syntax").
		WithSuggestions("Verify permissions", "Run 'buildenv config path'").
		WithIssue(ConfigLoadFailedId).
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil")
	}
	if err.Operation != "load config" {
		t.Errorf("Operation = %q", err.Operation)
	}
	if err.Resource != "/home/dev/.config/buildenv/config.cue" {
		t.Errorf("Resource = %q", err.Resource)
	}
	if len(err.Suggestions) != 3 {
		t.Errorf("Suggestions count = %d, want 3", len(err.Suggestions))
	}
	if err.Issue != ConfigLoadFailedId {
		t.Errorf("Issue = %d, want %d", err.Issue, ConfigLoadFailedId)
	}
	if !errors.Is(err, cause) {
		t.Error("Build() should keep the cause")
	}

	if NewErrorContext().WithResource("some/path").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
}

func TestErrorContext_BuildError(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().WithOperation("test").BuildError()
	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("BuildError() = %T, want *ActionableError", err)
	}

	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() should return nil when operation missing")
	}
}

func TestWrapHelpers(t *testing.T) {
	t.Parallel()

	cause := errors.New("original error")

	op := WrapWithOperation(cause, "read environment")
	if op == nil || op.Operation != "read environment" || !errors.Is(op, cause) {
		t.Errorf("WrapWithOperation() = %+v", op)
	}

	ctx := WrapWithContext(cause, "resolve special path", "cache")
	if ctx == nil || ctx.Resource != "cache" || !errors.Is(ctx, cause) {
		t.Errorf("WrapWithContext() = %+v", ctx)
	}

	if WrapWithOperation(nil, "x") != nil || WrapWithContext(nil, "x", "y") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestErrorContext_SuggestionsAreNotShared(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("resolve special path").WithSuggestion("first")
	err1 := ctx.Build()
	err2 := ctx.WithSuggestions("second", "third").Build()

	if len(err1.Suggestions) != 1 {
		t.Errorf("first error suggestions = %v, want one", err1.Suggestions)
	}
	if got := strings.Join(err2.Suggestions, ","); got != "first,second,third" {
		t.Errorf("second error suggestions = %q", got)
	}
}

func TestErrorContext_Reuse(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().
		WithOperation("resolve special path").
		WithResource("home")

	err1 := ctx.Wrap(errors.New("error 1")).Build()
	err2 := ctx.Wrap(errors.New("error 2")).Build()

	if err1.Cause.Error() == err2.Cause.Error() {
		t.Error("reused context should allow different causes")
	}
	if err1.Operation != err2.Operation {
		t.Error("reused context should preserve operation")
	}
}

type wrapErr struct {
	msg   string
	inner error
}

func (e *wrapErr) Error() string { return e.msg + ": " + e.inner.Error() }
func (e *wrapErr) Unwrap() error { return e.inner }
