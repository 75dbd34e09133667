// SPDX-License-Identifier: MPL-2.0

// Package envexpand expands environment variable references in strings
// against an environment.Variables snapshot.
//
// Expand understands POSIX shell parameter syntax ($VAR, ${VAR},
// ${VAR:-default}, ...) through mvdan.cc/sh. ExpandWindows understands the
// cmd.exe %VAR% form. Neither runs commands: command substitution is an error.
package envexpand

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"

	"github.com/invowk/buildenv/pkg/environment"
)

// ErrCommandSubstitution is returned when the input contains $(...) or `...`.
var ErrCommandSubstitution = errors.New("command substitution is not allowed")

type (
	// Option configures Expand.
	Option func(*options)

	options struct {
		strict bool
	}
)

// Strict makes references to unset variables an error instead of expanding
// them to the empty string.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// Expand expands POSIX-style references in s. Quotes are kept literally, as
// in a here-document.
func Expand(s string, vars environment.Variables, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	word, err := syntax.NewParser().Document(strings.NewReader(s))
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", s, err)
	}

	cfg := &expand.Config{
		Env:     snapshotEnviron{vars: vars},
		NoUnset: o.strict,
		CmdSubst: func(_ io.Writer, _ *syntax.CmdSubst) error {
			return ErrCommandSubstitution
		},
	}
	out, err := expand.Document(cfg, word)
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", s, err)
	}
	return out, nil
}

// ExpandWindows replaces %NAME% references with their values. Unknown names
// and unmatched percent signs are left untouched, matching cmd.exe.
func ExpandWindows(s string, vars environment.Variables) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(s, '%')
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := strings.IndexByte(s[start+1:], '%')
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		end += start + 1

		name := s[start+1 : end]
		if v, ok := vars.Get(name); ok && name != "" {
			b.WriteString(s[:start])
			b.WriteString(v)
			s = s[end+1:]
			continue
		}
		// Keep the opening '%' and retry from the closing one, which may
		// start the next reference.
		b.WriteString(s[:end])
		s = s[end:]
	}
}

// snapshotEnviron adapts environment.Variables to expand.Environ.
type snapshotEnviron struct {
	vars environment.Variables
}

func (e snapshotEnviron) Get(name string) expand.Variable {
	v, ok := e.vars.Get(name)
	if !ok {
		return expand.Variable{}
	}
	return expand.Variable{Set: true, Exported: true, Kind: expand.String, Str: v}
}

func (e snapshotEnviron) Each(fn func(name string, vr expand.Variable) bool) {
	for _, name := range e.vars.Names() {
		if !fn(name, e.Get(name)) {
			return
		}
	}
}
