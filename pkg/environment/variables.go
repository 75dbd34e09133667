// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/invowk/buildenv/pkg/osenv"
)

type (
	// Variables is an immutable snapshot of environment variables with
	// case-insensitive names. The zero value is an empty snapshot.
	Variables struct {
		entries map[string]variable
	}

	variable struct {
		name  string
		value string
	}
)

// FoldVariables builds a snapshot from raw pairs. Names are compared without
// regard to case; when several pairs share a name the first one is kept and
// the rest are dropped, including its spelling of the name.
func FoldVariables(pairs []osenv.Pair) Variables {
	entries := make(map[string]variable, len(pairs))
	for _, p := range pairs {
		key := foldKey(p.Key)
		if _, seen := entries[key]; seen {
			continue
		}
		entries[key] = variable{name: p.Key, value: p.Value}
	}
	return Variables{entries: entries}
}

// NewVariables builds a snapshot from a map. Keys are folded in byte order,
// so among case duplicates the byte-smallest spelling wins ("PATH" over
// "Path" over "path").
func NewVariables(vars map[string]string) Variables {
	pairs := make([]osenv.Pair, 0, len(vars))
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		pairs = append(pairs, osenv.Pair{Key: k, Value: vars[k]})
	}
	return FoldVariables(pairs)
}

// foldKey upper-cases name rune by rune. Bytes that are not valid UTF-8 are
// copied unchanged so that names differing only there stay distinct.
func foldKey(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for i := 0; i < len(name); {
		r, size := utf8.DecodeRuneInString(name[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteByte(name[i])
		} else {
			sb.WriteRune(unicode.ToUpper(r))
		}
		i += size
	}
	return sb.String()
}

// Get returns the value of name, ignoring case.
func (v Variables) Get(name string) (string, bool) {
	e, ok := v.entries[foldKey(name)]
	return e.value, ok
}

// Has reports whether name is present, ignoring case.
func (v Variables) Has(name string) bool {
	_, ok := v.entries[foldKey(name)]
	return ok
}

// Len returns the number of distinct names.
func (v Variables) Len() int { return len(v.entries) }

// Names returns the retained spellings of every name, sorted
// case-insensitively.
func (v Variables) Names() []string {
	names := make([]string, 0, len(v.entries))
	for _, e := range v.entries {
		names = append(names, e.name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := strings.Compare(foldKey(a), foldKey(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return names
}

// Map returns a new map from the retained name spellings to values.
func (v Variables) Map() map[string]string {
	out := make(map[string]string, len(v.entries))
	for _, e := range v.entries {
		out[e.name] = e.value
	}
	return out
}

// Environ returns the snapshot as sorted KEY=VALUE strings, the shape
// os/exec expects.
func (v Variables) Environ() []string {
	names := v.Names()
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, n+"="+v.entries[foldKey(n)].value)
	}
	return out
}

// Equal reports whether both snapshots hold the same names and values.
func (v Variables) Equal(other Variables) bool {
	return maps.Equal(v.entries, other.entries)
}
