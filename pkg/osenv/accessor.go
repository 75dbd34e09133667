// SPDX-License-Identifier: MPL-2.0

package osenv

//go:generate mockgen -destination=mock_accessor.go -package=osenv github.com/invowk/buildenv/pkg/osenv Accessor

import (
	"os"
	"strings"
)

type (
	// Accessor reads and mutates process-level OS state.
	Accessor interface {
		Getwd() (string, error)
		Chdir(dir string) error
		LookupEnv(key string) (string, bool)
		// Environ returns every variable in OS order. Keys that differ only
		// by case are all reported.
		Environ() []Pair
		// Executable returns the path of the running executable.
		Executable() (string, error)
	}

	// Pair is one raw KEY=VALUE entry of the process environment.
	Pair struct {
		Key   string
		Value string
	}

	systemAccessor struct{}
)

// System returns the Accessor backed by the os package.
func System() Accessor { return systemAccessor{} }

func (systemAccessor) Getwd() (string, error)              { return os.Getwd() }
func (systemAccessor) Chdir(dir string) error              { return os.Chdir(dir) }
func (systemAccessor) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (systemAccessor) Environ() []Pair                     { return ParseEnviron(os.Environ()) }
func (systemAccessor) Executable() (string, error)         { return os.Executable() }

// ParseEnviron splits KEY=VALUE strings into pairs, preserving order and
// duplicates. The separator is the first '=' after the first byte, so the
// Windows per-drive entries ("=C:=C:\build") keep their leading '='.
// Entries without a separator are reported with an empty value.
func ParseEnviron(environ []string) []Pair {
	pairs := make([]Pair, 0, len(environ))
	for _, kv := range environ {
		if kv == "" {
			continue
		}
		idx := strings.IndexByte(kv[1:], '=')
		if idx < 0 {
			pairs = append(pairs, Pair{Key: kv})
			continue
		}
		idx++
		pairs = append(pairs, Pair{Key: kv[:idx], Value: kv[idx+1:]})
	}
	return pairs
}
