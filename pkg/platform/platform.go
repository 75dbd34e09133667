// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/invowk/buildenv/pkg/types"
)

// ErrUnsupported is the sentinel error wrapped by UnsupportedSpecialPathError.
var ErrUnsupported = errors.New("unsupported special path")

type (
	// Platform identifies the host OS family and resolves special paths for it.
	// Implementations are immutable and safe to share.
	Platform interface {
		Family() Family
		Is64Bit() bool
		IsUnix() bool
		Sandbox() SandboxType
		// SpecialPath returns the absolute directory for p, or an
		// *UnsupportedSpecialPathError when p has no mapping on this family.
		SpecialPath(p SpecialPath) (types.FilesystemPath, error)
	}

	// UnsupportedSpecialPathError is returned when a special path cannot be
	// resolved on a platform family. It wraps ErrUnsupported.
	UnsupportedSpecialPathError struct {
		Family Family
		Path   SpecialPath
		// Reason is empty when the family has no mapping for Path at all, and
		// describes the missing input otherwise (e.g. "HOME is not set").
		Reason string
	}

	// Option configures a Platform built by New or Detect.
	Option func(*base)

	// LookupEnvFunc has the signature of os.LookupEnv.
	LookupEnvFunc func(key string) (string, bool)

	base struct {
		family      Family
		is64Bit     bool
		sandbox     SandboxType
		lookupEnv   LookupEnvFunc
		knownFolder func(SpecialPath) (string, bool)
	}
)

// Error implements the error interface.
func (e *UnsupportedSpecialPathError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("special path %q cannot be resolved on %s: %s", e.Path, e.Family, e.Reason)
	}
	return fmt.Sprintf("special path %q is not supported on %s", e.Path, e.Family)
}

// Unwrap returns ErrUnsupported for errors.Is() compatibility.
func (e *UnsupportedSpecialPathError) Unwrap() error { return ErrUnsupported }

// WithLookupEnv replaces os.LookupEnv as the source of environment variables
// used during resolution.
func WithLookupEnv(fn LookupEnvFunc) Option {
	return func(b *base) { b.lookupEnv = fn }
}

// With64Bit overrides the detected process bitness.
func With64Bit(is64 bool) Option {
	return func(b *base) { b.is64Bit = is64 }
}

// WithSandbox overrides sandbox detection.
func WithSandbox(st SandboxType) Option {
	return func(b *base) { b.sandbox = st }
}

// withKnownFolder installs an OS-native folder lookup consulted before the
// environment. Only Detect uses it, since it queries the running host.
func withKnownFolder(fn func(SpecialPath) (string, bool)) Option {
	return func(b *base) { b.knownFolder = fn }
}

// New builds the Platform variant for family. Unlike Detect, New never probes
// the host for sandboxing or native folders, which makes it suitable for
// resolving another family's paths.
func New(family Family, opts ...Option) Platform {
	b := base{
		family:    family,
		is64Bit:   strconv.IntSize == 64,
		sandbox:   SandboxNone,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(&b)
	}

	switch family {
	case FamilyWindows:
		return &windowsPlatform{base: b}
	case FamilyOSX:
		return &darwinPlatform{base: b}
	case FamilyLinux, FamilyFreeBSD:
		return &unixPlatform{base: b}
	default:
		return &unknownPlatform{base: b}
	}
}

// Detect builds the Platform for the running host.
func Detect(opts ...Option) Platform {
	detected := []Option{
		WithSandbox(DetectSandbox()),
		withKnownFolder(hostKnownFolder),
	}
	return New(FamilyFromGOOS(runtime.GOOS), append(detected, opts...)...)
}

func (b *base) Family() Family       { return b.family }
func (b *base) Is64Bit() bool        { return b.is64Bit }
func (b *base) IsUnix() bool         { return b.family.IsUnix() }
func (b *base) Sandbox() SandboxType { return b.sandbox }

// env returns the value of key when it is set and non-empty.
func (b *base) env(key string) (string, bool) {
	v, ok := b.lookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (b *base) unsupported(p SpecialPath) error {
	return &UnsupportedSpecialPathError{Family: b.family, Path: p}
}

func (b *base) unresolved(p SpecialPath, reason string) error {
	return &UnsupportedSpecialPathError{Family: b.family, Path: p, Reason: reason}
}

type unknownPlatform struct{ base }

func (u *unknownPlatform) SpecialPath(p SpecialPath) (types.FilesystemPath, error) {
	return "", u.unsupported(p)
}
