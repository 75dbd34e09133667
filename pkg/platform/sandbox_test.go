// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"os"
	"testing"
)

func TestDetectSandboxFrom(t *testing.T) {
	t.Parallel()

	exists := func(string) error { return nil }
	missing := func(string) error { return os.ErrNotExist }
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	tests := []struct {
		name   string
		getenv func(string) string
		stat   func(string) error
		want   SandboxType
	}{
		{"no sandbox", env(nil), missing, SandboxNone},
		{"flatpak info file", env(nil), exists, SandboxFlatpak},
		{"snap name set", env(map[string]string{"SNAP_NAME": "buildenv"}), missing, SandboxSnap},
		{"flatpak wins over snap", env(map[string]string{"SNAP_NAME": "buildenv"}), exists, SandboxFlatpak},
		{"stat error other than not-exist", env(nil), func(string) error { return errors.New("permission denied") }, SandboxNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := detectSandboxFrom(tt.getenv, tt.stat); got != tt.want {
				t.Errorf("detectSandboxFrom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectSandbox_Cached(t *testing.T) {
	t.Parallel()

	if first, second := DetectSandbox(), DetectSandbox(); first != second {
		t.Errorf("DetectSandbox() not stable: %q then %q", first, second)
	}
}

func TestSandboxType_String(t *testing.T) {
	t.Parallel()

	if got := SandboxNone.String(); got != "none" {
		t.Errorf("SandboxNone.String() = %q, want %q", got, "none")
	}
	if got := SandboxSnap.String(); got != "snap" {
		t.Errorf("SandboxSnap.String() = %q, want %q", got, "snap")
	}
}
