// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

func homeVar() string {
	if runtime.GOOS == "windows" {
		return "USERPROFILE"
	}
	return "HOME"
}

func TestSetHomeDir(t *testing.T) {
	tmpDir := t.TempDir()
	original, hadOriginal := os.LookupEnv(homeVar())

	cleanup := SetHomeDir(t, tmpDir)
	if got := os.Getenv(homeVar()); got != tmpDir {
		t.Errorf("%s = %q, want %q", homeVar(), got, tmpDir)
	}

	cleanup()
	got, had := os.LookupEnv(homeVar())
	if had != hadOriginal || got != original {
		t.Errorf("after cleanup %s = %q (set=%v), want %q (set=%v)", homeVar(), got, had, original, hadOriginal)
	}
}

func TestMustSetenvAndUnsetenv(t *testing.T) {
	const key = "BUILDENV_TESTUTIL_VAR"

	restore := MustUnsetenv(t, key)
	if _, ok := os.LookupEnv(key); ok {
		t.Fatalf("%s still set after MustUnsetenv", key)
	}

	undo := MustSetenv(t, key, "one")
	if got := os.Getenv(key); got != "one" {
		t.Errorf("%s = %q, want %q", key, got, "one")
	}
	undo()
	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s set after undo, want unset", key)
	}
	restore()
}

func TestMustChdir(t *testing.T) {
	dir := CanonicalDir(t, t.TempDir())
	before, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	restore := MustChdir(t, dir)
	wd, _ := os.Getwd()
	if CanonicalDir(t, wd) != dir {
		t.Errorf("Getwd() = %q, want %q", wd, dir)
	}

	restore()
	after, _ := os.Getwd()
	if after != before {
		t.Errorf("after restore Getwd() = %q, want %q", after, before)
	}
}
