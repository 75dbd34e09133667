// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"runtime"
	"testing"
)

func TestFilesystemPath_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    FilesystemPath
		wantErr bool
	}{
		{"absolute path", FilesystemPath("/usr/local/bin"), false},
		{"relative path", FilesystemPath("build/out"), false},
		{"windows style", FilesystemPath(`C:\Program Files`), false},
		{"dot path", FilesystemPath("."), false},
		{"empty is invalid", FilesystemPath(""), true},
		{"whitespace only is invalid", FilesystemPath("   "), true},
		{"tab only is invalid", FilesystemPath("\t"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.path.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("FilesystemPath(%q).Validate() returned unexpected error: %v", tt.path, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("FilesystemPath(%q).Validate() returned nil, want error", tt.path)
			}
			if !errors.Is(err, ErrInvalidFilesystemPath) {
				t.Errorf("error should wrap ErrInvalidFilesystemPath, got: %v", err)
			}
			var fpErr *InvalidFilesystemPathError
			if !errors.As(err, &fpErr) {
				t.Errorf("error should be *InvalidFilesystemPathError, got: %T", err)
			}
		})
	}
}

func TestFilesystemPath_IsAbs(t *testing.T) {
	t.Parallel()

	abs := FilesystemPath("/var/tmp")
	if runtime.GOOS == "windows" {
		abs = FilesystemPath(`C:\Windows\Temp`)
	}

	type absCase struct {
		name string
		path FilesystemPath
		want bool
	}
	tests := []absCase{
		{"absolute", abs, true},
		{"relative", FilesystemPath("out/bin"), false},
		{"dot", FilesystemPath("."), false},
		{"parent", FilesystemPath("../sibling"), false},
		{"empty", FilesystemPath(""), false},
	}
	if runtime.GOOS == "windows" {
		tests = append(tests,
			absCase{"rooted without drive", FilesystemPath(`\build`), false},
			absCase{"unc share", FilesystemPath(`\\server\share\build`), true},
		)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.path.IsAbs(); got != tt.want {
				t.Errorf("FilesystemPath(%q).IsAbs() = %v, want %v", tt.path, got, tt.want)
			}
			if got := tt.path.IsRelative(); got == tt.want {
				t.Errorf("FilesystemPath(%q).IsRelative() = %v, want %v", tt.path, got, !tt.want)
			}
		})
	}
}

func TestFilesystemPath_String(t *testing.T) {
	t.Parallel()
	p := FilesystemPath("/opt/build")
	if p.String() != "/opt/build" {
		t.Errorf("FilesystemPath.String() = %q, want %q", p.String(), "/opt/build")
	}
}
