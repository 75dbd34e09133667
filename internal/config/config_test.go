// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/invowk/buildenv/internal/issue"
	"github.com/invowk/buildenv/internal/testutil"
	"github.com/invowk/buildenv/pkg/platform"
	"github.com/invowk/buildenv/pkg/types"
)

// testPlatform returns a Linux platform whose ApplicationData is appData.
func testPlatform(appData string) platform.Platform {
	return platform.NewStatic(platform.FamilyLinux, map[platform.SpecialPath]types.FilesystemPath{
		platform.ApplicationData: types.FilesystemPath(appData),
	})
}

// writeUserConfig writes content to <appData>/buildenv/config.cue.
func writeUserConfig(t *testing.T, appData, content string) string {
	t.Helper()
	dir := filepath.Join(appData, AppName)
	testutil.MustMkdirAll(t, dir, 0o755)
	p := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	testutil.MustWriteFile(t, p, content)
	return p
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.LogLevel != LogLevelWarn {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("Output.Format = %q, want text", cfg.Output.Format)
	}
	if !cfg.Output.Color {
		t.Error("Output.Color should default to true")
	}
	if len(cfg.Env.Mask) != 3 {
		t.Errorf("Env.Mask = %v, want three default patterns", cfg.Env.Mask)
	}
}

func TestConfigDir(t *testing.T) {
	t.Parallel()

	dir, err := ConfigDir(testPlatform("/home/dev/.config"))
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join("/home/dev/.config", AppName); dir.String() != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}

	_, err = ConfigDir(platform.NewStatic(platform.FamilyLinux, nil))
	if !errors.Is(err, platform.ErrUnsupported) {
		t.Errorf("ConfigDir() without ApplicationData error = %v, want ErrUnsupported", err)
	}
}

func TestConfigDir_DetectedUnixPlatform(t *testing.T) {
	// Not parallel: mutates HOME and XDG_CONFIG_HOME.
	if runtime.GOOS != "linux" && runtime.GOOS != "freebsd" {
		t.Skip("XDG layout only")
	}

	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Cleanup(testutil.MustUnsetenv(t, "XDG_CONFIG_HOME"))

	dir, err := ConfigDir(platform.Detect())
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir.String() != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	p := NewProvider(testPlatform(tmp))
	opts := LoadOptions{WorkDir: tmp}

	cfg, err := p.Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != LogLevelWarn || cfg.Output.Format != FormatText || !cfg.Output.Color {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}

	located, err := p.Locate(opts)
	if err != nil || located != "" {
		t.Errorf("Locate() = %q, %v; want empty", located, err)
	}
}

func TestLoad_UserConfigMergesOverDefaults(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	cfgPath := writeUserConfig(t, tmp, `
log_level: "debug"
output: format: "yaml"
`)
	p := NewProvider(testPlatform(tmp))
	opts := LoadOptions{WorkDir: tmp}

	cfg, err := p.Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != LogLevelDebug {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Output.Format != FormatYAML {
		t.Errorf("Output.Format = %q, want yaml", cfg.Output.Format)
	}
	if !cfg.Output.Color {
		t.Error("Output.Color should keep its default")
	}
	if len(cfg.Env.Mask) != 3 {
		t.Errorf("Env.Mask = %v, want defaults", cfg.Env.Mask)
	}

	located, err := p.Locate(opts)
	if err != nil || located != cfgPath {
		t.Errorf("Locate() = %q, %v; want %q", located, err, cfgPath)
	}
}

func TestLoad_LocalConfigFallback(t *testing.T) {
	t.Parallel()

	appData := t.TempDir()
	work := t.TempDir()
	localPath := filepath.Join(work, LocalConfigFileName)
	testutil.MustWriteFile(t, localPath, `env: mask: ["*_KEY"]`)

	p := NewProvider(testPlatform(appData))
	cfg, err := p.Load(context.Background(), LoadOptions{WorkDir: work})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Env.Mask) != 1 || cfg.Env.Mask[0] != "*_KEY" {
		t.Errorf("Env.Mask = %v, want [*_KEY]", cfg.Env.Mask)
	}

	// The user config wins over the local file.
	writeUserConfig(t, appData, `log_level: "error"`)
	cfg, err = p.Load(context.Background(), LoadOptions{WorkDir: work})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != LogLevelError || len(cfg.Env.Mask) != 3 {
		t.Errorf("Load() = %+v, want user config only", cfg)
	}
}

func TestLoad_ConfigDirPathOverride(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	dir := filepath.Join(tmp, "custom")
	testutil.MustMkdirAll(t, dir, 0o755)
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), `output: color: false`)

	// The platform would point elsewhere; the override must win.
	p := NewProvider(testPlatform(filepath.Join(tmp, "unused")))
	cfg, err := p.Load(context.Background(), LoadOptions{ConfigDirPath: dir, WorkDir: tmp})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Color {
		t.Error("Output.Color = true, want false from override dir")
	}
}

func TestLoad_UnresolvableConfigDirFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	p := NewProvider(platform.NewStatic(platform.FamilyLinux, nil))
	cfg, err := p.Load(context.Background(), LoadOptions{WorkDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != LogLevelWarn {
		t.Errorf("LogLevel = %q, want default", cfg.LogLevel)
	}
}

func TestLoad_CustomPath_Valid(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	custom := filepath.Join(tmp, "custom-config.cue")
	testutil.MustWriteFile(t, custom, `
log_level: "info"
output: {
	format: "toml"
	color:  false
}
`)

	p := NewProvider(testPlatform(tmp))
	opts := LoadOptions{ConfigFilePath: custom, WorkDir: tmp}
	cfg, err := p.Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != LogLevelInfo || cfg.Output.Format != FormatTOML || cfg.Output.Color {
		t.Errorf("Load() = %+v", cfg)
	}

	if located, _ := p.Locate(opts); located != custom {
		t.Errorf("Locate() = %q, want %q", located, custom)
	}
}

func TestLoad_MalformedMaskPattern(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	custom := filepath.Join(tmp, "masks.cue")
	testutil.MustWriteFile(t, custom, `
env: mask: ["*_KEY", "["]
`)

	_, err := NewProvider(testPlatform(tmp)).Load(context.Background(), LoadOptions{ConfigFilePath: custom, WorkDir: tmp})
	if !errors.Is(err, ErrInvalidMaskPattern) {
		t.Fatalf("Load() error = %v, want ErrInvalidMaskPattern", err)
	}
	if !errors.Is(err, path.ErrBadPattern) {
		t.Errorf("Load() error = %v, want path.ErrBadPattern in the chain", err)
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "does-not-exist.cue")
	_, err := NewProvider(testPlatform(t.TempDir())).Load(context.Background(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("expected Load() to fail for missing config file")
	}
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("error should wrap ErrConfigNotFound, got: %v", err)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("expected *issue.ActionableError")
	}
	if ae.Resource != missing {
		t.Errorf("Resource = %q, want %q", ae.Resource, missing)
	}
	if ae.Issue != issue.ConfigLoadFailedId {
		t.Errorf("Issue = %d, want ConfigLoadFailedId", ae.Issue)
	}
}

func TestLoad_InvalidConfig_ReturnsActionableError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax error", `this is not valid CUE syntax {{{{`, ""},
		{"wrong type", `log_level: 123`, "log_level"},
		{"unknown value", `output: format: "xml"`, "output.format"},
		{"unknown field", `colour: true`, "colour"},
		{"empty mask pattern", `env: mask: [""]`, "env.mask"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmp := t.TempDir()
			cfgPath := writeUserConfig(t, tmp, tt.content)

			_, err := NewProvider(testPlatform(tmp)).Load(context.Background(), LoadOptions{WorkDir: tmp})
			if err == nil {
				t.Fatal("expected Load() to fail")
			}

			errStr := err.Error()
			if !strings.Contains(errStr, "load configuration") {
				t.Errorf("error should contain operation, got: %s", errStr)
			}
			if !strings.Contains(errStr, cfgPath) {
				t.Errorf("error should contain resource path, got: %s", errStr)
			}
			if tt.want != "" && !strings.Contains(errStr, tt.want) {
				t.Errorf("error should mention %q, got: %s", tt.want, errStr)
			}
		})
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider(testPlatform(t.TempDir())).Load(ctx, LoadOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	tmp := t.TempDir()
	writeUserConfig(t, tmp, `log_level: "info"`)
	t.Setenv(EnvPrefix+"_LOG_LEVEL", "debug")
	t.Setenv(EnvPrefix+"_OUTPUT_FORMAT", "json")
	t.Setenv(EnvPrefix+"_OUTPUT_COLOR", "false")

	cfg, err := NewProvider(testPlatform(tmp)).Load(context.Background(), LoadOptions{WorkDir: tmp})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != LogLevelDebug {
		t.Errorf("LogLevel = %q, want debug from environment", cfg.LogLevel)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("Output.Format = %q, want json from environment", cfg.Output.Format)
	}
	if cfg.Output.Color {
		t.Error("Output.Color = true, want false from environment")
	}
}

func TestLoad_InvalidEnvironmentOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvPrefix+"_OUTPUT_FORMAT", "xml")

	_, err := NewProvider(testPlatform(tmp)).Load(context.Background(), LoadOptions{WorkDir: tmp})
	if !errors.Is(err, ErrInvalidOutputFormat) {
		t.Fatalf("Load() error = %v, want ErrInvalidOutputFormat", err)
	}
	if !strings.Contains(err.Error(), "validate configuration") {
		t.Errorf("error should name the operation, got: %v", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := types.FilesystemPath(filepath.Join(t.TempDir(), AppName))

	cfgPath, written, err := CreateDefaultConfig(dir, false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if !written {
		t.Error("first call should write the file")
	}
	data, err := os.ReadFile(cfgPath.String())
	if err != nil {
		t.Fatalf("reading generated config: %v", err)
	}
	if string(data) != GenerateCUE(DefaultConfig()) {
		t.Errorf("generated file differs from GenerateCUE(DefaultConfig()):\n%s", data)
	}

	testutil.MustWriteFile(t, cfgPath.String(), `log_level: "error"`)

	if _, written, err = CreateDefaultConfig(dir, false); err != nil || written {
		t.Errorf("second call = written %v, err %v; want untouched", written, err)
	}
	if data, _ := os.ReadFile(cfgPath.String()); string(data) != `log_level: "error"` {
		t.Error("existing file was overwritten without force")
	}

	if _, written, err = CreateDefaultConfig(dir, true); err != nil || !written {
		t.Errorf("forced call = written %v, err %v; want rewritten", written, err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	want := &Config{
		LogLevel: LogLevelError,
		Output:   OutputConfig{Format: FormatJSON, Color: false},
		Env:      EnvConfig{Mask: []string{"*_KEY", "API_*"}},
	}

	tmp := t.TempDir()
	writeUserConfig(t, tmp, GenerateCUE(want))

	got, err := NewProvider(testPlatform(tmp)).Load(context.Background(), LoadOptions{WorkDir: tmp})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.LogLevel != want.LogLevel || got.Output != want.Output {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	if strings.Join(got.Env.Mask, ",") != strings.Join(want.Env.Mask, ",") {
		t.Errorf("Env.Mask = %v, want %v", got.Env.Mask, want.Env.Mask)
	}
}
