// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/buildenv/internal/config"
	"github.com/invowk/buildenv/internal/issue"
	"github.com/invowk/buildenv/pkg/fspath"
	"github.com/invowk/buildenv/pkg/types"

	"github.com/spf13/cobra"
)

// dumpFormatCUE is the default `config dump` format.
const dumpFormatCUE = "cue"

// newConfigCommand creates the `buildenv config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage buildenv configuration",
		Long: `Manage buildenv configuration.

The configuration file is looked up in this order:
  1. the --config flag
  2. <app-data>/buildenv/config.cue
       Linux:   ~/.config/buildenv/config.cue
       macOS:   ~/Library/Application Support/buildenv/config.cue
       Windows: %APPDATA%\buildenv\config.cue
  3. buildenv.cue in the working directory

BUILDENV_LOG_LEVEL, BUILDENV_OUTPUT_FORMAT and BUILDENV_OUTPUT_COLOR
override the file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.showConfig(cmd.Context())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.showConfigPath()
		},
	})

	var dumpFormat string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.dumpConfig(cmd.Context(), dumpFormat)
		},
	}
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "o", dumpFormatCUE, "output format (cue, json, yaml, toml)")
	cfgCmd.AddCommand(dumpCmd)

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.initConfig(force)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	return cfgCmd
}

// loadConfig reloads the configuration and fails on errors that the root
// command only warned about.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, issue.WrapWithOperation(err, "load configuration")
	}
	return cfg, nil
}

// locateConfig returns the path of the file Load reads, or "" for defaults.
func (a *App) locateConfig() (string, error) {
	source, err := a.Config.Locate(a.loadOptions())
	if err != nil {
		return "", issue.WrapWithContext(err, "locate configuration", a.flags.configFile)
	}
	return source, nil
}

func (a *App) showConfig(ctx context.Context) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}

	source, err := a.locateConfig()
	if err != nil {
		return err
	}
	if source == "" {
		source = a.styled(SubtitleStyle, "(using defaults)")
	}

	w := a.stdout
	fmt.Fprintln(w, a.styled(TitleStyle, "Current Configuration"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: %s\n", a.styled(KeyStyle, "Config file"), source)
	fmt.Fprintln(w)

	mask := a.styled(SubtitleStyle, "(none configured)")
	if len(cfg.Env.Mask) > 0 {
		mask = strings.Join(cfg.Env.Mask, ", ")
	}
	return a.writeTable(w, [][2]string{
		{"log_level", a.styled(SuccessStyle, cfg.LogLevel.String())},
		{"output.format", a.styled(SuccessStyle, cfg.Output.Format.String())},
		{"output.color", a.styled(SuccessStyle, fmt.Sprintf("%v", cfg.Output.Color))},
		{"env.mask", mask},
	})
}

func (a *App) showConfigPath() error {
	source, err := a.locateConfig()
	if err != nil {
		return err
	}
	if source != "" {
		_, err = fmt.Fprintln(a.stdout, source)
		return err
	}

	cfgDir, err := config.ConfigDir(a.Platform)
	if err != nil {
		_, err = fmt.Fprintln(a.stdout, a.styled(SubtitleStyle, "(using defaults)"))
		return err
	}
	cfgPath := fspath.JoinStr(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	_, err = fmt.Fprintf(a.stdout, "%s %s\n", cfgPath, a.styled(SubtitleStyle, "(not found, using defaults)"))
	return err
}

func (a *App) dumpConfig(ctx context.Context, format string) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}

	if strings.EqualFold(format, dumpFormatCUE) {
		_, err = fmt.Fprint(a.stdout, config.GenerateCUE(cfg))
		return err
	}

	outFormat, err := a.outputFormat(format)
	if err != nil {
		return err
	}
	if outFormat == config.FormatText {
		return &ExitError{
			Code: types.ExitInvalidArgument,
			Err:  fmt.Errorf("config dump does not support the %q format", outFormat),
		}
	}
	return writeStructured(a.stdout, outFormat, cfg)
}

func (a *App) initConfig(force bool) error {
	cfgDir, err := config.ConfigDir(a.Platform)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("create configuration").
			WithSuggestion("Pass --config to use a file in another location").
			WithIssue(issue.UnsupportedSpecialPathId).
			Wrap(err).
			BuildError()
	}

	cfgPath, written, err := config.CreateDefaultConfig(cfgDir, force)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("create configuration").
			WithResource(cfgDir.String()).
			WithSuggestion("Check that the directory is writable").
			Wrap(err).
			BuildError()
	}

	if !written {
		fmt.Fprintf(a.stdout, "%s Configuration already exists at %s (use --force to overwrite)\n",
			a.styled(WarningStyle, "!"), cfgPath)
		return nil
	}
	fmt.Fprintf(a.stdout, "%s Created default configuration at %s\n", a.styled(SuccessStyle, "✓"), cfgPath)
	return nil
}
