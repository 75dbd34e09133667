// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invowk/buildenv/internal/issue"
	"github.com/invowk/buildenv/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "buildenv",
		Short: "Inspect the build environment",
		Long: TitleStyle.Render("buildenv") + SubtitleStyle.Render(" - Inspect the build environment") + `

buildenv reports what build tooling sees about the host: the platform
family, special folders such as temp, home and app-data, the
application root and working directory, and the process environment.

` + SubtitleStyle.Render("Examples:") + `
  buildenv info                 Show platform and runtime identity
  buildenv path --all           Resolve every special folder
  buildenv env PATH             Print one environment variable
  buildenv expand '$HOME/bin'   Expand variables against the environment
  buildenv -C /src info         Inspect from another working directory`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.prepare(cmd.Context())
		},
	}

	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	flags := root.PersistentFlags()
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&app.flags.configFile, "config", "", "config file (default is <app-data>/buildenv/config.cue)")
	flags.StringVarP(&app.flags.chdir, "chdir", "C", "", "change to this absolute directory before running")
	flags.BoolVar(&app.flags.noColor, "no-color", false, "disable styled output")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: types.ExitInvalidArgument, Err: err}
	})

	root.AddCommand(
		newInfoCommand(app),
		newPathCommand(app),
		newEnvCommand(app),
		newExpandCommand(app),
		newConfigCommand(app),
	)

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the root command.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	root := NewRootCommand(app)

	// fang overrides root.Version, so the version is passed as an option.
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	); err != nil {
		os.Exit(int(exitCodeFor(err)))
	}
}

// handleError prints err for the user. Actionable errors are printed with
// their suggestions, plus the rendered catalog entry in verbose mode; any
// other error goes through fang's default handler.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}

	fmt.Fprintln(w, a.styled(ErrorStyle, "Error: ")+ae.Format(a.flags.verbose))
	if !a.flags.verbose {
		return
	}
	if guide := ae.Guidance(); guide != nil {
		rendered, renderErr := guide.Render(a.markdownStyle())
		if renderErr != nil {
			rendered = guide.Markdown()
		}
		fmt.Fprint(w, rendered)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// markdownStyle picks the glamour style for rendered Markdown.
func (a *App) markdownStyle() string {
	if a.color {
		return "dark"
	}
	return "notty"
}

// usageArgs marks positional-argument validation failures as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &ExitError{Code: types.ExitInvalidArgument, Err: err}
		}
		return nil
	}
}
