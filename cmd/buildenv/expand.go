// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/invowk/buildenv/internal/issue"
	"github.com/invowk/buildenv/pkg/envexpand"

	"github.com/spf13/cobra"
)

type expandOptions struct {
	windows bool
	strict  bool
}

func newExpandCommand(app *App) *cobra.Command {
	var opts expandOptions

	cmd := &cobra.Command{
		Use:   "expand <string>",
		Short: "Expand variable references against the environment",
		Long: `Expand $VAR and ${VAR} references (POSIX parameter syntax) in the
argument against the process environment. With --windows the cmd.exe
%VAR% form is expanded instead. Command substitution is never run.

` + SubtitleStyle.Render("Examples:") + `
  buildenv expand '${HOME}/bin'
  buildenv expand '${GOPATH:-$HOME/go}' --strict
  buildenv expand '%APPDATA%\buildenv' --windows`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.runExpand(args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.windows, "windows", false, "expand %VAR% references")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on references to unset variables")
	cmd.MarkFlagsMutuallyExclusive("windows", "strict")

	return cmd
}

func (a *App) runExpand(input string, opts expandOptions) error {
	vars := a.env.EnvironmentVariables()

	if opts.windows {
		_, err := fmt.Fprintln(a.stdout, envexpand.ExpandWindows(input, vars))
		return err
	}

	var expandOpts []envexpand.Option
	if opts.strict {
		expandOpts = append(expandOpts, envexpand.Strict())
	}
	out, err := envexpand.Expand(input, vars, expandOpts...)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("expand string").
			WithResource(input).
			WithIssue(issue.ExpansionFailedId).
			Wrap(err).
			BuildError()
	}

	_, err = fmt.Fprintln(a.stdout, out)
	return err
}
