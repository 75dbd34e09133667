// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/buildenv/internal/config"
	"github.com/invowk/buildenv/internal/issue"

	"github.com/spf13/cobra"
)

var errVariableNotSet = errors.New("environment variable not set")

type envOptions struct {
	format string
	noMask bool
}

func newEnvCommand(app *App) *cobra.Command {
	var opts envOptions

	cmd := &cobra.Command{
		Use:   "env [NAME...]",
		Short: "Print environment variables",
		Long: `Print the process environment, or only the named variables.

Names are matched the way the operating system matches them: exactly on
Unix, ignoring case on Windows. Values of variables whose names match an
env.mask pattern from the configuration are printed as ****.

A single name prints the bare value. Any missing name makes the command
exit with status 1.

` + SubtitleStyle.Render("Examples:") + `
  buildenv env
  buildenv env PATH
  buildenv env HOME GOPATH --format yaml
  buildenv env GITHUB_TOKEN --no-mask`,
		RunE: func(_ *cobra.Command, args []string) error {
			return app.runEnv(args, opts)
		},
	}

	addFormatFlag(cmd, &opts.format)
	cmd.Flags().BoolVar(&opts.noMask, "no-mask", false, "print masked values in clear")

	return cmd
}

func (a *App) runEnv(names []string, opts envOptions) error {
	format, err := a.outputFormat(opts.format)
	if err != nil {
		return err
	}

	var (
		rows    [][2]string
		missing []string
	)
	if len(names) == 0 {
		vars := a.env.EnvironmentVariables()
		for _, name := range vars.Names() {
			value, _ := vars.Get(name)
			rows = append(rows, [2]string{name, value})
		}
	} else {
		for _, name := range names {
			value, ok := a.env.EnvironmentVariable(name)
			if !ok {
				missing = append(missing, name)
				continue
			}
			rows = append(rows, [2]string{name, value})
		}
	}

	if !opts.noMask {
		for i, row := range rows {
			if a.cfg.Env.Masked(row[0]) {
				rows[i][1] = maskedValue
			}
		}
	}

	if err := a.writeEnv(rows, format, len(names) == 1); err != nil {
		return err
	}

	if len(missing) > 0 {
		return issue.NewErrorContext().
			WithOperation("read environment variable").
			WithResource(strings.Join(missing, ", ")).
			WithSuggestion("Run 'buildenv env' to list every variable").
			WithIssue(issue.VariableNotSetId).
			Wrap(fmt.Errorf("%w: %s", errVariableNotSet, strings.Join(missing, ", "))).
			BuildError()
	}
	return nil
}

func (a *App) writeEnv(rows [][2]string, format config.OutputFormat, single bool) error {
	if format != config.FormatText {
		values := make(map[string]string, len(rows))
		for _, row := range rows {
			values[row[0]] = row[1]
		}
		return writeStructured(a.stdout, format, values)
	}

	if single {
		for _, row := range rows {
			if _, err := fmt.Fprintln(a.stdout, row[1]); err != nil {
				return err
			}
		}
		return nil
	}
	return a.writeTable(a.stdout, rows)
}
