// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invowk/buildenv/internal/config"
	"github.com/invowk/buildenv/internal/issue"
	"github.com/invowk/buildenv/internal/report"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var errFieldNotFound = errors.New("field not found")

type infoOptions struct {
	format   string
	field    string
	markdown bool
	schema   bool
}

func newInfoCommand(app *App) *cobra.Command {
	var opts infoOptions

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show platform and runtime identity",
		Long: `Show the platform family, word size, sandbox, Go runtime identity,
application root and working directory.

` + SubtitleStyle.Render("Examples:") + `
  buildenv info
  buildenv info --format json
  buildenv info --field platform.family
  buildenv info --markdown`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.runInfo(opts)
		},
	}

	addFormatFlag(cmd, &opts.format)
	cmd.Flags().StringVar(&opts.field, "field", "", "print a single value selected by a gjson path (e.g. runtime.go_version)")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "render the report as a Markdown table")
	cmd.Flags().BoolVar(&opts.schema, "schema", false, "print the JSON Schema of the report")
	cmd.MarkFlagsMutuallyExclusive("format", "field", "markdown", "schema")

	return cmd
}

func (a *App) runInfo(opts infoOptions) error {
	if opts.schema {
		_, err := a.stdout.Write(report.InfoSchema())
		return err
	}

	info, err := report.NewInfo(a.env)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("collect environment report").
			WithIssue(issue.EnvironmentInitFailedId).
			Wrap(err).
			BuildError()
	}

	switch {
	case opts.field != "":
		return a.writeInfoField(info, opts.field)
	case opts.markdown:
		out, err := glamour.Render(info.Markdown(), a.markdownStyle())
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		_, err = fmt.Fprint(a.stdout, out)
		return err
	}

	format, err := a.outputFormat(opts.format)
	if err != nil {
		return err
	}
	if format == config.FormatText {
		return a.writeTable(a.stdout, info.Rows())
	}
	return writeStructured(a.stdout, format, info)
}

// writeInfoField queries the JSON form of info. Scalars are printed bare;
// objects and arrays are printed as JSON.
func (a *App) writeInfoField(info *report.Info, path string) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return issue.NewErrorContext().
			WithOperation("query report field").
			WithResource(path).
			WithSuggestion("Run 'buildenv info --format json' to list the available fields").
			Wrap(fmt.Errorf("%w: %s", errFieldNotFound, path)).
			BuildError()
	}

	_, err = fmt.Fprintln(a.stdout, result.String())
	return err
}
