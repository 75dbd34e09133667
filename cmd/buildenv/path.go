// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/buildenv/internal/config"
	"github.com/invowk/buildenv/internal/issue"
	"github.com/invowk/buildenv/internal/report"
	"github.com/invowk/buildenv/pkg/platform"

	"github.com/spf13/cobra"
)

type pathOptions struct {
	format string
	all    bool
}

func newPathCommand(app *App) *cobra.Command {
	var opts pathOptions

	names := make([]string, 0, len(platform.SpecialPaths()))
	for _, p := range platform.SpecialPaths() {
		names = append(names, p.String())
	}

	cmd := &cobra.Command{
		Use:   "path [special-path...]",
		Short: "Resolve special folders",
		Long: `Resolve special folders for the current platform.

Valid names: ` + strings.Join(names, ", ") + `

A single name prints the bare path. With --all every folder is listed and
unsupported ones are reported inline; otherwise any unsupported folder
makes the command exit with status 3.

` + SubtitleStyle.Render("Examples:") + `
  buildenv path temp
  buildenv path home cache
  buildenv path --all --format json`,
		Args: usageArgs(func(cmd *cobra.Command, args []string) error {
			switch {
			case opts.all && len(args) > 0:
				return errors.New("--all cannot be combined with path names")
			case !opts.all && len(args) == 0:
				return errors.New("requires at least one path name, or --all")
			}
			return nil
		}),
		ValidArgs: names,
		RunE: func(_ *cobra.Command, args []string) error {
			return app.runPath(args, opts)
		},
	}

	addFormatFlag(cmd, &opts.format)
	cmd.Flags().BoolVar(&opts.all, "all", false, "resolve every special folder")

	return cmd
}

func (a *App) runPath(args []string, opts pathOptions) error {
	format, err := a.outputFormat(opts.format)
	if err != nil {
		return err
	}

	tags := platform.SpecialPaths()
	if !opts.all {
		tags = make([]platform.SpecialPath, 0, len(args))
		for _, arg := range args {
			tag, err := platform.ParseSpecialPath(arg)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("resolve special path").
					WithResource(arg).
					WithSuggestion("Run 'buildenv path --help' to list valid names").
					WithIssue(issue.UnknownSpecialPathId).
					Wrap(err).
					BuildError()
			}
			tags = append(tags, tag)
		}
	}

	paths, errs := report.ResolvePaths(a.env, tags)
	for i, err := range errs {
		a.logger.Debug("special path unresolved", "index", i, "error", err)
	}

	if err := a.writePaths(paths, format, opts.all); err != nil {
		return err
	}

	if opts.all || len(errs) == 0 {
		return nil
	}

	var failed []string
	for _, entry := range paths.Paths {
		if entry.Error != "" {
			failed = append(failed, entry.Name)
		}
	}
	return issue.NewErrorContext().
		WithOperation("resolve special path").
		WithResource(strings.Join(failed, ", ")).
		WithSuggestions(
			"Run 'buildenv path --all' to see which folders this platform supports",
			"Most Unix folders derive from HOME and the XDG_* variables; check they are set",
		).
		WithIssue(issue.UnsupportedSpecialPathId).
		Wrap(errors.Join(errs...)).
		BuildError()
}

func (a *App) writePaths(paths report.Paths, format config.OutputFormat, all bool) error {
	if format != config.FormatText {
		return writeStructured(a.stdout, format, paths)
	}

	if !all && len(paths.Paths) == 1 {
		if entry := paths.Paths[0]; entry.Path != "" {
			_, err := fmt.Fprintln(a.stdout, entry.Path)
			return err
		}
		return nil
	}

	rows := make([][2]string, 0, len(paths.Paths))
	for _, entry := range paths.Paths {
		value := entry.Path
		if entry.Error != "" {
			value = a.styled(WarningStyle, "unavailable: "+entry.Error)
		}
		rows = append(rows, [2]string{entry.Name, value})
	}
	return a.writeTable(a.stdout, rows)
}
