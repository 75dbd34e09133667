// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/invowk/buildenv/internal/config"
	"github.com/invowk/buildenv/pkg/types"

	"github.com/mattn/go-runewidth"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// maskedValue replaces the value of a variable whose name matches env.mask.
const maskedValue = "****"

// addFormatFlag registers --format on cmd, bound to target.
func addFormatFlag(cmd *cobra.Command, target *string) {
	names := make([]string, 0, len(config.OutputFormats()))
	for _, f := range config.OutputFormats() {
		names = append(names, f.String())
	}
	cmd.Flags().StringVarP(target, "format", "o", "",
		"output format ("+strings.Join(names, ", ")+"; default from config)")
}

// outputFormat returns the --format value, or the configured default when
// the flag is empty. An unknown name is a usage error.
func (a *App) outputFormat(flagValue string) (config.OutputFormat, error) {
	if flagValue == "" {
		return a.cfg.Output.Format, nil
	}
	format := config.OutputFormat(strings.ToLower(flagValue))
	if ok, errs := format.IsValid(); !ok {
		return "", &ExitError{Code: types.ExitInvalidArgument, Err: errs[0]}
	}
	return format, nil
}

// writeStructured encodes v in one of the structured formats.
func writeStructured(w io.Writer, format config.OutputFormat, v any) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatTOML:
		return toml.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("format %q is not a structured format", format)
	}
}

// writeTable prints key/value rows with the keys padded to a common display
// width. Padding is applied before styling so escape codes do not count.
func (a *App) writeTable(w io.Writer, rows [][2]string) error {
	width := 0
	for _, row := range rows {
		width = max(width, runewidth.StringWidth(row[0]))
	}
	for _, row := range rows {
		key := a.styled(KeyStyle, runewidth.FillRight(row[0], width))
		if _, err := fmt.Fprintf(w, "%s  %s\n", key, row[1]); err != nil {
			return err
		}
	}
	return nil
}
