package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/spektr-org/tally/engine"
)

// ============================================================================
// OUTPUT — json, pretty, text, csv
// ============================================================================

// output is what every subcommand hands to render.
type output struct {
	Command string            `json:"command"`
	Input   map[string]any    `json:"input"`
	Result  any               `json:"result"`
	Table   *engine.TableData `json:"-"`
}

func (a *app) render(cmd *cobra.Command, out output) error {
	path := a.v.GetString("out")
	if path == "" {
		return a.write(cmd.OutOrStdout(), out)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	if err := a.write(f, out); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", path)
	}
	a.logger.Info().Str("file", path).Msg("output written")
	return nil
}

func (a *app) write(w io.Writer, out output) error {
	switch format := a.v.GetString("format"); format {
	case "json", "pretty":
		return writeJSON(w, out, format == "pretty")
	case "csv":
		return writeCSV(w, out.Table)
	case "text":
		return writeText(w, out.Table)
	default:
		return errors.Errorf("unknown format %q (want json, pretty, text or csv)", format)
	}
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return errors.Wrap(enc.Encode(v), "failed to marshal output")
}

// ============================================================================
// CSV OUTPUT — header row, then one line per table row
// ============================================================================

func writeCSV(w io.Writer, table *engine.TableData) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Headers()); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return errors.Wrap(err, "failed to write CSV rows")
	}
	return nil
}

// ============================================================================
// TEXT OUTPUT — aligned columns with a summary footer
// ============================================================================

func writeText(w io.Writer, table *engine.TableData) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, table.Title)
	if len(table.Rows) == 0 {
		fmt.Fprintln(tw, "No result.")
		return tw.Flush()
	}

	fmt.Fprintln(tw, strings.Join(table.Headers(), "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	if s := table.Summary; s != nil {
		cells := []string{s.Label}
		for _, c := range table.Columns[1:] {
			cells = append(cells, s.Values[c.Key])
		}
		if len(table.Columns) == 1 {
			cells = append(cells, s.Values[table.Columns[0].Key])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
