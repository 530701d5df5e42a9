package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fantasticism/fieldgen/grid"
)

func newEvalCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval [field...]",
		Short: "Sample the configured fields over the grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := fieldsFor(a.cfg, args)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				return fmt.Errorf("no fields configured")
			}
			f := factoryFor(a.cfg)
			spec := gridSpec(a.cfg)
			values := make(map[string][]float64, len(names))
			for _, name := range names {
				g, err := f.ParseString(a.cfg.Fields[name])
				if err != nil {
					return fmt.Errorf("field %s: %w", name, err)
				}
				a.log.Debug("sampling field", "name", name, "points", spec.Len())
				vs, err := grid.Fill(cmd.Context(), g, spec, grid.Workers(a.cfg.Eval.Workers))
				if err != nil {
					return fmt.Errorf("field %s: %w", name, err)
				}
				values[name] = vs
			}
			out := cmd.OutOrStdout()
			switch resolveFormat(a.cfg.Eval.Format, out) {
			case "yaml":
				return writeYAML(out, a.cfg.Fields, spec, names, values)
			case "csv":
				writeGrid(out, spec, names, values, fullFloat).RenderCSV()
			default:
				writeGrid(out, spec, names, values, shortFloat).Render()
			}
			return nil
		},
	}
}

// resolveFormat maps the auto format to table on a terminal and csv
// elsewhere.
func resolveFormat(format string, w io.Writer) string {
	switch format {
	case "table", "csv", "yaml":
		return format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "table"
	}
	return "csv"
}

func shortFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func fullFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeGrid lays the sampled values out as one row per grid point with a
// column per field.
func writeGrid(w io.Writer, s grid.Spec, names []string, values map[string][]float64, fmtv func(float64) string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	// Coordinate and field names are case-sensitive expression names; keep
	// them out of the style's default upper-casing.
	t.Style().Format.Header = text.FormatDefault
	header := table.Row{"x", "y", "z"}
	for _, name := range names {
		header = append(header, name)
	}
	t.AppendHeader(header)
	idx := 0
	for i := 0; i < s.Nx; i++ {
		for j := 0; j < s.Ny; j++ {
			for k := 0; k < s.Nz; k++ {
				row := table.Row{fmtv(s.X(i)), fmtv(s.Y(j)), fmtv(s.Z(k))}
				for _, name := range names {
					row = append(row, fmtv(values[name][idx]))
				}
				t.AppendRow(row)
				idx++
			}
		}
	}
	return t
}

// evalOutput is the yaml document eval emits.
type evalOutput struct {
	Grid   evalGrid             `yaml:"grid"`
	Fields map[string]evalField `yaml:"fields"`
}

type evalGrid struct {
	Nx int     `yaml:"nx"`
	Ny int     `yaml:"ny"`
	Nz int     `yaml:"nz"`
	T  float64 `yaml:"t"`
}

type evalField struct {
	Expression string    `yaml:"expression"`
	Values     []float64 `yaml:"values,flow"`
}

func writeYAML(w io.Writer, exprs map[string]string, s grid.Spec, names []string, values map[string][]float64) error {
	out := evalOutput{
		Grid:   evalGrid{Nx: s.Nx, Ny: s.Ny, Nz: s.Nz, T: s.T},
		Fields: make(map[string]evalField, len(names)),
	}
	for _, name := range names {
		out.Fields[name] = evalField{Expression: exprs[name], Values: values[name]}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(out)
}
