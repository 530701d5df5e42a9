package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newDescribeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [field...]",
		Short: "Print the canonical form of the configured field expressions",
		Long: `describe parses each field and prints the tree it evaluates, with
every grouping explicit. The canonical form parses back to an equivalent
tree, so it is also a way to normalise expressions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := fieldsFor(a.cfg, args)
			if err != nil {
				return err
			}
			f := factoryFor(a.cfg)
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Field", "Canonical form"})
			for _, name := range names {
				g, err := f.ParseString(a.cfg.Fields[name])
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{name, g.String()})
			}
			t.Render()
			return nil
		},
	}
}
