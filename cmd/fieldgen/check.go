package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [field...]",
		Short: "Parse the configured field expressions and report errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := fieldsFor(a.cfg, args)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				return fmt.Errorf("no fields configured")
			}
			f := factoryFor(a.cfg)
			out := cmd.OutOrStdout()
			bad := 0
			for _, name := range names {
				if _, err := f.ParseString(a.cfg.Fields[name]); err != nil {
					bad++
					fmt.Fprintf(out, "%s: %v\n", name, err)
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", name)
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d fields failed to parse", bad, len(names))
			}
			a.log.Debug("all fields parsed", "fields", len(names))
			return nil
		},
	}
}
