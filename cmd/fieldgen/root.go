package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fantasticism/fieldgen"
	"github.com/fantasticism/fieldgen/grid"
	"github.com/fantasticism/fieldgen/internal/config"
	"github.com/fantasticism/fieldgen/internal/logging"
	"github.com/fantasticism/fieldgen/mesh"
)

// app carries state loaded by the root command into subcommands.
type app struct {
	cfg *config.Project
	log *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{log: logging.NewNop()}
	var cfgFile string
	root := &cobra.Command{
		Use:   "fieldgen",
		Short: "Evaluate analytic field expressions over grids",
		Long: `fieldgen parses the field expressions of a project file, such as
"gauss(x-0.5, 0.2)*sin(3*y)", and samples them over the configured grid.

Configuration comes from fieldgen.yaml in the working directory (or the
file named by --config), overridden by FIELDGEN_* environment variables
and flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			a.log = logging.New(level)
			a.log.Debug("configuration loaded", "file", cfg.File, "fields", len(cfg.Fields))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "path to the project file (default fieldgen.yaml)")
	pf.Bool("verbose", false, "enable debug logging")
	pf.Int("nx", 0, "override grid points in x")
	pf.Int("ny", 0, "override grid points in y")
	pf.Int("nz", 0, "override grid points in z")
	pf.Float64("time", 0, "override the evaluation time")
	pf.Int("workers", 0, "goroutines sampling concurrently (0 = one per CPU)")
	pf.String("format", "", "output format: table, csv, or yaml")

	root.AddCommand(
		newCheckCommand(a),
		newDescribeCommand(a),
		newEvalCommand(a),
		newVersionCommand(),
	)
	return root
}

// factoryFor builds the expression factory a project file describes: the
// default registry plus the configured mesh and parameter bindings.
func factoryFor(cfg *config.Project) *fieldgen.Factory {
	opts := []fieldgen.Option{}
	if m := slabFor(cfg); m != nil {
		opts = append(opts, fieldgen.WithMesh(m))
	}
	f := fieldgen.New(opts...)
	for name, v := range cfg.Params {
		cell := v
		f.Bind(name, &cell)
	}
	return f
}

// slabFor builds the configured mesh, or nil if the project has none.
func slabFor(cfg *config.Project) fieldgen.Mesh {
	if cfg.Mesh == nil {
		return nil
	}
	return &mesh.Slab{
		Shift: cfg.Mesh.Shift,
		Shear: cfg.Mesh.Shear,
		XMin:  cfg.Mesh.XMin,
		XMax:  cfg.Mesh.XMax,
	}
}

// gridSpec builds the sampling grid a project file describes.
func gridSpec(cfg *config.Project) grid.Spec {
	g := cfg.Grid
	return grid.Spec{
		Nx: g.Nx, Ny: g.Ny, Nz: g.Nz,
		XMin: g.XMin, XMax: g.XMax,
		YMin: g.YMin, YMax: g.YMax,
		ZMin: g.ZMin, ZMax: g.ZMax,
		T:    g.T,
		Mesh: slabFor(cfg),
	}
}

// fieldsFor returns the field names to operate on: the args when given, or
// every configured field in sorted order.
func fieldsFor(cfg *config.Project, args []string) ([]string, error) {
	if len(args) == 0 {
		names := make([]string, 0, len(cfg.Fields))
		for name := range cfg.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}
	for _, name := range args {
		if _, ok := cfg.Fields[name]; !ok {
			return nil, fmt.Errorf("no field named %q in the configuration", name)
		}
	}
	return args, nil
}
