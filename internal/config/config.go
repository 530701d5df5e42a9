// Package config loads fieldgen project configuration from YAML files,
// environment variables, and command-line flags.
package config

import (
	"fmt"
	"math"
	"strings"
)

// Project is the root configuration of a fieldgen project.
type Project struct {
	// Grid describes the sampling grid used by eval.
	Grid Grid `koanf:"grid"`
	// Mesh describes the slab topology used by ballooning expressions. It
	// is optional; without it expressions see a non-periodic domain.
	Mesh *Mesh `koanf:"mesh"`
	// Params binds names usable in every field expression to values.
	Params map[string]float64 `koanf:"params"`
	// Fields maps field names to their defining expressions.
	Fields map[string]string `koanf:"fields"`
	// Eval controls sampling and output.
	Eval Eval `koanf:"eval"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// File is the path of the configuration file the values came from, if
	// any. It is set by Load, not by the file itself.
	File string `koanf:"-"`
}

// Grid describes the sampling grid.
type Grid struct {
	Nx   int     `koanf:"nx"`
	Ny   int     `koanf:"ny"`
	Nz   int     `koanf:"nz"`
	XMin float64 `koanf:"xmin"`
	XMax float64 `koanf:"xmax"`
	YMin float64 `koanf:"ymin"`
	YMax float64 `koanf:"ymax"`
	ZMin float64 `koanf:"zmin"`
	ZMax float64 `koanf:"zmax"`
	T    float64 `koanf:"t"`
}

// Mesh describes a sheared-slab topology.
type Mesh struct {
	Shift float64 `koanf:"shift"`
	Shear float64 `koanf:"shear"`
	XMin  float64 `koanf:"xmin"`
	XMax  float64 `koanf:"xmax"`
}

// Eval controls sampling and output of the eval command.
type Eval struct {
	// Workers is the number of goroutines sampling concurrently. Values
	// below 1 mean one per CPU.
	Workers int `koanf:"workers"`
	// Format selects the output format: table, csv, yaml, or auto, which
	// picks table on a terminal and csv otherwise.
	Format string `koanf:"format"`
}

// defaults returns the built-in configuration: a coarse grid over the unit
// slab with angles spanning a full turn.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"grid.nx":      16,
		"grid.ny":      16,
		"grid.nz":      1,
		"grid.xmin":    0.0,
		"grid.xmax":    1.0,
		"grid.ymin":    0.0,
		"grid.ymax":    2 * math.Pi,
		"grid.zmin":    0.0,
		"grid.zmax":    2 * math.Pi,
		"grid.t":       0.0,
		"eval.workers": 0,
		"eval.format":  "auto",
		"verbose":      false,
	}
}

// Validate checks the configuration for values the commands cannot work
// with.
func (p *Project) Validate() error {
	g := p.Grid
	if g.Nx < 1 || g.Ny < 1 || g.Nz < 1 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%dx%d", g.Nx, g.Ny, g.Nz)
	}
	if g.XMax < g.XMin {
		return fmt.Errorf("grid xmax %v is below xmin %v", g.XMax, g.XMin)
	}
	if g.YMax < g.YMin {
		return fmt.Errorf("grid ymax %v is below ymin %v", g.YMax, g.YMin)
	}
	if g.ZMax < g.ZMin {
		return fmt.Errorf("grid zmax %v is below zmin %v", g.ZMax, g.ZMin)
	}
	if m := p.Mesh; m != nil && m.XMax < m.XMin {
		return fmt.Errorf("mesh xmax %v is below xmin %v", m.XMax, m.XMin)
	}
	switch p.Eval.Format {
	case "auto", "table", "csv", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", p.Eval.Format)
	}
	for name, expr := range p.Fields {
		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("field %q has an empty expression", name)
		}
	}
	return nil
}
