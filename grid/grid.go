// Package grid samples generator trees over rectilinear grids.
package grid

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/fantasticism/fieldgen"
)

// Spec describes a rectilinear sampling grid. Each axis is spaced uniformly
// with both endpoints included; an axis with a single point sits at its
// minimum. Values are laid out x-major: point (i, j, k) has flat index
// (i*Ny + j)*Nz + k.
type Spec struct {
	// Nx, Ny, Nz are the number of points along each axis.
	Nx, Ny, Nz int
	// XMin, XMax and friends bound each axis.
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
	// T is the time at which every point is evaluated.
	T float64
	// Mesh is attached to every evaluation context. It may be nil.
	Mesh fieldgen.Mesh
}

// Len returns the number of points in the grid.
func (s Spec) Len() int {
	return s.Nx * s.Ny * s.Nz
}

// X returns the x coordinate of column i.
func (s Spec) X(i int) float64 {
	return axis(s.XMin, s.XMax, i, s.Nx)
}

// Y returns the y coordinate of row j.
func (s Spec) Y(j int) float64 {
	return axis(s.YMin, s.YMax, j, s.Ny)
}

// Z returns the z coordinate of plane k.
func (s Spec) Z(k int) float64 {
	return axis(s.ZMin, s.ZMax, k, s.Nz)
}

// At returns the evaluation context for the point (i, j, k).
func (s Spec) At(i, j, k int) fieldgen.Context {
	return fieldgen.Context{X: s.X(i), Y: s.Y(j), Z: s.Z(k), T: s.T, Mesh: s.Mesh}
}

func axis(min, max float64, i, n int) float64 {
	if n <= 1 {
		return min
	}
	return min + (max-min)*float64(i)/float64(n-1)
}

// Option configures sampling.
type Option func(*options)

type options struct {
	workers int
}

// Workers sets the number of goroutines sampling concurrently. Values below
// 1 mean one per CPU.
func Workers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Fill samples g at every point of the grid and returns the values in a new
// slice, indexed as documented on Spec.
func Fill(ctx context.Context, g fieldgen.Generator, s Spec, opts ...Option) ([]float64, error) {
	if err := validate(s); err != nil {
		return nil, err
	}
	dst := make([]float64, s.Len())
	if err := FillInto(ctx, dst, g, s, opts...); err != nil {
		return nil, err
	}
	return dst, nil
}

// FillInto samples g at every point of the grid into dst, which must have
// length s.Len(). Work splits by x column across a bounded number of
// goroutines; cancelling ctx abandons columns that have not started.
func FillInto(ctx context.Context, dst []float64, g fieldgen.Generator, s Spec, opts ...Option) error {
	if err := validate(s); err != nil {
		return err
	}
	if len(dst) != s.Len() {
		return fmt.Errorf("grid: destination holds %d values, grid has %d", len(dst), s.Len())
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.workers)
	for i := 0; i < s.Nx; i++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			x := s.X(i)
			for j := 0; j < s.Ny; j++ {
				y := s.Y(j)
				row := (i*s.Ny + j) * s.Nz
				for k := 0; k < s.Nz; k++ {
					pt := fieldgen.Context{X: x, Y: y, Z: s.Z(k), T: s.T, Mesh: s.Mesh}
					dst[row+k] = g.Generate(pt)
				}
			}
			return nil
		})
	}
	return eg.Wait()
}

func validate(s Spec) error {
	if s.Nx < 1 || s.Ny < 1 || s.Nz < 1 {
		return fmt.Errorf("grid: dimensions must be positive, got %dx%dx%d", s.Nx, s.Ny, s.Nz)
	}
	return nil
}
