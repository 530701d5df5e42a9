package fieldgen

import (
	"io"
	"strings"
)

// Context carries the point at which a generator tree is evaluated. It is a
// plain value: generators receive a copy and cannot observe or affect the
// caller's Context, so a single Context may be used from any number of
// goroutines.
//
// Coordinates follow the usual field conventions: X is the normalised radial
// coordinate, Y and Z are angles in radians, and T is time. The zero Context
// evaluates at the origin with no mesh attached.
type Context struct {
	// X, Y, Z are the spatial coordinates of the point.
	X, Y, Z float64
	// T is the time coordinate of the point.
	T float64
	// Mesh describes the periodicity of the domain. It may be nil; generators
	// that need geometry fall back to the mesh they were constructed with,
	// and treat the domain as non-periodic when neither is available.
	Mesh Mesh
}

// translated returns a copy of the context shifted along the two angular
// directions.
func (ctx Context) translated(dy, dz float64) Context {
	ctx.Y += dy
	ctx.Z += dz
	return ctx
}

// Mesh describes the field-line topology of the domain, as much of it as
// generators need. Implementations must be safe for concurrent use.
type Mesh interface {
	// PeriodicY reports whether the flux surface through the radial
	// coordinate x closes on itself in Y, and if so the twist-shift angle
	// that a field line accumulates in Z over one poloidal turn.
	PeriodicY(x float64) (twistShift float64, periodic bool)
}

// Eval is a shortcut to parse an expression with a default Factory and
// evaluate it at a single point.
func Eval(src io.RuneScanner, ctx Context) (float64, error) {
	g, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return g.Generate(ctx), nil
}

// EvalString is a shortcut to parse and evaluate a string expression at a
// single point.
func EvalString(src string, ctx Context) (float64, error) {
	return Eval(strings.NewReader(src), ctx)
}
