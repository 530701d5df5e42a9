package fieldgen

import (
	"math"
	"strconv"
	"strings"
)

// Generator is a node in the expression tree of a field. Trees are built by
// a Factory from expression text, or assembled directly from the constructors
// in this package, and are immutable afterward: evaluating a tree never
// changes it, so one tree may be evaluated from any number of goroutines.
type Generator interface {
	// Generate evaluates the node at a point. Evaluation is total: it never
	// reports an error, and numeric anomalies such as division by zero or a
	// function applied outside its domain propagate through the tree as IEEE
	// NaN or infinity values in the result.
	Generate(ctx Context) float64

	// Clone produces a new node of the same kind over a replacement argument
	// list. A Factory holds one template instance per registered name and
	// builds every parsed node through Clone, so this is also where a kind
	// validates its arity: a list length the kind does not accept yields an
	// *ArityError and no node.
	Clone(args []Generator) (Generator, error)

	// String renders the node in a canonical form which parses back to a
	// tree that evaluates identically.
	String() string
}

// Axis selects one of the four coordinates of a Context.
type Axis int8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisT
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	case AxisT:
		return "t"
	default:
		return "axis(" + strconv.Itoa(int(a)) + ")"
	}
}

// constant is a leaf holding a fixed value.
type constant struct {
	v float64
}

// Const returns a generator that evaluates to v at every point.
func Const(v float64) Generator {
	return &constant{v}
}

func (g *constant) Generate(Context) float64 {
	return g.v
}

// Clone returns a copy of the constant. The argument list is ignored;
// constants take no arguments and calling one reproduces its value.
func (g *constant) Clone([]Generator) (Generator, error) {
	return &constant{g.v}, nil
}

func (g *constant) String() string {
	// Infinities and NaN render as expressions that parse back to the same
	// value, since there are no literals for them.
	switch {
	case math.IsInf(g.v, 1):
		return "1e999"
	case math.IsInf(g.v, -1):
		return "-1e999"
	case math.IsNaN(g.v):
		return "(0 / 0)"
	}
	return strconv.FormatFloat(g.v, 'g', -1, 64)
}

// param is a leaf reading through a pointer owned by the caller.
type param struct {
	name string
	cell *float64
}

// Param returns a generator that evaluates to the current value behind cell,
// read at each evaluation. The pointer is borrowed, not copied: the caller
// keeps ownership and must keep the cell alive for as long as any tree
// referring to it, and must not write it concurrently with evaluation.
func Param(name string, cell *float64) Generator {
	return &param{name, cell}
}

func (g *param) Generate(Context) float64 {
	return *g.cell
}

// Clone returns a copy bound to the same cell. The argument list is ignored.
func (g *param) Clone([]Generator) (Generator, error) {
	return &param{g.name, g.cell}, nil
}

func (g *param) String() string {
	return g.name
}

// coord is a leaf selecting one coordinate of the evaluation context.
type coord struct {
	ax Axis
}

// Coord returns a generator that evaluates to one coordinate of the point.
func Coord(ax Axis) Generator {
	return &coord{ax}
}

func (g *coord) Generate(ctx Context) float64 {
	switch g.ax {
	case AxisX:
		return ctx.X
	case AxisY:
		return ctx.Y
	case AxisZ:
		return ctx.Z
	case AxisT:
		return ctx.T
	default:
		panic("fieldgen: invalid axis " + g.ax.String())
	}
}

// Clone returns a copy selecting the same coordinate. The argument list is
// ignored.
func (g *coord) Clone([]Generator) (Generator, error) {
	return &coord{g.ax}, nil
}

func (g *coord) String() string {
	return g.ax.String()
}

// callString renders a generator call in its canonical form. Nil arguments,
// which occur only in template instances that were never given children,
// render as "?".
func callString(name string, args ...Generator) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		if a == nil {
			b.WriteByte('?')
			continue
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}
