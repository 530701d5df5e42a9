package fieldgen

import "math"

// DefaultWinds is the number of poloidal turns a ballooning generator sums
// on each side of the base point when no count is given.
const DefaultWinds = 3

// ballooning sums displaced images of its child along a field line.
type ballooning struct {
	mesh  Mesh
	arg   Generator
	winds int
}

// Ballooning returns a generator that makes its child obey the twist-shift
// matching condition on closed flux surfaces. At each point it sums
// 2*winds+1 images of the child: the point itself, plus winds turns each
// way, every turn displacing Y by a full poloidal angle and Z by the twist
// shift the mesh reports for that surface.
//
// The mesh may be nil, in which case the one carried by the evaluation
// Context is used. When neither is available, or the surface through the
// point is not periodic, the child's plain value is returned unchanged.
func Ballooning(m Mesh, arg Generator, winds int) Generator {
	return &ballooning{m, arg, winds}
}

func (g *ballooning) Generate(ctx Context) float64 {
	if g.arg == nil {
		return math.NaN()
	}
	m := ctx.Mesh
	if m == nil {
		m = g.mesh
	}
	if m == nil {
		return g.arg.Generate(ctx)
	}
	ts, periodic := m.PeriodicY(ctx.X)
	if !periodic {
		return g.arg.Generate(ctx)
	}
	v := g.arg.Generate(ctx)
	for i := 1; i <= g.winds; i++ {
		w := float64(i)
		v += g.arg.Generate(ctx.translated(-2*math.Pi*w, w*ts))
		v += g.arg.Generate(ctx.translated(2*math.Pi*w, -w*ts))
	}
	return v
}

// Clone accepts one or two arguments: the child, and optionally the number
// of turns to wind, which is evaluated at the origin and rounded, so it
// should be a constant expression. The mesh reference carries over from the
// receiver. With no arguments the node is duplicated as is.
func (g *ballooning) Clone(args []Generator) (Generator, error) {
	switch len(args) {
	case 0:
		c := *g
		return &c, nil
	case 1:
		return &ballooning{g.mesh, args[0], g.winds}, nil
	case 2:
		n := int(roundAway(args[1].Generate(Context{})))
		return &ballooning{g.mesh, args[0], n}, nil
	default:
		return nil, &ArityError{Name: "ballooning", Want: "1 or 2", Got: len(args)}
	}
}

func (g *ballooning) String() string {
	return callString("ballooning", g.arg, Const(float64(g.winds)))
}
