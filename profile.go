package fieldgen

import "math"

// gaussian is the bell profile exp(-(x/s)^2 / 2).
type gaussian struct {
	x, s Generator
}

// Gaussian returns a bell profile with unit peak, exp(-(x/s)^2 / 2), centred
// where x evaluates to zero. Both the offset x and the width s are
// generators, so the width may itself vary over the domain. There is no
// normalisation factor; the peak value is always 1.
func Gaussian(x, s Generator) Generator {
	return &gaussian{x, s}
}

func (g *gaussian) Generate(ctx Context) float64 {
	d := g.x.Generate(ctx) / g.s.Generate(ctx)
	return math.Exp(-d * d / 2)
}

// Clone accepts one or two arguments. With one, the width is 1.
func (g *gaussian) Clone(args []Generator) (Generator, error) {
	switch len(args) {
	case 1:
		return &gaussian{args[0], Const(1)}, nil
	case 2:
		return &gaussian{args[0], args[1]}, nil
	default:
		return nil, &ArityError{Name: "gauss", Want: "1 or 2", Got: len(args)}
	}
}

func (g *gaussian) String() string {
	return callString("gauss", g.x, g.s)
}

// tanhHat is a top-hat profile with tanh-smoothed edges.
type tanhHat struct {
	x, width, center, steepness Generator
}

// TanhHat returns a smoothed top-hat profile,
//
//	0.5*(tanh(s*(x-(c-w/2))) - tanh(s*(x-(c+w/2))))
//
// which is near 1 on the plateau of width w around the centre c, near 0 far
// from it, and crosses 0.5 at the two edges. The steepness s sets how sharp
// the edges are.
func TanhHat(x, width, center, steepness Generator) Generator {
	return &tanhHat{x, width, center, steepness}
}

func (g *tanhHat) Generate(ctx Context) float64 {
	x := g.x.Generate(ctx)
	w := g.width.Generate(ctx)
	c := g.center.Generate(ctx)
	s := g.steepness.Generate(ctx)
	return 0.5 * (math.Tanh(s*(x-(c-0.5*w))) - math.Tanh(s*(x-(c+0.5*w))))
}

// Clone accepts exactly four arguments: x, width, centre, steepness.
func (g *tanhHat) Clone(args []Generator) (Generator, error) {
	if len(args) != 4 {
		return nil, &ArityError{Name: "tanhhat", Want: "4", Got: len(args)}
	}
	return &tanhHat{args[0], args[1], args[2], args[3]}, nil
}

func (g *tanhHat) String() string {
	return callString("tanhhat", g.x, g.width, g.center, g.steepness)
}
