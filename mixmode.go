package fieldgen

import "math"

// DefaultSeed is the phase seed of a mixmode generator when none is given.
const DefaultSeed = 0.5

// mixmodeModes is the number of Fourier modes a mixmode generator mixes.
const mixmodeModes = 14

// mixmode sums Fourier modes of its child with pseudorandom phases.
type mixmode struct {
	arg   Generator
	seed  float64
	phase [mixmodeModes]float64
}

// Mixmode returns a generator that mixes 14 Fourier modes of its child,
//
//	sum over i of cos(i*v + phase[i]) / (1 + |i-4|)^2
//
// where v is the child's value. The phases are derived from the seed once,
// at construction. The same seed yields the same phases on every platform
// and in every run.
func Mixmode(arg Generator, seed float64) Generator {
	g := &mixmode{arg: arg, seed: seed}
	for i := range g.phase {
		g.phase[i] = math.Pi * (2*genRand(seed+float64(i)) - 1)
	}
	return g
}

func (g *mixmode) Generate(ctx Context) float64 {
	if g.arg == nil {
		return math.NaN()
	}
	v := g.arg.Generate(ctx)
	var sum float64
	for i := 0; i < mixmodeModes; i++ {
		w := 1 + math.Abs(float64(i)-4)
		sum += math.Cos(float64(i)*v+g.phase[i]) / (w * w)
	}
	return sum
}

// Clone accepts one or two arguments: the child, and optionally a new seed,
// evaluated at the origin, from which a fresh phase table is derived. With
// one argument the receiver's phase table is copied forward unchanged, not
// re-derived. With no arguments the node is duplicated as is.
func (g *mixmode) Clone(args []Generator) (Generator, error) {
	switch len(args) {
	case 0:
		c := *g
		return &c, nil
	case 1:
		c := *g
		c.arg = args[0]
		return &c, nil
	case 2:
		return Mixmode(args[0], args[1].Generate(Context{})), nil
	default:
		return nil, &ArityError{Name: "mixmode", Want: "1 or 2", Got: len(args)}
	}
}

func (g *mixmode) String() string {
	return callString("mixmode", g.arg, Const(g.seed))
}

// genRand maps a seed to a repeatable value in (0, 1) by iterating the
// logistic map x <- 3.99*x*(1-x).
func genRand(seed float64) float64 {
	if seed < 0 {
		seed = -seed
	}
	niter := 11 + (23+int(roundAway(seed)))%79
	const a, b = 0.01, 1.23456789
	x := (a + math.Mod(seed, b)) / (b + 2*a)
	for i := 0; i < niter; i++ {
		x = 3.99 * x * (1 - x)
	}
	return x
}
