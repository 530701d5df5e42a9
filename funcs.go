package fieldgen

import (
	"math"
)

// unary wraps a native function of one variable into a generator.
type unary struct {
	name string
	fn   func(float64) float64
	arg  Generator
}

// Unary wraps a function of one variable into a generator over arg. The name
// is used for rendering and in arity errors, so it should be the name the
// generator is registered under. Most of the pointwise functions a Factory
// knows by default, sin through erf, are built this way.
func Unary(name string, fn func(float64) float64, arg Generator) Generator {
	return &unary{name, fn, arg}
}

func (g *unary) Generate(ctx Context) float64 {
	return g.fn(g.arg.Generate(ctx))
}

func (g *unary) Clone(args []Generator) (Generator, error) {
	if len(args) != 1 {
		return nil, &ArityError{Name: g.name, Want: "1", Got: len(args)}
	}
	return &unary{g.name, g.fn, args[0]}, nil
}

func (g *unary) String() string {
	return callString(g.name, g.arg)
}

// binary wraps a native function of two variables into a generator.
type binary struct {
	name string
	fn   func(a, b float64) float64
	a, b Generator
}

// Binary wraps a function of two variables into a generator over a and b.
// The name is used for rendering and in arity errors.
func Binary(name string, fn func(a, b float64) float64, a, b Generator) Generator {
	return &binary{name, fn, a, b}
}

func (g *binary) Generate(ctx Context) float64 {
	return g.fn(g.a.Generate(ctx), g.b.Generate(ctx))
}

func (g *binary) Clone(args []Generator) (Generator, error) {
	if len(args) != 2 {
		return nil, &ArityError{Name: g.name, Want: "2", Got: len(args)}
	}
	return &binary{g.name, g.fn, args[0], args[1]}, nil
}

func (g *binary) String() string {
	return callString(g.name, g.a, g.b)
}

// binaryOp is an infix arithmetic operator node. The parser builds these
// directly rather than going through a Factory registry.
type binaryOp struct {
	op       byte
	lhs, rhs Generator
}

func (g *binaryOp) Generate(ctx Context) float64 {
	l := g.lhs.Generate(ctx)
	r := g.rhs.Generate(ctx)
	switch g.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	case '^':
		return math.Pow(l, r)
	default:
		panic("fieldgen: invalid operator " + string(g.op))
	}
}

func (g *binaryOp) Clone(args []Generator) (Generator, error) {
	if len(args) != 2 {
		return nil, &ArityError{Name: string(g.op), Want: "2", Got: len(args)}
	}
	return &binaryOp{g.op, args[0], args[1]}, nil
}

func (g *binaryOp) String() string {
	return "(" + g.lhs.String() + " " + string(g.op) + " " + g.rhs.String() + ")"
}

// atan is the arctangent, in one- and two-argument forms.
type atan struct {
	y, x Generator
}

// Atan returns a generator for the arctangent of y.
func Atan(y Generator) Generator {
	return &atan{y: y}
}

// Atan2 returns a generator for the angle of the point (x, y), in the full
// range of all four quadrants.
func Atan2(y, x Generator) Generator {
	return &atan{y, x}
}

func (g *atan) Generate(ctx Context) float64 {
	if g.x == nil {
		return math.Atan(g.y.Generate(ctx))
	}
	return math.Atan2(g.y.Generate(ctx), g.x.Generate(ctx))
}

func (g *atan) Clone(args []Generator) (Generator, error) {
	switch len(args) {
	case 1:
		return &atan{y: args[0]}, nil
	case 2:
		return &atan{args[0], args[1]}, nil
	default:
		return nil, &ArityError{Name: "atan", Want: "1 or 2", Got: len(args)}
	}
}

func (g *atan) String() string {
	if g.x == nil {
		return callString("atan", g.y)
	}
	return callString("atan", g.y, g.x)
}

// extremum folds any number of children with a comparison.
type extremum struct {
	name   string
	better func(v, best float64) bool
	args   []Generator
}

// Min returns a generator for the smallest of its children at each point.
func Min(args ...Generator) Generator {
	return &extremum{"min", func(v, best float64) bool { return v < best }, args}
}

// Max returns a generator for the largest of its children at each point.
func Max(args ...Generator) Generator {
	return &extremum{"max", func(v, best float64) bool { return v > best }, args}
}

// Generate evaluates every child exactly once, in order. Comparisons are
// strict, so ties keep the earlier child's value.
func (g *extremum) Generate(ctx Context) float64 {
	best := g.args[0].Generate(ctx)
	for _, a := range g.args[1:] {
		if v := a.Generate(ctx); g.better(v, best) {
			best = v
		}
	}
	return best
}

func (g *extremum) Clone(args []Generator) (Generator, error) {
	if len(args) == 0 {
		return nil, &ArityError{Name: g.name, Want: "at least 1", Got: 0}
	}
	as := make([]Generator, len(args))
	copy(as, args)
	return &extremum{g.name, g.better, as}, nil
}

func (g *extremum) String() string {
	return callString(g.name, g.args...)
}

// heaviside is the unit step, 1 for positive arguments and 0 otherwise,
// including at 0 and NaN.
func heaviside(v float64) float64 {
	if v > 0 {
		return 1
	}
	return 0
}

// roundAway rounds half away from zero by shifting a half toward the sign
// and truncating. The shift happens in floating point before the truncation,
// so the largest double below 0.5 rounds to 1, where math.Round gives 0.
func roundAway(v float64) float64 {
	if v > 0 {
		return math.Trunc(v + 0.5)
	}
	return math.Trunc(v - 0.5)
}

// defaultGenerators builds the template registry a new Factory starts from.
// The mesh seeds the ballooning template and may be nil.
func defaultGenerators(m Mesh) map[string]Generator {
	return map[string]Generator{
		"x":  Coord(AxisX),
		"y":  Coord(AxisY),
		"z":  Coord(AxisZ),
		"t":  Coord(AxisT),
		"pi": Const(math.Pi),

		"abs":   Unary("abs", math.Abs, nil),
		"acos":  Unary("acos", math.Acos, nil),
		"asin":  Unary("asin", math.Asin, nil),
		"cos":   Unary("cos", math.Cos, nil),
		"cosh":  Unary("cosh", math.Cosh, nil),
		"erf":   Unary("erf", math.Erf, nil),
		"exp":   Unary("exp", math.Exp, nil),
		"h":     Unary("h", heaviside, nil),
		"log":   Unary("log", math.Log, nil),
		"round": Unary("round", roundAway, nil),
		"sin":   Unary("sin", math.Sin, nil),
		"sinh":  Unary("sinh", math.Sinh, nil),
		"sqrt":  Unary("sqrt", math.Sqrt, nil),
		"tan":   Unary("tan", math.Tan, nil),
		"tanh":  Unary("tanh", math.Tanh, nil),

		"atan":  Atan(nil),
		"fmod":  Binary("fmod", math.Mod, nil, nil),
		"power": Binary("power", math.Pow, nil, nil),
		"min":   Min(),
		"max":   Max(),

		"gauss":      Gaussian(nil, nil),
		"tanhhat":    TanhHat(nil, nil, nil, nil),
		"ballooning": Ballooning(m, nil, DefaultWinds),
		"mixmode":    Mixmode(nil, DefaultSeed),
	}
}
