package fieldgen

import (
	"math"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

// mockGen is a generator kind accepting only the argument list lengths in
// can, for exercising the parser's call plumbing without real semantics.
type mockGen struct {
	name string
	args []Generator
	can  []int
}

func (g *mockGen) Generate(Context) float64 {
	return float64(len(g.args))
}

func (g *mockGen) Clone(args []Generator) (Generator, error) {
	for _, n := range g.can {
		if n == len(args) {
			return &mockGen{g.name, args, g.can}, nil
		}
	}
	return nil, &ArityError{Name: g.name, Want: "mock", Got: len(args)}
}

func (g *mockGen) String() string {
	return callString(g.name, g.args...)
}

func mockFactory() *Factory {
	return New(WithoutDefaults(),
		WithGenerator("zero", &mockGen{name: "zero", can: []int{0}}),
		WithGenerator("one", &mockGen{name: "one", can: []int{1}}),
		WithGenerator("zeroone", &mockGen{name: "zeroone", can: []int{0, 1}}),
		WithGenerator("five", &mockGen{name: "five", can: []int{5}}),
	)
}

func TestOpsHavePrecedences(t *testing.T) {
	for _, r := range operators {
		b := binop(string(r))
		u := unop(string(r))
		if b.op == 0 && u.op == 0 {
			t.Errorf("no operator for %c", r)
		}
	}
}

func TestPrecedenceOrder(t *testing.T) {
	add, mul, pow, neg := binop("+"), binop("*"), binop("^"), unop("-")
	if !mul.moreBinding(add) {
		t.Error("* does not bind more than +")
	}
	if !neg.moreBinding(mul) {
		t.Error("unary - does not bind more than *")
	}
	if !pow.moreBinding(neg) {
		t.Error("^ does not bind more than unary -")
	}
	if add.moreBinding(binop("-")) || binop("-").moreBinding(add) {
		t.Error("+ and - do not associate left with each other")
	}
	if !pow.moreBinding(pow) {
		t.Error("^ does not associate right")
	}
	if mul.moreBinding(mul) {
		t.Error("* does not associate left")
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(x)", "x"},
		{"multi", "((((x))))", "x"},
		{"plus", "+x", "x"},
		{"space", "x + y", "x+y"},

		{"addassoc", "x+y+z", "(x+y)+z"},
		{"subassoc", "x-y-z", "(x-y)-z"},
		{"mulassoc", "x*y*z", "(x*y)*z"},
		{"divassoc", "x/y/z", "(x/y)/z"},
		{"powassoc", "x^y^z", "x^(y^z)"},

		{"mulprec", "x+y*z", "x+(y*z)"},
		{"powprec", "x*y^z", "x*(y^z)"},
		{"desc", "t^x*y+z", "((t^x)*y)+z"},
		{"asc", "t+x*y^z", "t+(x*(y^z))"},

		{"negpow", "-x^2", "-(x^2)"},
		{"negmul", "-x*y", "(-x)*y"},
		{"negneg", "--x", "-(-x)"},
		{"negsub", "-x-y", "(-x)-y"},
		{"powneg", "x^-y", "x^(-y)"},
		{"pownegpow", "x^-y^-z", "x^(-(y^(-z)))"},
		{"mulneg", "2*-3", "2*(-3)"},
		{"plusmix", "x+-y", "x+(-y)"},

		{"gauss-width", "gauss(x)", "gauss(x, 1)"},
		{"ballooning-winds", "ballooning(y)", "ballooning(y, 3)"},
		{"mixmode-seed", "mixmode(y)", "mixmode(y, 0.5)"},
		{"argspace", "atan(y,x)", "atan( y , x )"},
		{"callprec", "sin(x+y*z)", "sin(x+(y*z))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := ParseString(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			if a.String() != b.String() {
				t.Errorf("mismatched trees:\n\t%q renders %q\n\t%q renders %q", c.a, a, c.b, b)
			}
		})
	}
}

func TestParseCanonical(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "1"},
		{"float", "0.5", "0.5"},
		{"leadingdot", ".5", "0.5"},
		{"sci", "1e-3", "0.001"},
		{"bignum", "1e21", "1e+21"},
		{"saturate", "1e999", "1e999"},
		{"coord", "x", "x"},
		{"time", "t", "t"},
		{"pi", "pi", "3.141592653589793"},
		{"add", "x + y", "(x + y)"},
		{"prec", "x+y*z", "(x + (y * z))"},
		{"pow", "2^x", "(2 ^ x)"},
		{"neg", "-x", "-(x)"},
		{"negnum", "-1", "-(1)"},
		{"call", "sin(x)", "sin(x)"},
		{"callargs", "atan(y, x)", "atan(y, x)"},
		{"gauss1", "gauss(x)", "gauss(x, 1)"},
		{"gauss2", "gauss(x - 0.5, 0.2)", "gauss((x - 0.5), 0.2)"},
		{"tanhhat", "tanhhat(x, 1, 0.5, 10)", "tanhhat(x, 1, 0.5, 10)"},
		{"mixmode", "mixmode(z)", "mixmode(z, 0.5)"},
		{"ballooning", "ballooning(sin(y))", "ballooning(sin(y), 3)"},
		{"minmax", "min(x, max(y, z))", "min(x, max(y, z))"},
		{"leafargs", "x(1, 2)", "x"},
		{"nested", "gauss(x-0.5, 0.2)*sin(3*y)", "(gauss((x - 0.5), 0.2) * sin((3 * y)))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if s := g.String(); s != c.want {
				t.Errorf("%q renders %q, want %q", c.src, s, c.want)
			}
		})
	}
}

// TestCanonicalRoundTrip checks that rendering is a fixed point: the canonical
// form parses back to a tree with the same canonical form.
func TestCanonicalRoundTrip(t *testing.T) {
	srcs := []string{
		"x", "-x", "x+y*z", "x^-y^-z", "2*-3",
		"gauss(x-0.5, 0.2)*sin(3*y)",
		"tanhhat(x, 1, 0.5, 10) + mixmode(y, 2)",
		"ballooning(cos(y)*gauss(x-0.5, 0.1), 2)",
		"min(x, max(y, 1/0))",
		"1e999",
	}
	for _, src := range srcs {
		g, err := ParseString(src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", src, err)
		}
		s := g.String()
		h, err := ParseString(s)
		if err != nil {
			t.Fatalf("%q -> %q failed to parse: %v", src, s, err)
		}
		if s2 := h.String(); s != s2 {
			t.Errorf("canonical form of %q is not stable: %q -> %q", src, s, s2)
		}
	}
}

func TestParseNumbers(t *testing.T) {
	cases := []struct {
		src string
		v   float64
	}{
		{"0", 0},
		{"1", 1},
		{"0.5", 0.5},
		{".25", 0.25},
		{"1e3", 1000},
		{"1e-3", 0.001},
		{"1.5e2", 150},
	}
	for _, c := range cases {
		g, err := ParseString(c.src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", c.src, err)
		}
		n, ok := g.(*constant)
		if !ok {
			t.Fatalf("%q parsed to %T, not a constant", c.src, g)
		}
		if n.v != c.v {
			t.Errorf("%q parsed to %g, want %g", c.src, n.v, c.v)
		}
	}
	g, err := ParseString("1e999")
	if err != nil {
		t.Fatalf("1e999 failed to parse: %v", err)
	}
	if v := g.Generate(Context{}); !math.IsInf(v, 1) {
		t.Errorf("out-of-range literal evaluated to %g, want +Inf", v)
	}
}

func TestParseArgOrder(t *testing.T) {
	f := mockFactory()
	g, err := f.ParseString("five(1, 2, 3, 4, 5)")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	m, ok := g.(*mockGen)
	if !ok {
		t.Fatalf("parsed to %T, not a mock", g)
	}
	for i, a := range m.args {
		n, ok := a.(*constant)
		if !ok {
			t.Fatalf("argument %d is %T, not a constant", i, a)
		}
		if n.v != float64(i+1) {
			t.Errorf("argument %d is %g, want %d", i, n.v, i+1)
		}
	}
}

func TestParseNiladic(t *testing.T) {
	f := mockFactory()
	cases := []struct {
		name string
		src  string
		args int
		err  bool
	}{
		{"bare", "zero", 0, false},
		{"empty", "zero()", 0, false},
		{"zeroone-bare", "zeroone", 0, false},
		{"zeroone-one", "zeroone(1)", 1, false},
		{"zeroone-two", "zeroone(1, 2)", 0, true},
		{"one-bare", "one", 0, true},
		{"one-empty", "one()", 0, true},
		{"one-one", "one(1)", 1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := f.ParseString(c.src)
			if c.err {
				if err == nil {
					t.Fatalf("%q parsed to %v, want an arity error", c.src, g)
				}
				if _, ok := err.(*ArityError); !ok {
					t.Fatalf("%q gave %T, want *ArityError", c.src, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if m := g.(*mockGen); len(m.args) != c.args {
				t.Errorf("%q cloned over %d arguments, want %d", c.src, len(m.args), c.args)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		pos  int
		res  []string
		excl []string
	}{
		{"empty", "", new(EmptyExpressionError), 1, []string{`(?i)\bno\b.*\bexpression\b`}, []string{`(?i)\bend\b`}},
		{"emptyparen", "()", new(EmptyExpressionError), 2, []string{`(?i)\bno\b.*\bexpression\b`, `\)`}, nil},
		{"emptyoperand", "x*", new(EmptyExpressionError), 3, []string{`(?i)\bno\b.*\bexpression\b`, `(?i)\bend\b`}, nil},
		{"emptyunary", "x*-", new(EmptyExpressionError), 4, []string{`(?i)\bno\b.*\bexpression\b`, `(?i)\bend\b`}, nil},
		{"emptyarg", "sin(x,)", new(EmptyExpressionError), 7, []string{`(?i)\bno\b.*\bexpression\b`, `\)`}, nil},
		{"emptyunary-call", "sin(-)", new(EmptyExpressionError), 6, []string{`\)`}, nil},

		{"left", "(x", new(BracketError), 3, []string{`(?i)\bbracket\b`, `\(`, `(?i)\bno close\b`}, nil},
		{"right", "x)", new(BracketError), 2, []string{`(?i)\bbracket\b`, `\)`, `(?i)\bno open\b`}, nil},
		{"bare-close", ")", new(BracketError), 1, []string{`(?i)\bbracket\b`, `\)`}, nil},
		{"call-unclosed", "sin(x", new(BracketError), 6, []string{`(?i)\bbracket\b`, `\(`}, nil},
		{"call-eof", "sin(", new(BracketError), 5, []string{`(?i)\bbracket\b`, `\(`}, nil},

		{"nonunary", "*x", new(OperatorError), 1, []string{`(?i)\bunary\b`, `\*`}, nil},
		{"nonunary-div", "/x", new(OperatorError), 1, []string{`(?i)\bunary\b`, `/`}, nil},
		{"adjacent", "x y", new(OperatorError), 3, []string{`(?i)\bbinary\b`, `"y"`}, nil},
		{"adjacent-num", "2 3", new(OperatorError), 3, []string{`(?i)\bbinary\b`, `"3"`}, nil},
		{"adjacent-paren", "(x)(y)", new(OperatorError), 4, []string{`(?i)\bbinary\b`, `\(`}, nil},

		{"sep", "x, y", new(SeparatorError), 2, []string{`","`}, nil},
		{"sepstart", ",", new(SeparatorError), 1, []string{`","`}, nil},
		{"sep-parens", "(x, y)", new(SeparatorError), 3, []string{`","`}, nil},

		{"arity-0", "sin()", new(ArityError), 1, []string{`(?i)\bcall\b`, `\bsin\b`, `\b0\b`, `\b1\b`}, nil},
		{"arity-bare", "sin", new(ArityError), 1, []string{`\bsin\b`, `\b0\b`}, nil},
		{"arity-2", "sin(x, y)", new(ArityError), 1, []string{`\bsin\b`, `\b2\b`}, nil},
		{"arity-gauss", "gauss(x, y, z)", new(ArityError), 1, []string{`\bgauss\b`, `\b3\b`, `\b1 or 2\b`}, nil},
		{"arity-tanhhat", "tanhhat(x, 1, 0.5)", new(ArityError), 1, []string{`\btanhhat\b`, `\b4\b`}, nil},
		{"arity-min", "min()", new(ArityError), 1, []string{`\bmin\b`, `(?i)\bat least 1\b`}, nil},
		{"arity-offset", "1 + sin()", new(ArityError), 5, []string{`\bsin\b`}, nil},

		{"unknown-call", "nosuch(x)", new(NameError), 1, []string{`(?i)\bunknown\b`, `\bnosuch\b`}, nil},
		{"unknown-bare", "q", new(NameError), 1, []string{`"q"`}, nil},
		{"unknown-offset", "x + qq", new(NameError), 5, []string{`"qq"`}, nil},

		{"lex", "2^exp(-$)", new(LexError), 9, []string{`\$`}, nil},
		{"lexnum", "1.2.3", new(LexError), 5, []string{`(?i)\bnumber\b`}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := ParseString(c.src)
			if g != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, g)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Fatalf("wrong error type from %q: want %T, got %T (%v)", c.src, c.err, err, err)
			}
			if err == nil {
				return
			}
			ie := err.(InputError)
			if ie.Pos() != c.pos {
				t.Errorf("wrong position from %q: want %d, got %d (%v)", c.src, c.pos, ie.Pos(), err)
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
			for _, re := range c.excl {
				if regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q matches %s", msg, re)
				}
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"num", "0.5"},
		{"poly", "2*x^2 + 3*x + 1"},
		{"profile", "gauss(x-0.5, 0.2)*sin(3*y)"},
		{"ops", "x+y*z^t^x*y+z"},
		{"nested", "ballooning(mixmode(y), 2) + tanhhat(x, 1, 0.5, 10)"},
	}
	f := New()
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			var src strings.Reader
			for i := 0; i < b.N; i++ {
				src.Reset(c.src)
				f.Parse(&src)
			}
		})
	}
}
