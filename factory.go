package fieldgen

// A Factory builds generator trees from expression text. It holds a registry
// of template generators and a set of parameter bindings, both keyed by name.
// Parsing resolves every name through the factory, so a tree returned from
// Parse is complete: evaluating it cannot fail on an unresolved name.
//
// A Factory is not safe for concurrent use; the trees it returns are.
type Factory struct {
	gens   map[string]Generator
	params map[string]*float64
	mesh   Mesh
}

// Option is an option used when creating a Factory.
type Option interface {
	option(*factoryConfig)
}

// factoryConfig collects options before the registry is built, so that
// WithoutDefaults and WithMesh apply no matter where they appear in the
// option list.
type factoryConfig struct {
	mesh       Mesh
	nodefaults bool
	gens       []namedGen
	params     []namedParam
}

type (
	namedGen struct {
		name string
		g    Generator
	}
	namedParam struct {
		name string
		cell *float64
	}
	meshOpt      struct{ m Mesh }
	noDefaultOpt struct{}
)

func (o namedGen) option(c *factoryConfig)     { c.gens = append(c.gens, o) }
func (o namedParam) option(c *factoryConfig)   { c.params = append(c.params, o) }
func (o meshOpt) option(c *factoryConfig)      { c.mesh = o.m }
func (o noDefaultOpt) option(c *factoryConfig) { c.nodefaults = true }

// WithMesh attaches a mesh to the factory. The mesh seeds the geometry of
// the ballooning template, and is otherwise carried by generators that need
// topology when the evaluation Context has none.
func WithMesh(m Mesh) Option {
	return meshOpt{m}
}

// WithGenerator registers a template generator under a name, replacing any
// default with that name.
func WithGenerator(name string, g Generator) Option {
	return namedGen{name, g}
}

// WithParam binds a name to a value cell, as Factory.Bind does.
func WithParam(name string, cell *float64) Option {
	return namedParam{name, cell}
}

// WithoutDefaults starts the factory with an empty registry instead of the
// default one. Coordinate names and pi are part of the defaults, so a
// factory built this way resolves only what is explicitly registered or
// bound.
func WithoutDefaults() Option {
	return noDefaultOpt{}
}

// New creates a Factory with the default template registry, the pointwise
// functions sin through erf plus atan, fmod, power, min, max, round, h, the
// profile and symmetry generators gauss, tanhhat, ballooning, mixmode, the
// coordinate names x, y, z, t, and the constant pi. Options are applied in
// order.
func New(opts ...Option) *Factory {
	var c factoryConfig
	for _, opt := range opts {
		opt.option(&c)
	}
	f := &Factory{
		params: make(map[string]*float64),
		mesh:   c.mesh,
	}
	if c.nodefaults {
		f.gens = make(map[string]Generator)
	} else {
		f.gens = defaultGenerators(c.mesh)
	}
	for _, o := range c.gens {
		f.gens[o.name] = o.g
	}
	for _, o := range c.params {
		f.params[o.name] = o.cell
	}
	return f
}

// Register adds a template generator to the registry, replacing any previous
// generator with the same name. Expressions parsed afterward resolve name to
// a clone of g over the parsed argument list.
func (f *Factory) Register(name string, g Generator) {
	f.gens[name] = g
}

// Bind attaches a name to a value cell. Expressions parsed afterward resolve
// the name to a generator that reads the cell at each evaluation, so the
// caller can sweep a parameter without reparsing. The cell must outlive
// every tree parsed from the factory. Registry names shadow bindings.
func (f *Factory) Bind(name string, cell *float64) {
	f.params[name] = cell
}

// Mesh returns the mesh the factory was created with, which may be nil.
func (f *Factory) Mesh() Mesh {
	return f.mesh
}

// build resolves a call of a registered generator over parsed arguments.
func (f *Factory) build(name string, args []Generator, pos int) (Generator, error) {
	t := f.gens[name]
	if t == nil {
		return nil, &NameError{Col: pos, Name: name}
	}
	return f.clone(t, args, pos)
}

// lookup resolves a bare name to a niladic clone of a registered generator
// or to a parameter binding, in that order.
func (f *Factory) lookup(name string, pos int) (Generator, error) {
	if t := f.gens[name]; t != nil {
		return f.clone(t, nil, pos)
	}
	if cell := f.params[name]; cell != nil {
		return Param(name, cell), nil
	}
	return nil, &NameError{Col: pos, Name: name}
}

// clone clones a template, attaching the input position to arity errors.
func (f *Factory) clone(t Generator, args []Generator, pos int) (Generator, error) {
	g, err := t.Clone(args)
	if err != nil {
		if ae, ok := err.(*ArityError); ok && ae.Col == 0 {
			ae.Col = pos
		}
		return nil, err
	}
	return g, nil
}
