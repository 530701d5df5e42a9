// Package fieldgen builds analytic initial and boundary fields from
// expression text, such as "gauss(x-0.5, 0.2)*sin(3*y)".
//
// An expression parses into a tree of generators which is evaluated
// pointwise over (x, y, z, t). Alongside the usual arithmetic and pointwise
// functions, the registry offers field profiles: gauss and tanhhat shapes,
// mixmode for reproducibly phased mode mixtures, and ballooning for sums
// over field-line images on periodic flux surfaces.
//
// A Factory owns the registry. Binding a parameter name to a value cell lets
// a driver sweep the parameter between evaluations without reparsing, and
// registering a template generator extends the language with a new kind.
// Parsed trees are immutable and safe to evaluate concurrently.
package fieldgen
