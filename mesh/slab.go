// Package mesh provides simple field-line topologies for evaluating
// expressions that need geometry, such as ballooning transforms.
package mesh

import (
	"github.com/fantasticism/fieldgen"
)

// Slab is a sheared-slab topology: every flux surface inside the radial
// bounds closes on itself in Y, and a field line accumulates a Z shift of
// Shift + x*Shear over one poloidal turn. Surfaces outside the bounds are
// open.
//
// A Slab is immutable after construction and safe for concurrent use.
type Slab struct {
	// Shift is the twist-shift angle at x = 0, in radians.
	Shift float64
	// Shear is the radial gradient of the twist-shift angle.
	Shear float64
	// XMin and XMax bound the closed surfaces.
	XMin, XMax float64
}

var _ fieldgen.Mesh = (*Slab)(nil)

// NewSlab returns a slab with closed surfaces over x in [0, 1].
func NewSlab(shift, shear float64) *Slab {
	return &Slab{Shift: shift, Shear: shear, XMax: 1}
}

// PeriodicY reports whether the surface through x is closed, and the
// twist-shift angle accumulated over one poloidal turn if so.
func (s *Slab) PeriodicY(x float64) (float64, bool) {
	if x < s.XMin || x > s.XMax {
		return 0, false
	}
	return s.Shift + x*s.Shear, true
}
