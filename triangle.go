package gearcad

import (
	"github.com/gearforge/gearcad/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is a 3D triangle. Vertices wind counterclockwise as seen from
// outside the solid so that Normal points outward.
type Triangle struct {
	V [3]r3.Vec
}

// Normal returns the unit normal obtained by the right-hand rule on the
// vertex winding. Degenerate triangles return the zero vector.
func (t Triangle) Normal() r3.Vec {
	n := r3.Cross(r3.Sub(t.V[1], t.V[0]), r3.Sub(t.V[2], t.V[0]))
	if r3.Norm2(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

// Area returns the triangle surface area.
func (t Triangle) Area() float64 {
	n := r3.Cross(r3.Sub(t.V[1], t.V[0]), r3.Sub(t.V[2], t.V[0]))
	return 0.5 * r3.Norm(n)
}

// Degenerate returns true if any two vertices coincide within tol.
func (t Triangle) Degenerate(tol float64) bool {
	return d3.EqualWithin(t.V[0], t.V[1], tol) ||
		d3.EqualWithin(t.V[1], t.V[2], tol) ||
		d3.EqualWithin(t.V[2], t.V[0], tol)
}
