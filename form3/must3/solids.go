package must3

import (
	"math"

	"github.com/gearforge/gearcad"
	"github.com/gearforge/gearcad/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cylinder returns a closed triangle mesh approximating a cylinder with
// segments radial facets. The axis is Z and the solid is centered at the
// origin. Side walls and cap fans share vertex values so the mesh is
// watertight with outward-facing normals.
func Cylinder(height, radius float64, segments int) gearcad.Mesh {
	if radius <= 0 {
		panic("radius <= 0")
	}
	if height <= 0 {
		panic("height <= 0")
	}
	if segments < 3 {
		panic("segments < 3")
	}
	h := height / 2
	bottom := make([]r3.Vec, segments)
	top := make([]r3.Vec, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x := radius * math.Cos(theta)
		y := radius * math.Sin(theta)
		bottom[i] = r3.Vec{X: x, Y: y, Z: -h}
		top[i] = r3.Vec{X: x, Y: y, Z: h}
	}
	cb := r3.Vec{Z: -h}
	ct := r3.Vec{Z: h}
	m := make(gearcad.Mesh, 0, 4*segments)
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		m = append(m,
			// side wall quad, split along the b[i]-t[j] diagonal
			gearcad.Triangle{V: [3]r3.Vec{bottom[i], bottom[j], top[j]}},
			gearcad.Triangle{V: [3]r3.Vec{bottom[i], top[j], top[i]}},
			// cap fans about the axis
			gearcad.Triangle{V: [3]r3.Vec{ct, top[i], top[j]}},
			gearcad.Triangle{V: [3]r3.Vec{cb, bottom[j], bottom[i]}},
		)
	}
	mustManifold(m)
	return m
}

// Box returns a closed triangle mesh of an axis-aligned box with the given
// size, centered at the origin.
func Box(size r3.Vec) gearcad.Mesh {
	if d3.LTEZero(size) {
		panic("size <= 0")
	}
	max := r3.Scale(0.5, size)
	min := r3.Scale(-1, max)
	c := [8]r3.Vec{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}
	// quads wound counterclockwise as seen from outside
	quads := [6][4]int{
		{0, 3, 2, 1}, // -Z
		{4, 5, 6, 7}, // +Z
		{0, 1, 5, 4}, // -Y
		{2, 3, 7, 6}, // +Y
		{0, 4, 7, 3}, // -X
		{1, 2, 6, 5}, // +X
	}
	m := make(gearcad.Mesh, 0, 12)
	for _, q := range quads {
		m = append(m,
			gearcad.Triangle{V: [3]r3.Vec{c[q[0]], c[q[1]], c[q[2]]}},
			gearcad.Triangle{V: [3]r3.Vec{c[q[0]], c[q[2]], c[q[3]]}},
		)
	}
	mustManifold(m)
	return m
}

// mustManifold panics if a freshly constructed primitive is not a closed
// manifold. The boolean engine's output is undefined on open input, so the
// check runs at construction time rather than inside the engine loop.
func mustManifold(m gearcad.Mesh) {
	if err := m.Validate(); err != nil {
		panic("primitive mesh is not manifold: " + err.Error())
	}
}
