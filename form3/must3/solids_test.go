package must3_test

import (
	"math"
	"testing"

	"github.com/gearforge/gearcad"
	"github.com/gearforge/gearcad/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCylinder(t *testing.T) {
	for _, segments := range []int{3, 8, 24, 64} {
		const (
			height = 2.0
			radius = 3.0
		)
		m := must3.Cylinder(height, radius, segments)
		if got, want := len(m), 4*segments; got != want {
			t.Errorf("segments=%d: triangle count got %d, want %d", segments, got, want)
		}
		if err := m.Validate(); err != nil {
			t.Errorf("segments=%d: not watertight: %v", segments, err)
		}
		// volume of the inscribed prism, exact for the faceted solid
		want := 0.5 * float64(segments) * math.Sin(2*math.Pi/float64(segments)) * radius * radius * height
		if got := m.Volume(); math.Abs(got-want) > 1e-9*want {
			t.Errorf("segments=%d: volume got %g, want %g", segments, got, want)
		}
		assertOutwardNormals(t, m)
	}
}

func TestBox(t *testing.T) {
	size := r3.Vec{X: 1, Y: 2, Z: 3}
	m := must3.Box(size)
	if len(m) != 12 {
		t.Errorf("triangle count got %d, want 12", len(m))
	}
	if err := m.Validate(); err != nil {
		t.Errorf("not watertight: %v", err)
	}
	if got, want := m.Volume(), 6.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("volume got %g, want %g", got, want)
	}
	bb := m.Bounds()
	if bb.Min != (r3.Vec{X: -0.5, Y: -1, Z: -1.5}) || bb.Max != (r3.Vec{X: 0.5, Y: 1, Z: 1.5}) {
		t.Errorf("bounds got %+v", bb)
	}
	assertOutwardNormals(t, m)
}

func TestConstructorPanics(t *testing.T) {
	for _, tc := range []struct {
		name string
		fn   func()
	}{
		{"cylinder radius", func() { must3.Cylinder(1, 0, 8) }},
		{"cylinder height", func() { must3.Cylinder(-1, 1, 8) }},
		{"cylinder segments", func() { must3.Cylinder(1, 1, 2) }},
		{"box size", func() { must3.Box(r3.Vec{X: 1, Y: 0, Z: 1}) }},
	} {
		if !panics(tc.fn) {
			t.Errorf("%s: expected panic", tc.name)
		}
	}
}

// assertOutwardNormals checks every face of a convex solid centered at the
// origin points away from the origin.
func assertOutwardNormals(t *testing.T, m gearcad.Mesh) {
	t.Helper()
	for i, tri := range m {
		centroid := r3.Scale(1.0/3.0, r3.Add(tri.V[0], r3.Add(tri.V[1], tri.V[2])))
		if r3.Dot(tri.Normal(), centroid) <= 0 {
			t.Fatalf("triangle %d normal points inward", i)
		}
	}
}

func panics(fn func()) (p bool) {
	defer func() { p = recover() != nil }()
	fn()
	return p
}
