package gearcad

import (
	"errors"
	"fmt"

	"github.com/gearforge/gearcad/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an ordered triangle soup describing the surface of a solid.
// A well-formed mesh is a closed 2-manifold; see Validate.
type Mesh []Triangle

// Buffer flattens the mesh into consecutive vertex coordinates,
// 9 values per triangle. The result length is always a multiple of 9.
func (m Mesh) Buffer() []float64 {
	buf := make([]float64, 0, 9*len(m))
	for _, t := range m {
		for _, v := range t.V {
			buf = append(buf, v.X, v.Y, v.Z)
		}
	}
	return buf
}

// MeshFromBuffer reinterprets a flat coordinate buffer as a mesh. The buffer
// length must be a multiple of 9, one triangle per 9 values. A violation
// returns ErrMalformedBuffer.
func MeshFromBuffer(buf []float64) (Mesh, error) {
	if len(buf)%9 != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrMalformedBuffer, len(buf))
	}
	m := make(Mesh, len(buf)/9)
	for i := range m {
		b := buf[9*i : 9*i+9]
		for j := 0; j < 3; j++ {
			m[i].V[j] = r3.Vec{X: b[3*j], Y: b[3*j+1], Z: b[3*j+2]}
		}
	}
	return m, nil
}

// Bounds returns the axis-aligned bounding box of the mesh.
// The empty mesh has a zero box.
func (m Mesh) Bounds() r3.Box {
	if len(m) == 0 {
		return r3.Box{}
	}
	min := m[0].V[0]
	max := min
	for _, t := range m {
		for _, v := range t.V {
			min = d3.MinElem(min, v)
			max = d3.MaxElem(max, v)
		}
	}
	return r3.Box{Min: min, Max: max}
}

// Volume returns the signed volume enclosed by the mesh via the divergence
// theorem. Consistent outward winding yields a positive volume.
func (m Mesh) Volume() float64 {
	var v float64
	for _, t := range m {
		v += r3.Dot(t.V[0], r3.Cross(t.V[1], t.V[2]))
	}
	return v / 6
}

// Validate checks that the mesh is a closed 2-manifold: every directed edge
// appears exactly once and is paired with its reverse. Vertices are compared
// exactly, so constructors must share vertex values rather than recompute
// them from trigonometry at each use.
func (m Mesh) Validate() error {
	if len(m) == 0 {
		return errors.New("empty mesh")
	}
	edges := make(map[[2]r3.Vec]int, 3*len(m))
	for i, t := range m {
		for j := 0; j < 3; j++ {
			a, b := t.V[j], t.V[(j+1)%3]
			if a == b {
				return fmt.Errorf("triangle %d has a zero-length edge", i)
			}
			edges[[2]r3.Vec{a, b}]++
		}
	}
	for e, n := range edges {
		if n != 1 {
			return fmt.Errorf("directed edge repeated %d times", n)
		}
		if edges[[2]r3.Vec{e[1], e[0]}] != 1 {
			return errors.New("unpaired edge, mesh is not closed")
		}
	}
	return nil
}
