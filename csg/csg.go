// Package csg computes boolean operations on closed triangle meshes by BSP
// clipping: each solid's faces are classified against the other solid's
// volume, fragments on the discarded side are dropped and the survivors are
// stitched into one mesh, re-triangulated along the intersection curve.
package csg

import (
	"errors"
	"fmt"
	"math"

	"github.com/gearforge/gearcad"
	"github.com/gearforge/gearcad/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNonManifold reports an operand that is not a closed manifold mesh. The
// engine fails fast on such input rather than emit corrupted topology.
var ErrNonManifold = errors.New("csg: operand mesh is not a closed manifold")

// epsRel scales the clipping tolerance to the combined geometry so that
// module-scaled and meter-scaled parts classify alike.
const epsRel = 1e-6

// Subtract returns target minus cutter, with the rigid transform tf applied
// to the cutter first. An empty or fully degenerate cutter leaves the target
// unchanged; a cutter that swallows the target yields the empty mesh. The
// cutter must be a closed manifold. The target is accepted as-is: chained
// subtractions feed this engine its own prior output, whose fan
// re-triangulation introduces T-vertices that a strict edge check would
// reject even though the surface is closed.
func Subtract(target, cutter gearcad.Mesh, tf gearcad.Transform) (gearcad.Mesh, error) {
	targetPolys, cutterPolys, cutterBB, eps, done, err := operands(target, cutter, tf)
	if done != nil || err != nil {
		return done, err
	}
	// Clipping splits polygons along whole planes, so feeding the trees
	// faces far from the cut fragments them without changing the result.
	// Faces whose bounds cannot touch the cutter bypass the trees.
	near, far := splitNearCutter(targetPolys, cutterBB, eps)
	if len(near) == 0 {
		// cutter touches no face: fully outside the target or buried in
		// its interior, and only the full trees can tell which
		near, far = targetPolys, nil
	}
	a := newNode(near, eps)
	b := newNode(cutterPolys, eps)
	a.invert()
	a.clipTo(b)
	b.clipTo(a)
	b.invert()
	b.clipTo(a)
	b.invert()
	a.build(b.allPolygons())
	a.invert()
	return triangulate(append(far, a.allPolygons()...)), nil
}

// Union returns the solid occupied by target, cutter or both.
func Union(target, cutter gearcad.Mesh, tf gearcad.Transform) (gearcad.Mesh, error) {
	targetPolys, cutterPolys, _, eps, done, err := operands(target, cutter, tf)
	if err != nil {
		return nil, err
	}
	if done != nil {
		// one empty operand: the union is the other one
		if len(target) == 0 {
			return tf.ApplyMesh(cutter), nil
		}
		return done, nil
	}
	a := newNode(targetPolys, eps)
	b := newNode(cutterPolys, eps)
	a.clipTo(b)
	b.clipTo(a)
	b.invert()
	b.clipTo(a)
	b.invert()
	a.build(b.allPolygons())
	return triangulate(a.allPolygons()), nil
}

// Intersect returns the solid common to target and cutter.
func Intersect(target, cutter gearcad.Mesh, tf gearcad.Transform) (gearcad.Mesh, error) {
	targetPolys, cutterPolys, _, eps, done, err := operands(target, cutter, tf)
	if err != nil {
		return nil, err
	}
	if done != nil {
		return gearcad.Mesh{}, nil // empty operand: empty intersection
	}
	a := newNode(targetPolys, eps)
	b := newNode(cutterPolys, eps)
	a.invert()
	b.clipTo(a)
	b.invert()
	a.clipTo(b)
	b.clipTo(a)
	a.build(b.allPolygons())
	a.invert()
	return triangulate(a.allPolygons()), nil
}

// operands validates inputs, applies tf to the cutter and converts both
// meshes to BSP polygons. A non-nil done mesh short-circuits the operation:
// it is the well-defined result for an empty operand per the Subtract
// contract.
func operands(target, cutter gearcad.Mesh, tf gearcad.Transform) (targetPolys, cutterPolys []polygon, cutterBB d3.Box, eps float64, done gearcad.Mesh, err error) {
	if len(cutter) == 0 {
		return nil, nil, d3.Box{}, 0, append(gearcad.Mesh{}, target...), nil
	}
	if len(target) == 0 {
		return nil, nil, d3.Box{}, 0, gearcad.Mesh{}, nil
	}
	cutter = tf.ApplyMesh(cutter)
	if verr := cutter.Validate(); verr != nil {
		return nil, nil, d3.Box{}, 0, nil, fmt.Errorf("%w: cutter: %v", ErrNonManifold, verr)
	}
	eps = epsilonFor(target, cutter)
	cutterPolys = toPolygons(cutter)
	if len(cutterPolys) == 0 {
		// cutter has zero area: nothing to carve
		return nil, nil, d3.Box{}, 0, append(gearcad.Mesh{}, target...), nil
	}
	targetPolys = toPolygons(target)
	if len(targetPolys) == 0 {
		return nil, nil, d3.Box{}, 0, gearcad.Mesh{}, nil
	}
	return targetPolys, cutterPolys, d3.Box(cutter.Bounds()), eps, nil, nil
}

// epsilonFor derives the plane-classification tolerance from the diagonal of
// the combined bounding box.
func epsilonFor(a, b gearcad.Mesh) float64 {
	bb := d3.Box(a.Bounds()).Extend(d3.Box(b.Bounds()))
	return math.Max(epsRel*r3.Norm(bb.Size()), 1e-12)
}

// splitNearCutter partitions polygons by whether their bounding box touches
// the cutter's bounds, grown by eps so faces within clipping tolerance of
// the cutter still enter the trees.
func splitNearCutter(polys []polygon, cutter d3.Box, eps float64) (near, far []polygon) {
	cutter = d3.Box{
		Min: r3.Sub(cutter.Min, d3.Elem(eps)),
		Max: r3.Add(cutter.Max, d3.Elem(eps)),
	}
	for _, p := range polys {
		bb := d3.Box{Min: p.verts[0], Max: p.verts[0]}
		for _, v := range p.verts[1:] {
			bb.Min = d3.MinElem(bb.Min, v)
			bb.Max = d3.MaxElem(bb.Max, v)
		}
		if bb.Intersects(cutter) {
			near = append(near, p)
		} else {
			far = append(far, p)
		}
	}
	return near, far
}

// toPolygons converts a mesh to BSP polygons, dropping triangles too
// degenerate to define a plane.
func toPolygons(m gearcad.Mesh) []polygon {
	polys := make([]polygon, 0, len(m))
	for _, t := range m {
		pl, ok := planeFromPoints(t.V[0], t.V[1], t.V[2])
		if !ok {
			continue
		}
		polys = append(polys, polygon{verts: []r3.Vec{t.V[0], t.V[1], t.V[2]}, plane: pl})
	}
	return polys
}

// triangulate fans each polygon around its first vertex, preserving winding.
func triangulate(polys []polygon) gearcad.Mesh {
	m := make(gearcad.Mesh, 0, len(polys))
	for _, p := range polys {
		for i := 2; i < len(p.verts); i++ {
			t := gearcad.Triangle{V: [3]r3.Vec{p.verts[0], p.verts[i-1], p.verts[i]}}
			if r3.Norm2(r3.Cross(r3.Sub(t.V[1], t.V[0]), r3.Sub(t.V[2], t.V[0]))) == 0 {
				continue
			}
			m = append(m, t)
		}
	}
	return m
}
