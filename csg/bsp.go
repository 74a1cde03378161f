package csg

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Binary space partition of convex polygons, used to classify and clip one
// solid's surface against the other's volume.

// plane is an oriented plane in Hessian normal form: dot(normal, p) == w for
// points p on the plane.
type plane struct {
	normal r3.Vec
	w      float64
}

func planeFromPoints(a, b, c r3.Vec) (plane, bool) {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	if r3.Norm2(n) == 0 {
		return plane{}, false
	}
	n = r3.Unit(n)
	return plane{normal: n, w: r3.Dot(n, a)}, true
}

func (pl plane) flip() plane {
	return plane{normal: r3.Scale(-1, pl.normal), w: -pl.w}
}

// polygon is a planar convex polygon with counterclockwise winding. Split
// fragments inherit the parent polygon's plane so repeated clipping does not
// accumulate normal recomputation error.
type polygon struct {
	verts []r3.Vec
	plane plane
}

func (p polygon) flip() polygon {
	verts := make([]r3.Vec, len(p.verts))
	for i, v := range p.verts {
		verts[len(verts)-1-i] = v
	}
	return polygon{verts: verts, plane: p.plane.flip()}
}

// Vertex classification relative to a plane. Values combine bitwise: a
// polygon with vertices on both sides classifies as spanning.
const (
	coplanar = 0
	front    = 1
	back     = 2
	spanning = 3
)

// splitPolygon classifies poly against pl with tolerance eps and appends it,
// or its clipped halves, to the matching lists.
func (pl plane) splitPolygon(poly polygon, eps float64, coFront, coBack, f, b *[]polygon) {
	polyType := coplanar
	types := make([]int, len(poly.verts))
	for i, v := range poly.verts {
		t := r3.Dot(pl.normal, v) - pl.w
		typ := coplanar
		if t < -eps {
			typ = back
		} else if t > eps {
			typ = front
		}
		polyType |= typ
		types[i] = typ
	}
	switch polyType {
	case coplanar:
		if r3.Dot(pl.normal, poly.plane.normal) > 0 {
			*coFront = append(*coFront, poly)
		} else {
			*coBack = append(*coBack, poly)
		}
	case front:
		*f = append(*f, poly)
	case back:
		*b = append(*b, poly)
	case spanning:
		var fv, bv []r3.Vec
		for i := range poly.verts {
			j := (i + 1) % len(poly.verts)
			ti, tj := types[i], types[j]
			vi, vj := poly.verts[i], poly.verts[j]
			if ti != back {
				fv = append(fv, vi)
			}
			if ti != front {
				bv = append(bv, vi)
			}
			if ti|tj == spanning {
				edge := r3.Sub(vj, vi)
				t := (pl.w - r3.Dot(pl.normal, vi)) / r3.Dot(pl.normal, edge)
				v := r3.Add(vi, r3.Scale(t, edge))
				fv = append(fv, v)
				bv = append(bv, v)
			}
		}
		if len(fv) >= 3 {
			*f = append(*f, polygon{verts: fv, plane: poly.plane})
		}
		if len(bv) >= 3 {
			*b = append(*b, polygon{verts: bv, plane: poly.plane})
		}
	}
}

// node is a BSP tree node holding the polygons coplanar with its partition
// plane. Child order is deterministic, built from polygon input order.
type node struct {
	plane    *plane
	front    *node
	back     *node
	polygons []polygon
	eps      float64
}

func newNode(polys []polygon, eps float64) *node {
	n := &node{eps: eps}
	n.build(polys)
	return n
}

// build inserts polygons into the subtree, choosing the first polygon's
// plane as the partition plane of an empty node.
func (n *node) build(polys []polygon) {
	if len(polys) == 0 {
		return
	}
	if n.plane == nil {
		pl := polys[0].plane
		n.plane = &pl
	}
	var f, b []polygon
	for _, p := range polys {
		n.plane.splitPolygon(p, n.eps, &n.polygons, &n.polygons, &f, &b)
	}
	if len(f) > 0 {
		if n.front == nil {
			n.front = &node{eps: n.eps}
		}
		n.front.build(f)
	}
	if len(b) > 0 {
		if n.back == nil {
			n.back = &node{eps: n.eps}
		}
		n.back.build(b)
	}
}

// invert converts the subtree to the complement solid.
func (n *node) invert() {
	for i := range n.polygons {
		n.polygons[i] = n.polygons[i].flip()
	}
	if n.plane != nil {
		*n.plane = n.plane.flip()
	}
	if n.front != nil {
		n.front.invert()
	}
	if n.back != nil {
		n.back.invert()
	}
	n.front, n.back = n.back, n.front
}

// clipPolygons removes from polys all fragments inside the solid described
// by this subtree.
func (n *node) clipPolygons(polys []polygon) []polygon {
	if n.plane == nil {
		return append([]polygon{}, polys...)
	}
	var f, b []polygon
	for _, p := range polys {
		n.plane.splitPolygon(p, n.eps, &f, &b, &f, &b)
	}
	if n.front != nil {
		f = n.front.clipPolygons(f)
	}
	if n.back != nil {
		b = n.back.clipPolygons(b)
	} else {
		b = nil // no back subtree: back fragments are inside the solid
	}
	return append(f, b...)
}

// clipTo removes all polygons of this subtree inside the other solid.
func (n *node) clipTo(other *node) {
	n.polygons = other.clipPolygons(n.polygons)
	if n.front != nil {
		n.front.clipTo(other)
	}
	if n.back != nil {
		n.back.clipTo(other)
	}
}

// allPolygons collects the subtree's polygons in tree order.
func (n *node) allPolygons() []polygon {
	out := append([]polygon{}, n.polygons...)
	if n.front != nil {
		out = append(out, n.front.allPolygons()...)
	}
	if n.back != nil {
		out = append(out, n.back.allPolygons()...)
	}
	return out
}
