package gearcad

import "gonum.org/v1/gonum/spatial/r3"

// Transform is a rigid body transform: a rotation about the origin followed
// by a translation. The zero value is the identity.
type Transform struct {
	rot    r3.Rotation
	trans  r3.Vec
	hasRot bool
}

// Identity returns the do-nothing transform.
func Identity() Transform { return Transform{} }

// RotateZ returns a transform rotating by alpha radians about the Z axis.
func RotateZ(alpha float64) Transform {
	return Transform{rot: r3.NewRotation(alpha, r3.Vec{Z: 1}), hasRot: true}
}

// Rotate returns a transform rotating by alpha radians about axis.
func Rotate(alpha float64, axis r3.Vec) Transform {
	return Transform{rot: r3.NewRotation(alpha, axis), hasRot: true}
}

// Translate returns t followed by a translation by v.
func (t Transform) Translate(v r3.Vec) Transform {
	t.trans = r3.Add(t.trans, v)
	return t
}

// Apply transforms the point p.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	if t.hasRot {
		p = t.rot.Rotate(p)
	}
	return r3.Add(p, t.trans)
}

// ApplyMesh returns a transformed copy of m. Rigid transforms preserve
// winding order, so outward normals stay outward.
func (t Transform) ApplyMesh(m Mesh) Mesh {
	out := make(Mesh, len(m))
	for i, tri := range m {
		for j, v := range tri.V {
			out[i].V[j] = t.Apply(v)
		}
	}
	return out
}
