package gearcad_test

import (
	"math"
	"testing"

	"github.com/gearforge/gearcad"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTransformIdentity(t *testing.T) {
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	if got := gearcad.Identity().Apply(p); got != p {
		t.Errorf("identity moved %+v to %+v", p, got)
	}
	var zero gearcad.Transform
	if got := zero.Apply(p); got != p {
		t.Errorf("zero-value transform moved %+v to %+v", p, got)
	}
}

func TestRotateZ(t *testing.T) {
	tf := gearcad.RotateZ(math.Pi / 2)
	got := tf.Apply(r3.Vec{X: 1})
	if !vecEqual(got, r3.Vec{Y: 1}, 1e-12) {
		t.Errorf("quarter turn of +X got %+v, want +Y", got)
	}
}

func TestRotateTranslateOrder(t *testing.T) {
	// rotation about the origin happens before translation
	tf := gearcad.RotateZ(math.Pi).Translate(r3.Vec{X: 5})
	got := tf.Apply(r3.Vec{X: 1})
	if !vecEqual(got, r3.Vec{X: 4}, 1e-12) {
		t.Errorf("got %+v, want (4 0 0)", got)
	}
}

func TestApplyMeshRigid(t *testing.T) {
	m := tetrahedron()
	tf := gearcad.Rotate(1.1, r3.Vec{X: 1, Y: 1, Z: 0.5}).Translate(r3.Vec{X: -2, Y: 3, Z: 7})
	out := tf.ApplyMesh(m)
	if len(out) != len(m) {
		t.Fatal("triangle count changed")
	}
	// rigid transforms preserve enclosed volume and orientation
	if math.Abs(out.Volume()-m.Volume()) > 1e-9 {
		t.Errorf("volume changed: %g -> %g", m.Volume(), out.Volume())
	}
	if err := out.Validate(); err != nil {
		t.Errorf("transformed mesh no longer closed: %v", err)
	}
}
