package obj3_test

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/gearforge/gearcad/form3/obj3"
)

func TestGearParamsRejected(t *testing.T) {
	valid := obj3.GearParams{Teeth: 12, Module: 1, PressureAngle: 20, Thickness: 2}
	for _, tc := range []struct {
		name   string
		mutate func(*obj3.GearParams)
	}{
		{"two teeth", func(p *obj3.GearParams) { p.Teeth = 2 }},
		{"zero teeth", func(p *obj3.GearParams) { p.Teeth = 0 }},
		{"negative teeth", func(p *obj3.GearParams) { p.Teeth = -5 }},
		{"zero module", func(p *obj3.GearParams) { p.Module = 0 }},
		{"negative module", func(p *obj3.GearParams) { p.Module = -1 }},
		{"zero thickness", func(p *obj3.GearParams) { p.Thickness = 0 }},
	} {
		p := valid
		tc.mutate(&p)
		if _, err := obj3.Gear(p); !errors.Is(err, obj3.ErrInvalidParams) {
			t.Errorf("%s: got %v, want ErrInvalidParams", tc.name, err)
		}
	}
}

func TestDimensions(t *testing.T) {
	p := obj3.GearParams{Teeth: 12, Module: 1, PressureAngle: 20, Thickness: 2}
	d := p.Dimensions()
	const tol = 1e-12
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"pitch radius", d.PitchRadius, 6},
		{"addendum", d.Addendum, 1},
		{"dedendum", d.Dedendum, 1.25},
		{"outer radius", d.OuterRadius, 7},
		{"root radius", d.RootRadius, 4.75},
		{"base radius", d.BaseRadius, 6 * math.Cos(20*math.Pi/180)},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > tol {
			t.Errorf("%s got %g, want %g", c.name, c.got, c.want)
		}
	}
}

func TestGearBufferInvariant(t *testing.T) {
	for _, teeth := range []int{3, 6, 12} {
		p := obj3.GearParams{Teeth: teeth, Module: 1, PressureAngle: 20, Thickness: 2}
		m, err := obj3.Gear(p)
		if err != nil {
			t.Fatalf("teeth=%d: %v", teeth, err)
		}
		buf := m.Buffer()
		if len(buf) == 0 || len(buf)%9 != 0 {
			t.Errorf("teeth=%d: buffer length %d is not a positive multiple of 9", teeth, len(buf))
		}
	}
}

func TestGearTriangleCountGrowth(t *testing.T) {
	// counts must grow with the tooth count regardless of parity: odd
	// counts once fragmented far more than even ones because every cut
	// clipped the whole running mesh instead of the faces near the cutter
	var prev int
	for _, teeth := range []int{6, 8, 9, 11, 12, 15} {
		p := obj3.GearParams{Teeth: teeth, Module: 1, PressureAngle: 20, Thickness: 2}
		m, err := obj3.Gear(p)
		if err != nil {
			t.Fatalf("teeth=%d: %v", teeth, err)
		}
		// the blank cylinder alone has 4*(2*teeth) triangles
		if len(m) < 8*teeth {
			t.Errorf("teeth=%d: %d triangles, fewer than the %d of the blank", teeth, len(m), 8*teeth)
		}
		if len(m) <= prev {
			t.Errorf("teeth=%d: triangle count %d did not grow from %d", teeth, len(m), prev)
		}
		prev = len(m)
	}
}

func TestGearGeometry(t *testing.T) {
	p := obj3.GearParams{Teeth: 12, Module: 1, PressureAngle: 20, Thickness: 2}
	d := p.Dimensions()
	m, err := obj3.Gear(p)
	if err != nil {
		t.Fatal(err)
	}
	bb := m.Bounds()
	if math.Abs(bb.Max.Z-p.Thickness/2) > 1e-9 || math.Abs(bb.Min.Z+p.Thickness/2) > 1e-9 {
		t.Errorf("thickness extent got [%g, %g]", bb.Min.Z, bb.Max.Z)
	}
	// tooth tips survive between cuts, so the radial extent stays between
	// the root and outer circles
	maxR := math.Max(bb.Max.X, bb.Max.Y)
	if maxR < d.RootRadius || maxR > d.OuterRadius+1e-9 {
		t.Errorf("radial extent %g outside [%g, %g]", maxR, d.RootRadius, d.OuterRadius)
	}
	blankVol := math.Pi * d.OuterRadius * d.OuterRadius * p.Thickness
	if v := m.Volume(); v <= 0.4*blankVol || v >= blankVol {
		t.Errorf("gear volume %g implausible against blank %g", v, blankVol)
	}
}

func TestGearDeterministic(t *testing.T) {
	p := obj3.GearParams{Teeth: 8, Module: 1.5, PressureAngle: 20, Thickness: 3}
	a, err := obj3.Gear(p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := obj3.Gear(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("triangle counts differ: %d vs %d", len(a), len(b))
	}
	if !reflect.DeepEqual(a.Buffer(), b.Buffer()) {
		t.Error("identical parameters produced different meshes")
	}
}

func TestGearCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := obj3.GearParams{Teeth: 12, Module: 1, PressureAngle: 20, Thickness: 2}
	if _, err := obj3.GearContext(ctx, p); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
