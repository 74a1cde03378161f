package render_test

import (
	"os"
	"path/filepath"
	"testing"

	sdfxrender "github.com/deadsy/sdfx/render"
	sdfxsdf "github.com/deadsy/sdfx/sdf"
	"github.com/gearforge/gearcad/form3/obj3"
	"github.com/gearforge/gearcad/render"
)

const benchQuality = 200

// BenchmarkSDFXBlank renders a comparable gear blank with the sdfx marching
// cubes renderer, as a baseline against the faceted CSG pipeline.
func BenchmarkSDFXBlank(b *testing.B) {
	stdout := os.Stdout
	defer func() {
		os.Stdout = stdout // pesky sdfx prints out stuff
	}()
	os.Stdout, _ = os.Open(os.DevNull)
	output := filepath.Join(b.TempDir(), "sdfx_blank.stl")
	object, _ := sdfxsdf.Cylinder3D(2, 7, 0)
	for i := 0; i < b.N; i++ {
		sdfxrender.ToSTL(object, benchQuality, output, &sdfxrender.MarchingCubesOctree{})
	}
}

func BenchmarkGearSTL(b *testing.B) {
	output := filepath.Join(b.TempDir(), "gear.stl")
	p := obj3.GearParams{Teeth: 12, Module: 1, PressureAngle: 20, Thickness: 2}
	for i := 0; i < b.N; i++ {
		mesh, err := obj3.Gear(p)
		if err != nil {
			b.Fatal(err)
		}
		if err := render.CreateSTL(output, "gear", mesh); err != nil {
			b.Fatal(err)
		}
	}
}
