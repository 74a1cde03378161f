package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/gearforge/gearcad"
	"github.com/gearforge/gearcad/internal/d3"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// ViewConfig positions the preview camera.
type ViewConfig struct {
	// what position (point) to look at
	Lookat r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eyepos r3.Vec
	Far    float64
	Near   float64
}

// PreviewOptions control mesh preview rasterization. The zero value renders
// a 512x512 isometric view with the default material color.
type PreviewOptions struct {
	Width, Height int
	Scale         int    // supersampling factor before downsampling
	Color         string // object hex color, the display material
	Background    string // background hex color
	View          ViewConfig
}

func (o PreviewOptions) withDefaults() PreviewOptions {
	if o.Width == 0 {
		o.Width = 512
	}
	if o.Height == 0 {
		o.Height = 512
	}
	if o.Scale == 0 {
		o.Scale = 2
	}
	if o.Color == "" {
		o.Color = "#468966"
	}
	if o.Background == "" {
		o.Background = "#FFF8E3"
	}
	if o.View == (ViewConfig{}) {
		o.View = ViewConfig{
			Up:     r3.Vec{Z: 1},
			Eyepos: d3.Elem(2.4), // iso view
			Near:   1,
			Far:    10,
		}
	}
	return o
}

// DrawImage rasterizes a Phong-shaded preview of the model. The model is
// consumed read-only and output is deterministic for identical input.
func DrawImage(model gearcad.Mesh, opt PreviewOptions) (image.Image, error) {
	if len(model) == 0 {
		return nil, errors.New("empty mesh")
	}
	opt = opt.withDefaults()
	const fovy = 30 // vertical field of view in degrees

	tris := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		tris[i] = fauxgl.NewTriangleForPoints(
			fauxgl.V(t.V[0].X, t.V[0].Y, t.V[0].Z),
			fauxgl.V(t.V[1].X, t.V[1].Y, t.V[1].Z),
			fauxgl.V(t.V[2].X, t.V[2].Y, t.V[2].Z),
		)
	}
	mesh := fauxgl.NewTriangleMesh(tris)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()

	var (
		view   = opt.View
		eye    = fauxgl.V(view.Eyepos.X, view.Eyepos.Y, view.Eyepos.Z) // camera position
		center = fauxgl.V(view.Lookat.X, view.Lookat.Y, view.Lookat.Z) // view center position
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)             // up vector
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()                  // light direction
	)
	context := fauxgl.NewContext(opt.Width*opt.Scale, opt.Height*opt.Scale)
	context.ClearColorBufferWith(fauxgl.HexColor(opt.Background))
	aspect := float64(opt.Width) / float64(opt.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(opt.Color)
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample for antialiasing
	img := context.Image()
	img = resize.Resize(uint(opt.Width), uint(opt.Height), img, resize.Bilinear)
	return img, nil
}

// PreviewPNG renders the model and writes the preview to path as PNG.
func PreviewPNG(path string, model gearcad.Mesh, opt PreviewOptions) error {
	img, err := DrawImage(model, opt)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}
