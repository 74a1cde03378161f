// Package render serializes triangle meshes to the ASCII STL solid-surface
// format and rasterizes mesh previews to images.
package render

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gearforge/gearcad"
	"gonum.org/v1/gonum/spatial/r3"
)

// WriteSTL writes a flat vertex buffer as an ASCII STL solid with the given
// name. The buffer length must be a positive multiple of 9, one triangle per
// 9 values; otherwise gearcad.ErrMalformedBuffer is returned and nothing is
// written to w. Facet normals are recomputed from each triangle's own
// vertices rather than taken from upstream per-vertex normals.
func WriteSTL(w io.Writer, name string, vertices []float64) error {
	if len(vertices) == 0 {
		return errors.New("empty vertex buffer")
	}
	model, err := gearcad.MeshFromBuffer(vertices)
	if err != nil {
		return err
	}
	// Serialize fully before touching w so a failure emits no partial output.
	var buf bytes.Buffer
	buf.Grow(32 + 256*len(model))
	fmt.Fprintf(&buf, "solid %s\n", name)
	for _, t := range model {
		n := t.Normal()
		fmt.Fprintf(&buf, "  facet normal %s %s %s\n", ftoa(n.X), ftoa(n.Y), ftoa(n.Z))
		buf.WriteString("    outer loop\n")
		for _, v := range t.V {
			fmt.Fprintf(&buf, "      vertex %s %s %s\n", ftoa(v.X), ftoa(v.Y), ftoa(v.Z))
		}
		buf.WriteString("    endloop\n")
		buf.WriteString("  endfacet\n")
	}
	fmt.Fprintf(&buf, "endsolid %s\n", name)
	_, err = w.Write(buf.Bytes())
	return err
}

// WriteMesh writes model as an ASCII STL solid named name.
func WriteMesh(w io.Writer, name string, model gearcad.Mesh) error {
	return WriteSTL(w, name, model.Buffer())
}

// CreateSTL writes model to path, through a temporary file and rename so a
// failed export leaves no partial file behind.
func CreateSTL(path, name string, model gearcad.Mesh) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".gearcad-*.stl")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := WriteMesh(tmp, name, model); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ftoa formats a coordinate at float32 precision, STL's native precision,
// using the shortest decimal that round-trips.
func ftoa(v float64) string {
	return strconv.FormatFloat(float64(float32(v)), 'g', -1, 32)
}

// Facets whose stored normal disagrees with the normal computed from their
// vertices are tolerated up to this count; many writers store normals at
// reduced precision or as zeros.
const maxNormalMismatches = 10_000

var errNormalMismatch = errors.New("stored facet normal disagrees with computed normal")

// ReadSTL parses an ASCII STL solid, validating each facet as it is read.
func ReadSTL(r io.Reader) (name string, model gearcad.Mesh, err error) {
	sc := bufio.NewScanner(r)
	var (
		cur        stlFacet
		verts      int
		sawSolid   bool
		sawEnd     bool
		mismatches int
	)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "solid":
			sawSolid = true
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
		case "facet":
			if len(fields) < 5 || fields[1] != "normal" {
				return name, nil, fmt.Errorf("facet %d: malformed facet line", len(model))
			}
			if err := parse3F32(fields[2:5], &cur.normal); err != nil {
				return name, nil, fmt.Errorf("facet %d: %w", len(model), err)
			}
			verts = 0
		case "vertex":
			if len(fields) < 4 {
				return name, nil, fmt.Errorf("facet %d: short vertex line", len(model))
			}
			if verts >= 3 {
				return name, nil, fmt.Errorf("facet %d: more than 3 vertices in loop", len(model))
			}
			if err := parse3F32(fields[1:4], &cur.vertex[verts]); err != nil {
				return name, nil, fmt.Errorf("facet %d: %w", len(model), err)
			}
			verts++
		case "endfacet":
			if verts != 3 {
				return name, nil, fmt.Errorf("facet %d: got %d vertices, want 3", len(model), verts)
			}
			if verr := cur.validate(); verr != nil {
				if !errors.Is(verr, errNormalMismatch) {
					return name, nil, fmt.Errorf("facet %d: %w", len(model), verr)
				}
				mismatches++
				if mismatches > maxNormalMismatches {
					return name, nil, fmt.Errorf("too many normal mismatches (%d): %w", mismatches, verr)
				}
			}
			model = append(model, cur.triangle())
		case "endsolid":
			sawEnd = true
		}
	}
	if err := sc.Err(); err != nil {
		return name, nil, err
	}
	if !sawSolid || !sawEnd {
		return name, nil, errors.New("missing solid/endsolid envelope")
	}
	if len(model) == 0 {
		return name, nil, errors.New("solid contains no facets")
	}
	return name, model, nil
}

// stlFacet is one parsed facet block at STL's native float32 precision.
type stlFacet struct {
	normal [3]float32
	vertex [3][3]float32
}

func (f stlFacet) validate() error {
	const (
		eps     = 1e-12
		normTol = 5e-2
	)
	if bad3F32(f.normal) {
		return errors.New("inf/NaN facet normal")
	}
	for _, v := range f.vertex {
		if bad3F32(v) {
			return errors.New("inf/NaN facet vertex")
		}
	}
	if f.degenerate(eps) {
		return errors.New("degenerate facet")
	}
	calc := f.normalFromVertices()
	calcNeg := [3]float32{-calc[0], -calc[1], -calc[2]}
	if !equalWithin3F32(calc, f.normal, normTol) && !equalWithin3F32(calcNeg, f.normal, normTol) {
		return errNormalMismatch
	}
	return nil
}

// degenerate returns true if two facet vertices coincide within tol.
func (f stlFacet) degenerate(tol float32) bool {
	return equalWithin3F32(f.vertex[0], f.vertex[1], tol) ||
		equalWithin3F32(f.vertex[1], f.vertex[2], tol) ||
		equalWithin3F32(f.vertex[2], f.vertex[0], tol)
}

func (f stlFacet) normalFromVertices() [3]float32 {
	// scale up before the cross product to keep precision on small facets
	v1 := r3.Scale(10, r3From3F32(f.vertex[0]))
	v2 := r3.Scale(10, r3From3F32(f.vertex[1]))
	v3 := r3.Scale(10, r3From3F32(f.vertex[2]))
	n := r3.Unit(r3.Cross(r3.Sub(v2, v1), r3.Sub(v3, v1)))
	return [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
}

func (f stlFacet) triangle() gearcad.Triangle {
	return gearcad.Triangle{V: [3]r3.Vec{
		r3From3F32(f.vertex[0]),
		r3From3F32(f.vertex[1]),
		r3From3F32(f.vertex[2]),
	}}
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func parse3F32(fields []string, dst *[3]float32) error {
	for i, s := range fields[:3] {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return fmt.Errorf("bad coordinate %q: %w", s, err)
		}
		dst[i] = float32(v)
	}
	return nil
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}
