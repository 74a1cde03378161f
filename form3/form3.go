// Package form3 constructs primitive solids as triangle meshes. The
// constructors here recover panics from the underlying must3 package and
// return them as errors.
package form3

import (
	"fmt"
	"runtime/debug"

	"github.com/gearforge/gearcad"
	"github.com/gearforge/gearcad/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// Cylinder returns the mesh of a cylinder with segments radial facets,
// centered at the origin with its axis along Z.
func Cylinder(height, radius float64, segments int) (m gearcad.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Cylinder(height, radius, segments), err
}

// Box returns the mesh of an axis-aligned box centered at the origin.
func Box(size r3.Vec) (m gearcad.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Box(size), err
}
