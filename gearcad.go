// Package gearcad is a small triangle-mesh kernel for parametric solid
// generation. It holds the mesh and rigid-transform types shared by the
// primitive constructors (form3), the boolean engine (csg) and the STL
// serializer (render).
package gearcad

import "errors"

// ErrMalformedBuffer reports a flat vertex buffer whose length is not a
// multiple of 9 and therefore cannot be interpreted as whole triangles.
var ErrMalformedBuffer = errors.New("vertex buffer length is not a multiple of 9")
