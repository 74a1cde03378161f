// Package obj3 builds mechanical objects as triangle meshes.
package obj3

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/gearforge/gearcad"
	"github.com/gearforge/gearcad/csg"
	"github.com/gearforge/gearcad/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidParams reports gear parameters rejected before any geometry work.
var ErrInvalidParams = errors.New("invalid gear parameters")

// GearParams defines a spur gear.
type GearParams struct {
	Teeth         int     // number of teeth, at least 3
	Module        float64 // tooth size: pitch diameter per tooth
	PressureAngle float64 // tooth profile slope in degrees
	Thickness     float64 // gear width along the axis
}

// cutterMargin oversizes tooth cutters so cuts pass cleanly through the rim
// and faces, keeping cut boundaries off the blank's own faces.
const cutterMargin = 1.05

func (p GearParams) validate() error {
	switch {
	case p.Teeth < 3:
		return fmt.Errorf("%w: teeth %d < 3", ErrInvalidParams, p.Teeth)
	case p.Module <= 0:
		return fmt.Errorf("%w: module %g <= 0", ErrInvalidParams, p.Module)
	case p.Thickness <= 0:
		return fmt.Errorf("%w: thickness %g <= 0", ErrInvalidParams, p.Thickness)
	}
	return nil
}

// Dimensions are the gear reference circles and tooth heights derived from
// the parameters. They are recomputed per call and never stored.
type Dimensions struct {
	PitchRadius float64
	Addendum    float64
	Dedendum    float64
	BaseRadius  float64
	OuterRadius float64
	RootRadius  float64
}

// Dimensions derives the gear geometry from the parameters.
func (p GearParams) Dimensions() Dimensions {
	d := Dimensions{
		PitchRadius: float64(p.Teeth) * p.Module / 2,
		Addendum:    p.Module,
		Dedendum:    1.25 * p.Module,
	}
	d.BaseRadius = d.PitchRadius * math.Cos(p.PressureAngle*math.Pi/180)
	d.OuterRadius = d.PitchRadius + d.Addendum
	d.RootRadius = d.PitchRadius - d.Dedendum
	return d
}

// Gear generates the gear solid. See GearContext.
func Gear(p GearParams) (gearcad.Mesh, error) {
	return GearContext(context.Background(), p)
}

// GearContext generates a spur gear solid: a cylindrical blank with one
// rectangular tooth-gap cutter subtracted per tooth. Teeth are approximated
// by straight-sided gaps, not involute curves. Cuts run in increasing
// angular order so output is deterministic for fixed parameters; ctx is
// checked between subtractions and cancels a long generation with no partial
// result.
func GearContext(ctx context.Context, p GearParams) (gearcad.Mesh, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	dims := p.Dimensions()
	blank := must3.Cylinder(p.Thickness, dims.OuterRadius, 2*p.Teeth)
	cutter := must3.Box(r3.Vec{
		X: 2 * p.Module * cutterMargin,
		Y: 2 * p.Module * cutterMargin,
		Z: p.Thickness * cutterMargin,
	})
	for i := 0; i < p.Teeth; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		angle := 2 * math.Pi * float64(i) / float64(p.Teeth)
		tf := gearcad.RotateZ(angle).Translate(r3.Vec{
			X: dims.PitchRadius * math.Cos(angle),
			Y: dims.PitchRadius * math.Sin(angle),
		})
		carved, err := csg.Subtract(blank, cutter, tf)
		if err != nil {
			return nil, fmt.Errorf("tooth %d of %d: %w", i, p.Teeth, err)
		}
		blank = carved
	}
	return blank, nil
}
